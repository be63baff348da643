package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type binningFixture struct {
	mrns      *MockMRNRepository
	stock     *MockStockRecordRepository
	logs      *MockBinningLogRepository
	locations *MockLocationRepository
	svc       *BinningService
}

func newBinningFixture() *binningFixture {
	f := &binningFixture{
		mrns:      new(MockMRNRepository),
		stock:     new(MockStockRecordRepository),
		logs:      new(MockBinningLogRepository),
		locations: new(MockLocationRepository),
	}
	scope := NewNoOpTransactionScope(f.mrns, f.stock, f.logs)
	f.svc = NewBinningService(scope, f.logs, f.locations, appaudit.NopRecorder{}, zap.NewNop())
	return f
}

func newReceivedMRN(t *testing.T, items map[uuid.UUID]string) *inventory.MRN {
	t.Helper()
	mrn, err := inventory.NewMRN("MRN1", uuid.New(), time.Now())
	require.NoError(t, err)
	for itemID, qty := range items {
		require.NoError(t, mrn.AddItem(inventory.MRNItem{ItemID: itemID, Quantity: decimal.RequireFromString(qty)}))
	}
	return mrn
}

func TestBinningService_Bin(t *testing.T) {
	ctx := context.Background()
	locID := uuid.New()

	t.Run("adds stock and marks MRN binned", func(t *testing.T) {
		f := newBinningFixture()
		first, second := uuid.New(), uuid.New()
		mrn := newReceivedMRN(t, map[uuid.UUID]string{first: "10", second: "5"})

		userID := uuid.New()
		actorCtx := appaudit.WithActor(ctx, userID)

		received := map[uuid.UUID]string{}
		f.locations.On("FindByID", actorCtx, locID).Return(&inventory.Location{}, nil)
		f.mrns.On("FindByIDForUpdate", actorCtx, mrn.ID).Return(mrn, nil)
		f.stock.On("AddQuantity", actorCtx, mock.AnythingOfType("*inventory.StockRecord")).
			Run(func(args mock.Arguments) {
				rec := args.Get(1).(*inventory.StockRecord)
				assert.Equal(t, locID, rec.LocationID)
				received[rec.ItemID] = rec.Quantity.String()
			}).Return(nil)
		f.mrns.On("MarkBinned", actorCtx, mrn).Return(nil)
		f.logs.On("Create", actorCtx, mock.AnythingOfType("*inventory.BinningLog")).Return(nil)

		resp, err := f.svc.Bin(actorCtx, BinRequest{MRNID: mrn.ID, ToLocationID: locID})
		require.NoError(t, err)
		assert.Equal(t, userID, resp.BinnedByUserID)
		assert.Equal(t, map[uuid.UUID]string{first: "10", second: "5"}, received)
		assert.Equal(t, inventory.MRNStatusBinned, mrn.Status)
		f.mrns.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		f.stock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.logs.AssertExpectations(t)
	})

	t.Run("already binned", func(t *testing.T) {
		f := newBinningFixture()
		mrn := newReceivedMRN(t, map[uuid.UUID]string{uuid.New(): "1"})
		require.NoError(t, mrn.UpdateStatus(inventory.MRNStatusBinned, nil))
		f.locations.On("FindByID", ctx, locID).Return(&inventory.Location{}, nil)
		f.mrns.On("FindByIDForUpdate", ctx, mrn.ID).Return(mrn, nil)

		_, err := f.svc.Bin(ctx, BinRequest{MRNID: mrn.ID, ToLocationID: locID})
		assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))
		f.stock.AssertNotCalled(t, "AddQuantity", mock.Anything, mock.Anything)
		f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("status guard rejects a concurrent binning", func(t *testing.T) {
		f := newBinningFixture()
		mrn := newReceivedMRN(t, map[uuid.UUID]string{uuid.New(): "4"})
		f.locations.On("FindByID", ctx, locID).Return(&inventory.Location{}, nil)
		f.mrns.On("FindByIDForUpdate", ctx, mrn.ID).Return(mrn, nil)
		f.stock.On("AddQuantity", ctx, mock.Anything).Return(nil)
		f.mrns.On("MarkBinned", ctx, mrn).Return(shared.NewConflictError("MRN has already been binned"))

		_, err := f.svc.Bin(ctx, BinRequest{MRNID: mrn.ID, ToLocationID: locID})
		assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))
		f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stock failure stops before status change", func(t *testing.T) {
		f := newBinningFixture()
		mrn := newReceivedMRN(t, map[uuid.UUID]string{uuid.New(): "1"})
		f.locations.On("FindByID", ctx, locID).Return(&inventory.Location{}, nil)
		f.mrns.On("FindByIDForUpdate", ctx, mrn.ID).Return(mrn, nil)
		f.stock.On("AddQuantity", ctx, mock.Anything).Return(shared.NewInternalError("db down", nil))

		_, err := f.svc.Bin(ctx, BinRequest{MRNID: mrn.ID, ToLocationID: locID})
		assert.Equal(t, shared.CodeInternal, shared.CodeOf(err))
		assert.Equal(t, inventory.MRNStatusPending, mrn.Status)
		f.mrns.AssertNotCalled(t, "MarkBinned", mock.Anything, mock.Anything)
	})

	t.Run("unknown location", func(t *testing.T) {
		f := newBinningFixture()
		f.locations.On("FindByID", ctx, locID).Return(nil, shared.NewNotFoundError("location"))

		_, err := f.svc.Bin(ctx, BinRequest{MRNID: uuid.New(), ToLocationID: locID})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "to_location_id", de.Field)
	})
}

func TestStockRuleService(t *testing.T) {
	ctx := context.Background()

	t.Run("reorder list is never nil", func(t *testing.T) {
		rules := new(MockStockRuleRepository)
		svc := NewStockRuleService(rules, nil, appaudit.NopRecorder{})
		rules.On("FindReorderCandidates", ctx).Return(nil, nil)

		out, err := svc.ReorderNeeded(ctx)
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("rule cannot move to another item", func(t *testing.T) {
		rules := new(MockStockRuleRepository)
		svc := NewStockRuleService(rules, nil, appaudit.NopRecorder{})
		rule, err := inventory.NewStockRule(uuid.New(), inventory.StockRuleParams{ROL: decimal.NewFromInt(5)})
		require.NoError(t, err)
		rules.On("FindByID", ctx, rule.ID).Return(rule, nil)

		rol := decimal.NewFromInt(7)
		_, err = svc.Update(ctx, rule.ID, StockRuleRequest{ItemID: uuid.New(), ROL: &rol})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestLocationService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	svc := NewLocationService(repo, appaudit.NopRecorder{})
	repo.On("ExistsByCode", ctx, "RACK-A1", (*uuid.UUID)(nil)).Return(true, nil)

	_, err := svc.Create(ctx, LocationRequest{LocationName: "Rack A1", LocationType: "rack", LocationCode: "rack-a1"})
	assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStockService_Summary(t *testing.T) {
	ctx := context.Background()
	stock := new(MockStockRecordRepository)
	svc := NewStockService(stock, nil, nil, appaudit.NopRecorder{})
	itemID := uuid.New()
	stock.On("FindLines", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.PageSize == 0 })).Return([]inventory.StockLine{
		{ItemID: itemID, ItemCode: "PARA", LocationCode: "A", Quantity: decimal.NewFromInt(4)},
		{ItemID: itemID, ItemCode: "PARA", LocationCode: "B", Quantity: decimal.NewFromInt(6)},
	}, int64(2), nil)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "10", summary[0].TotalQuantity.String())
	assert.Len(t, summary[0].Locations, 2)
}
