package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo, appaudit.NopRecorder{})
		price := decimal.RequireFromString("12.50")
		repo.On("ExistsByCode", ctx, "PARA500", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Item")).Return(nil)

		resp, err := svc.Create(ctx, CreateItemRequest{ItemName: "Paracetamol 500mg", ItemCode: "para500", LatestPrice: &price})
		require.NoError(t, err)
		assert.Equal(t, "PARA500", resp.ItemCode)
		assert.True(t, price.Equal(resp.LatestPrice))
		assert.True(t, resp.AvgPrice10Batches.IsZero())
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("negative price", func(t *testing.T) {
		svc := NewItemService(new(MockItemRepository), appaudit.NopRecorder{})
		price := decimal.NewFromInt(-1)
		_, err := svc.Create(ctx, CreateItemRequest{ItemName: "X", ItemCode: "X", AvgPrice10Batches: &price})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo, appaudit.NopRecorder{})
		repo.On("ExistsByCode", ctx, "X", (*uuid.UUID)(nil)).Return(true, nil)
		_, err := svc.Create(ctx, CreateItemRequest{ItemName: "X", ItemCode: "x"})
		assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()
	item, err := catalog.NewItem("Amoxicillin", "AMOX", catalog.ItemDetails{UOM: "strip"})
	require.NoError(t, err)

	repo := new(MockItemRepository)
	svc := NewItemService(repo, appaudit.NopRecorder{})
	repo.On("FindByID", ctx, item.ID).Return(item, nil)
	repo.On("ExistsByCode", ctx, "AMOX-250", &item.ID).Return(false, nil)
	repo.On("Save", ctx, item).Return(nil)

	code, status := "amox-250", "inactive"
	resp, err := svc.Update(ctx, item.ID, UpdateItemRequest{ItemCode: &code, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "AMOX-250", resp.ItemCode)
	assert.Equal(t, "strip", resp.UOM)
	assert.Equal(t, "inactive", resp.Status)
	repo.AssertExpectations(t)
}
