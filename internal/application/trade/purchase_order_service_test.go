package trade

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderRepository) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*trade.PurchaseOrderItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrderItem), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindItems(ctx context.Context, poID uuid.UUID) ([]trade.PurchaseOrderItem, error) {
	args := m.Called(ctx, poID)
	return args.Get(0).([]trade.PurchaseOrderItem), args.Error(1)
}

func (m *MockPurchaseOrderRepository) AddItem(ctx context.Context, item *trade.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) UpdateItem(ctx context.Context, item *trade.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) RemoveItem(ctx context.Context, item *trade.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByCode(ctx context.Context, code string) (*partner.Vendor, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
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

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func line(itemID uuid.UUID, qty, price, tax, gst string) PurchaseOrderItemRequest {
	return PurchaseOrderItemRequest{ItemID: itemID, Quantity: dec(qty), UnitPrice: dec(price), TaxPercent: dec(tax), GSTType: gst}
}

type poFixture struct {
	orders  *MockPurchaseOrderRepository
	vendors *MockVendorRepository
	items   *MockItemRepository
	svc     *PurchaseOrderService
	vendor  *partner.Vendor
}

func newPOFixture(t *testing.T) *poFixture {
	t.Helper()
	vendor, err := partner.NewVendor("Cipla", "CIPLA", partner.VendorDetails{})
	require.NoError(t, err)
	f := &poFixture{
		orders:  new(MockPurchaseOrderRepository),
		vendors: new(MockVendorRepository),
		items:   new(MockItemRepository),
		vendor:  vendor,
	}
	f.svc = NewPurchaseOrderService(f.orders, f.vendors, f.items, appaudit.NopRecorder{}, zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return f
}

func TestPurchaseOrderService_Create(t *testing.T) {
	ctx := context.Background()
	itemA, itemB := uuid.New(), uuid.New()

	t.Run("prices every line", func(t *testing.T) {
		f := newPOFixture(t)
		f.vendors.On("FindByID", ctx, f.vendor.ID).Return(f.vendor, nil)
		f.items.On("FindByID", ctx, mock.Anything).Return(&catalog.Item{}, nil)
		f.orders.On("Create", ctx, mock.AnythingOfType("*trade.PurchaseOrder")).Return(nil)

		resp, err := f.svc.Create(ctx, CreatePurchaseOrderRequest{
			VendorID: f.vendor.ID,
			Items: []PurchaseOrderItemRequest{
				line(itemA, "10", "100", "18", "intra"),
				line(itemB, "5", "200", "12", "inter"),
			},
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.PONumber, "PO"))
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "Cipla", resp.VendorName)
		assert.Equal(t, "2300", resp.TotalAmount.String())
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "90", resp.Items[0].CGST.String())
		assert.Equal(t, "90", resp.Items[0].SGST.String())
		assert.Equal(t, "120", resp.Items[1].IGST.String())
		f.orders.AssertExpectations(t)
	})

	t.Run("invalid line persists nothing", func(t *testing.T) {
		f := newPOFixture(t)
		f.vendors.On("FindByID", ctx, f.vendor.ID).Return(f.vendor, nil)

		_, err := f.svc.Create(ctx, CreatePurchaseOrderRequest{
			VendorID: f.vendor.ID,
			Items: []PurchaseOrderItemRequest{
				line(itemA, "10", "100", "18", "intra"),
				line(itemB, "5", "200", "12", "export"),
			},
		})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeValidation, de.Code)
		assert.Equal(t, "items[1].gst_type", de.Field)
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("negative quantity", func(t *testing.T) {
		f := newPOFixture(t)
		f.vendors.On("FindByID", ctx, f.vendor.ID).Return(f.vendor, nil)

		_, err := f.svc.Create(ctx, CreatePurchaseOrderRequest{
			VendorID: f.vendor.ID,
			Items:    []PurchaseOrderItemRequest{line(itemA, "-1", "100", "18", "intra")},
		})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "items[0].quantity", de.Field)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		f := newPOFixture(t)
		missing := uuid.New()
		f.vendors.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("vendor"))

		_, err := f.svc.Create(ctx, CreatePurchaseOrderRequest{
			VendorID: missing,
			Items:    []PurchaseOrderItemRequest{line(itemA, "1", "1", "0", "intra")},
		})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("no items", func(t *testing.T) {
		f := newPOFixture(t)
		_, err := f.svc.Create(ctx, CreatePurchaseOrderRequest{VendorID: f.vendor.ID})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestPurchaseOrderService_ItemMutations(t *testing.T) {
	ctx := context.Background()

	newOrder := func(t *testing.T, f *poFixture) (*trade.PurchaseOrder, *trade.PurchaseOrderItem) {
		order, err := trade.NewPurchaseOrder("PO1", f.vendor.ID, time.Now())
		require.NoError(t, err)
		item, err := order.AddItem(uuid.New(), line(uuid.New(), "10", "100", "18", "intra").LineInput())
		require.NoError(t, err)
		return order, item
	}

	t.Run("reprice pending order", func(t *testing.T) {
		f := newPOFixture(t)
		order, item := newOrder(t, f)
		f.orders.On("FindItemByID", ctx, item.ID).Return(item, nil)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orders.On("UpdateItem", ctx, item).Return(nil)
		f.vendors.On("FindByID", ctx, f.vendor.ID).Return(f.vendor, nil)

		_, err := f.svc.UpdateItem(ctx, item.ID, UpdatePurchaseOrderItemRequest{
			Quantity: dec("10"), UnitPrice: dec("100"), TaxPercent: dec("18"), GSTType: "inter",
		})
		require.NoError(t, err)
		assert.Equal(t, "180", item.IGST.String())
		assert.True(t, item.CGST.IsZero())
		f.orders.AssertCalled(t, "UpdateItem", ctx, item)
	})

	t.Run("completed order rejects changes", func(t *testing.T) {
		f := newPOFixture(t)
		order, item := newOrder(t, f)
		require.NoError(t, order.UpdateStatus(trade.PurchaseOrderStatusCompleted))
		f.orders.On("FindItemByID", ctx, item.ID).Return(item, nil)
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := f.svc.RemoveItem(ctx, item.ID)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
		f.orders.AssertNotCalled(t, "RemoveItem", mock.Anything, mock.Anything)
	})

	t.Run("cancelled order cannot be reopened", func(t *testing.T) {
		f := newPOFixture(t)
		order, _ := newOrder(t, f)
		require.NoError(t, order.UpdateStatus(trade.PurchaseOrderStatusCancelled))
		f.orders.On("FindByID", ctx, order.ID).Return(order, nil)

		status := "pending"
		_, err := f.svc.Update(ctx, order.ID, UpdatePurchaseOrderRequest{Status: &status})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestASNService_Create(t *testing.T) {
	ctx := context.Background()
	orders, asns := new(MockPurchaseOrderRepository), new(MockASNRepository)
	svc := NewASNService(asns, orders, appaudit.NopRecorder{})

	vendorID := uuid.New()
	order, err := trade.NewPurchaseOrder("PO1", vendorID, time.Now())
	require.NoError(t, err)
	orders.On("FindByID", ctx, order.ID).Return(order, nil)
	asns.On("Save", ctx, mock.AnythingOfType("*trade.AdvanceShippingNote")).Return(nil)

	resp, err := svc.Create(ctx, CreateASNRequest{POID: order.ID, ExpectedDeliveryDate: time.Now().Add(72 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, vendorID, resp.VendorID)

	missing := uuid.New()
	orders.On("FindByID", ctx, missing).Return(nil, shared.NewNotFoundError("purchase order"))
	_, err = svc.Create(ctx, CreateASNRequest{POID: missing, ExpectedDeliveryDate: time.Now()})
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
}

// MockASNRepository is a mock implementation of ASNRepository
type MockASNRepository struct {
	mock.Mock
}

func (m *MockASNRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.AdvanceShippingNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.AdvanceShippingNote), args.Error(1)
}

func (m *MockASNRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.AdvanceShippingNote, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.AdvanceShippingNote), args.Get(1).(int64), args.Error(2)
}

func (m *MockASNRepository) Save(ctx context.Context, note *trade.AdvanceShippingNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockASNRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
