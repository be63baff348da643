package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVendorRepository is a mock implementation of VendorRepository
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

// MockVendorItemRepository is a mock implementation of VendorItemRepository
type MockVendorItemRepository struct {
	mock.Mock
}

func (m *MockVendorItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.VendorItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.VendorItem), args.Error(1)
}

func (m *MockVendorItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.VendorItem, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.VendorItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorItemRepository) Save(ctx context.Context, link *partner.VendorItem) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockVendorItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

func TestVendorService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes code", func(t *testing.T) {
		repo := new(MockVendorRepository)
		svc := NewVendorService(repo, appaudit.NopRecorder{})
		repo.On("ExistsByCode", ctx, "SUN-01", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Vendor")).Return(nil)

		resp, err := svc.Create(ctx, CreateVendorRequest{VendorName: "Sun Pharma", VendorCode: " sun-01 "})
		require.NoError(t, err)
		assert.Equal(t, "SUN-01", resp.VendorCode)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockVendorRepository)
		svc := NewVendorService(repo, appaudit.NopRecorder{})
		repo.On("ExistsByCode", ctx, "SUN-01", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, CreateVendorRequest{VendorName: "Sun Pharma", VendorCode: "SUN-01"})
		assert.Equal(t, shared.CodeConflict, shared.CodeOf(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		svc := NewVendorService(new(MockVendorRepository), appaudit.NopRecorder{})
		_, err := svc.Create(ctx, CreateVendorRequest{VendorCode: "X"})
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}

func TestVendorService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	vendor, err := partner.NewVendor("Sun Pharma", "SUN", partner.VendorDetails{Address: "Mumbai", ItemType: "API"})
	require.NoError(t, err)

	repo := new(MockVendorRepository)
	svc := NewVendorService(repo, appaudit.NopRecorder{})
	repo.On("FindByID", ctx, vendor.ID).Return(vendor, nil)
	repo.On("Save", ctx, vendor).Return(nil)

	address := "Pune"
	resp, err := svc.Update(ctx, vendor.ID, UpdateVendorRequest{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "Pune", resp.Address)
	assert.Equal(t, "API", resp.ItemType)

	require.NoError(t, svc.Delete(ctx, vendor.ID))
	assert.True(t, vendor.IsDeleted)
}

func TestVendorItemService_Create(t *testing.T) {
	ctx := context.Background()
	vendorID, itemID := uuid.New(), uuid.New()
	price := decimal.NewFromInt(42)

	t.Run("deleted vendor is a validation error", func(t *testing.T) {
		vendors := new(MockVendorRepository)
		svc := NewVendorItemService(new(MockVendorItemRepository), vendors, new(MockItemRepository), appaudit.NopRecorder{})
		vendors.On("FindByID", ctx, vendorID).Return(nil, shared.NewNotFoundError("vendor"))

		_, err := svc.Create(ctx, CreateVendorItemRequest{VendorID: vendorID, ItemID: itemID, Price: &price})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "vendor_id", de.Field)
	})

	t.Run("links live vendor and item", func(t *testing.T) {
		vendors, items, links := new(MockVendorRepository), new(MockItemRepository), new(MockVendorItemRepository)
		svc := NewVendorItemService(links, vendors, items, appaudit.NopRecorder{})
		vendors.On("FindByID", ctx, vendorID).Return(&partner.Vendor{}, nil)
		items.On("FindByID", ctx, itemID).Return(&catalog.Item{}, nil)
		links.On("Save", ctx, mock.AnythingOfType("*partner.VendorItem")).Return(nil)

		resp, err := svc.Create(ctx, CreateVendorItemRequest{VendorID: vendorID, ItemID: itemID, Price: &price})
		require.NoError(t, err)
		assert.True(t, price.Equal(resp.Price))
		links.AssertExpectations(t)
	})
}
