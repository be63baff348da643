package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockLocationRepository is a mock implementation of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Location), args.Error(1)
}

func (m *MockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Location, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Location), args.Get(1).(int64), args.Error(2)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockStockRecordRepository is a mock implementation of StockRecordRepository
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, itemID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindLines(ctx context.Context, filter shared.Filter) ([]inventory.StockLine, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockLine), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRecordRepository) Create(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) Update(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) AddQuantity(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockRuleRepository is a mock implementation of StockRuleRepository
type MockStockRuleRepository struct {
	mock.Mock
}

func (m *MockStockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRule), args.Error(1)
}

func (m *MockStockRuleRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*inventory.StockRule, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRule), args.Error(1)
}

func (m *MockStockRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRule, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockRule), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRuleRepository) Save(ctx context.Context, rule *inventory.StockRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockStockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRuleRepository) FindReorderCandidates(ctx context.Context) ([]inventory.ReorderCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.ReorderCandidate), args.Error(1)
}

// MockMRNRepository is a mock implementation of MRNRepository
type MockMRNRepository struct {
	mock.Mock
}

func (m *MockMRNRepository) Create(ctx context.Context, mrn *inventory.MRN) error {
	args := m.Called(ctx, mrn)
	return args.Error(0)
}

func (m *MockMRNRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.MRN, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.MRN), args.Error(1)
}

func (m *MockMRNRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.MRN, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.MRN), args.Error(1)
}

func (m *MockMRNRepository) MarkBinned(ctx context.Context, mrn *inventory.MRN) error {
	args := m.Called(ctx, mrn)
	return args.Error(0)
}

func (m *MockMRNRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.MRN, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.MRN), args.Get(1).(int64), args.Error(2)
}

func (m *MockMRNRepository) Update(ctx context.Context, mrn *inventory.MRN) error {
	args := m.Called(ctx, mrn)
	return args.Error(0)
}

func (m *MockMRNRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBinningLogRepository is a mock implementation of BinningLogRepository
type MockBinningLogRepository struct {
	mock.Mock
}

func (m *MockBinningLogRepository) Create(ctx context.Context, log *inventory.BinningLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockBinningLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.BinningLog, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.BinningLog), args.Get(1).(int64), args.Error(2)
}
