package inventory

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
)

// StockService manages per-location stock records
type StockService struct {
	stockRepo    inventory.StockRecordRepository
	itemRepo     catalog.ItemRepository
	locationRepo inventory.LocationRepository
	recorder     appaudit.Recorder
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockRecordRepository,
	itemRepo catalog.ItemRepository,
	locationRepo inventory.LocationRepository,
	recorder appaudit.Recorder,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		recorder:     recorder,
	}
}

// Create opens a stock record. One record exists per (item, location).
func (s *StockService) Create(ctx context.Context, req CreateStockRecordRequest) (*StockRecordResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, referenceError(err, "item_id", "item does not exist")
	}
	if _, err := s.locationRepo.FindByID(ctx, req.LocationID); err != nil {
		return nil, referenceError(err, "location_id", "location does not exist")
	}
	rec, err := inventory.NewStockRecord(req.ItemID, req.LocationID, orZero(req.Quantity))
	if err != nil {
		return nil, err
	}
	if err := s.stockRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "inventory", rec.ID.String(), "quantity "+rec.Quantity.String())
	resp := ToStockRecordResponse(rec)
	return &resp, nil
}

// GetByID retrieves a stock record
func (s *StockService) GetByID(ctx context.Context, id uuid.UUID) (*StockRecordResponse, error) {
	rec, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStockRecordResponse(rec)
	return &resp, nil
}

// List returns joined stock lines ordered by item and location code
func (s *StockService) List(ctx context.Context, filter StockListFilter) ([]inventory.StockLine, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "")
	if filter.ItemID != "" {
		f.Filters["item_id"] = filter.ItemID
	}
	if filter.LocationID != "" {
		f.Filters["location_id"] = filter.LocationID
	}
	return s.stockRepo.FindLines(ctx, f)
}

// Update overwrites the held quantity
func (s *StockService) Update(ctx context.Context, id uuid.UUID, req UpdateStockRecordRequest) (*StockRecordResponse, error) {
	rec, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rec.SetQuantity(orZero(req.Quantity)); err != nil {
		return nil, err
	}
	if err := s.stockRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "inventory", id.String(), "quantity "+rec.Quantity.String())
	resp := ToStockRecordResponse(rec)
	return &resp, nil
}

// Delete removes a stock record
func (s *StockService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "inventory", id.String(), "")
	return nil
}

// Summary totals stock per item with the per-location breakdown
func (s *StockService) Summary(ctx context.Context) ([]inventory.ItemStockSummary, error) {
	f := shared.DefaultFilter()
	f.PageSize = 0
	lines, _, err := s.stockRepo.FindLines(ctx, f)
	if err != nil {
		return nil, err
	}
	return inventory.SummarizeByItem(lines), nil
}

// ByItem returns the per-location stock lines of one item
func (s *StockService) ByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.StockLine, error) {
	f := shared.DefaultFilter().With("item_id", itemID)
	f.PageSize = 0
	lines, _, err := s.stockRepo.FindLines(ctx, f)
	return lines, err
}

// referenceError turns a missing referenced row into a validation error on field
func referenceError(err error, field, message string) error {
	if shared.IsNotFound(err) {
		return shared.NewValidationError(field, message)
	}
	return err
}
