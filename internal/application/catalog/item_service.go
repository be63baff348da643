package catalog

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemService handles the item master
type ItemService struct {
	itemRepo catalog.ItemRepository
	recorder appaudit.Recorder
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, recorder appaudit.Recorder) *ItemService {
	return &ItemService{itemRepo: itemRepo, recorder: recorder}
}

// Create creates a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.ItemName, req.ItemCode, catalog.ItemDetails{
		ItemSpecification: req.ItemSpecification,
		ItemType:          req.ItemType,
		PackSize:          req.PackSize,
		UOM:               req.UOM,
	})
	if err != nil {
		return nil, err
	}
	if err := item.SetPrices(orZero(req.LatestPrice), orZero(req.AvgPrice10Batches)); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := item.SetStatus(catalog.ItemStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	exists, err := s.itemRepo.ExistsByCode(ctx, item.ItemCode, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Item with this code already exists")
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "items", item.ID.String(), "created item "+item.ItemCode)

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List retrieves live items with filtering and pagination
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	f.Search = filter.Search
	if filter.ItemType != "" {
		f.Filters["item_type"] = filter.ItemType
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	items, total, err := s.itemRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out, total, nil
}

// Update updates an item
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil {
		if err := item.Rename(*req.ItemName); err != nil {
			return nil, err
		}
	}
	if req.ItemCode != nil {
		if err := item.SetCode(*req.ItemCode); err != nil {
			return nil, err
		}
		exists, err := s.itemRepo.ExistsByCode(ctx, item.ItemCode, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("Item with this code already exists")
		}
	}

	item.SetDetails(catalog.ItemDetails{
		ItemSpecification: pick(req.ItemSpecification, item.ItemSpecification),
		ItemType:          pick(req.ItemType, item.ItemType),
		PackSize:          pick(req.PackSize, item.PackSize),
		UOM:               pick(req.UOM, item.UOM),
	})

	latest, avg := item.LatestPrice, item.AvgPrice10Batches
	if req.LatestPrice != nil {
		latest = *req.LatestPrice
	}
	if req.AvgPrice10Batches != nil {
		avg = *req.AvgPrice10Batches
	}
	if err := item.SetPrices(latest, avg); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := item.SetStatus(catalog.ItemStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "items", id.String(), "updated item "+item.ItemCode)

	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete soft-deletes an item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	item.Delete()
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "items", id.String(), "deleted item "+item.ItemCode)
	return nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func pick(v *string, current string) string {
	if v != nil {
		return *v
	}
	return current
}
