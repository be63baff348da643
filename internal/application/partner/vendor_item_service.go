package partner

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
)

// VendorItemService manages the prices vendors quote for items
type VendorItemService struct {
	linkRepo   partner.VendorItemRepository
	vendorRepo partner.VendorRepository
	itemRepo   catalog.ItemRepository
	recorder   appaudit.Recorder
}

// NewVendorItemService creates a new VendorItemService
func NewVendorItemService(
	linkRepo partner.VendorItemRepository,
	vendorRepo partner.VendorRepository,
	itemRepo catalog.ItemRepository,
	recorder appaudit.Recorder,
) *VendorItemService {
	return &VendorItemService{
		linkRepo:   linkRepo,
		vendorRepo: vendorRepo,
		itemRepo:   itemRepo,
		recorder:   recorder,
	}
}

// Create links a live vendor to a live item
func (s *VendorItemService) Create(ctx context.Context, req CreateVendorItemRequest) (*VendorItemResponse, error) {
	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, asField(err, "vendor_id", "vendor does not exist")
	}
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, asField(err, "item_id", "item does not exist")
	}

	link, err := partner.NewVendorItem(req.VendorID, req.ItemID, *req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "vendor_items", link.ID.String(), "")

	resp := ToVendorItemResponse(link)
	return &resp, nil
}

// GetByID retrieves a vendor price link
func (s *VendorItemService) GetByID(ctx context.Context, id uuid.UUID) (*VendorItemResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorItemResponse(link)
	return &resp, nil
}

// List retrieves price links filtered by vendor or item
func (s *VendorItemService) List(ctx context.Context, filter VendorItemListFilter) ([]VendorItemResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "")
	if filter.VendorID != "" {
		f.Filters["vendor_id"] = filter.VendorID
	}
	if filter.ItemID != "" {
		f.Filters["item_id"] = filter.ItemID
	}
	links, total, err := s.linkRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]VendorItemResponse, len(links))
	for i := range links {
		out[i] = ToVendorItemResponse(&links[i])
	}
	return out, total, nil
}

// UpdatePrice changes the quoted price of a link
func (s *VendorItemService) UpdatePrice(ctx context.Context, id uuid.UUID, req UpdateVendorItemRequest) (*VendorItemResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := link.SetPrice(*req.Price); err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "vendor_items", id.String(), "price "+req.Price.String())

	resp := ToVendorItemResponse(link)
	return &resp, nil
}

// Delete removes a price link
func (s *VendorItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.linkRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "vendor_items", id.String(), "")
	return nil
}

// asField turns a missing reference into a validation error on the request field
func asField(err error, field, message string) error {
	if shared.IsNotFound(err) {
		return shared.NewValidationError(field, message)
	}
	return err
}
