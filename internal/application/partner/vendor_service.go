package partner

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
	recorder   appaudit.Recorder
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, recorder appaudit.Recorder) *VendorService {
	return &VendorService{vendorRepo: vendorRepo, recorder: recorder}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	vendor, err := partner.NewVendor(req.VendorName, req.VendorCode, partner.VendorDetails{
		RegistrationDetails: req.RegistrationDetails,
		Address:             req.Address,
		ItemType:            req.ItemType,
		LogisticsMethod:     req.LogisticsMethod,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.vendorRepo.ExistsByCode(ctx, vendor.VendorCode, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Vendor with this code already exists")
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "vendors", vendor.ID.String(), "created vendor "+vendor.VendorCode)

	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, id uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// List retrieves live vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, filter VendorListFilter) ([]VendorResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	f.Search = filter.Search
	if filter.ItemType != "" {
		f.Filters["item_type"] = filter.ItemType
	}

	vendors, total, err := s.vendorRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = ToVendorResponse(&vendors[i])
	}
	return out, total, nil
}

// Update updates a vendor
func (s *VendorService) Update(ctx context.Context, id uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.VendorName != nil {
		if err := vendor.Rename(*req.VendorName); err != nil {
			return nil, err
		}
	}
	if req.VendorCode != nil {
		if err := vendor.SetCode(*req.VendorCode); err != nil {
			return nil, err
		}
		exists, err := s.vendorRepo.ExistsByCode(ctx, vendor.VendorCode, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("Vendor with this code already exists")
		}
	}

	details := partner.VendorDetails{
		RegistrationDetails: pick(req.RegistrationDetails, vendor.RegistrationDetails),
		Address:             pick(req.Address, vendor.Address),
		ItemType:            pick(req.ItemType, vendor.ItemType),
		LogisticsMethod:     pick(req.LogisticsMethod, vendor.LogisticsMethod),
	}
	vendor.SetDetails(details)

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "vendors", id.String(), "updated vendor "+vendor.VendorCode)

	resp := ToVendorResponse(vendor)
	return &resp, nil
}

// Delete soft-deletes a vendor
func (s *VendorService) Delete(ctx context.Context, id uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	vendor.Delete()
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "vendors", id.String(), "deleted vendor "+vendor.VendorCode)
	return nil
}

func pick(v *string, current string) string {
	if v != nil {
		return *v
	}
	return current
}
