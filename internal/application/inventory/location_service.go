package inventory

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
)

// LocationService manages storage locations
type LocationService struct {
	repo     inventory.LocationRepository
	recorder appaudit.Recorder
}

// NewLocationService creates a new LocationService
func NewLocationService(repo inventory.LocationRepository, recorder appaudit.Recorder) *LocationService {
	return &LocationService{repo: repo, recorder: recorder}
}

// Create creates a location with a unique code
func (s *LocationService) Create(ctx context.Context, req LocationRequest) (*LocationResponse, error) {
	loc, err := inventory.NewLocation(req.LocationName, req.LocationType, req.LocationCode, req.QRBarcode)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, loc.LocationCode, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "locations", loc.ID.String(), "created location "+loc.LocationCode)
	resp := ToLocationResponse(loc)
	return &resp, nil
}

// GetByID retrieves a location
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(loc)
	return &resp, nil
}

// List retrieves locations with filtering and pagination
func (s *LocationService) List(ctx context.Context, filter LocationListFilter) ([]LocationResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	f.Search = filter.Search
	if filter.LocationType != "" {
		f.Filters["location_type"] = filter.LocationType
	}
	locs, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LocationResponse, len(locs))
	for i := range locs {
		out[i] = ToLocationResponse(&locs[i])
	}
	return out, total, nil
}

// Update replaces the fields of a location
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req LocationRequest) (*LocationResponse, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loc.Update(req.LocationName, req.LocationType, req.LocationCode, req.QRBarcode); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, loc.LocationCode, &id); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "locations", id.String(), "updated location "+loc.LocationCode)
	resp := ToLocationResponse(loc)
	return &resp, nil
}

// Delete removes a location
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "locations", id.String(), "")
	return nil
}

func (s *LocationService) ensureUniqueCode(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.repo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("Location with this code already exists")
	}
	return nil
}
