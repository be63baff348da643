package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	var m models.LocationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "location")
	}
	return m.ToDomain(), nil
}

// FindAll lists locations
func (r *GormLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Location, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.db.WithContext(ctx).Model(&models.LocationModel{}), filter, "location_type")
		return search(q, filter.Search, "location_name", "location_code")
	}
	rows, total, err := listPage[models.LocationModel](scope, filter, LocationSortFields, "location_code", "location")
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.Location, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	return translateError(r.db.WithContext(ctx).Save(models.LocationModelFromDomain(location)).Error, "location")
}

// Delete removes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundIfNoRows(r.db.WithContext(ctx).Delete(&models.LocationModel{}, "id = ?", id), "location")
}

// ExistsByCode checks whether a location holds the code
func (r *GormLocationRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.LocationModel{}).Where("location_code = ?", shared.NormalizeCode(code))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "location")
	}
	return count > 0, nil
}

var _ inventory.LocationRepository = (*GormLocationRepository)(nil)
