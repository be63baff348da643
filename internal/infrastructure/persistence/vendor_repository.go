package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.VendorModel{}).Where("is_deleted = ?", false)
}

// FindByID finds a live vendor by ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var m models.VendorModel
	if err := r.live(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err, "vendor")
	}
	return m.ToDomain(), nil
}

// FindByCode finds a live vendor by its normalized code
func (r *GormVendorRepository) FindByCode(ctx context.Context, code string) (*partner.Vendor, error) {
	var m models.VendorModel
	if err := r.live(ctx).Where("vendor_code = ?", shared.NormalizeCode(code)).First(&m).Error; err != nil {
		return nil, translateError(err, "vendor")
	}
	return m.ToDomain(), nil
}

// FindAll lists live vendors
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.live(ctx), filter, "item_type")
		return search(q, filter.Search, "vendor_name", "vendor_code")
	}
	rows, total, err := listPage[models.VendorModel](scope, filter, VendorSortFields, "created_at", "vendor")
	if err != nil {
		return nil, 0, err
	}
	vendors := make([]partner.Vendor, len(rows))
	for i := range rows {
		vendors[i] = *rows[i].ToDomain()
	}
	return vendors, total, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	return translateError(r.db.WithContext(ctx).Save(models.VendorModelFromDomain(vendor)).Error, "vendor")
}

// ExistsByCode checks whether any vendor row, deleted or not, holds the code.
// The unique index spans soft-deleted rows.
func (r *GormVendorRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.VendorModel{}).Where("vendor_code = ?", shared.NormalizeCode(code))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "vendor")
	}
	return count > 0, nil
}

// GormVendorItemRepository implements VendorItemRepository using GORM
type GormVendorItemRepository struct {
	db *gorm.DB
}

// NewGormVendorItemRepository creates a new GormVendorItemRepository
func NewGormVendorItemRepository(db *gorm.DB) *GormVendorItemRepository {
	return &GormVendorItemRepository{db: db}
}

// FindByID finds a vendor item link by ID
func (r *GormVendorItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.VendorItem, error) {
	var m models.VendorItemModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "vendor item")
	}
	return m.ToDomain(), nil
}

// FindAll lists vendor item links
func (r *GormVendorItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.VendorItem, int64, error) {
	scope := func() *gorm.DB {
		return equals(r.db.WithContext(ctx).Model(&models.VendorItemModel{}), filter, "vendor_id", "item_id")
	}
	rows, total, err := listPage[models.VendorItemModel](scope, filter, VendorItemSortFields, "created_at", "vendor item")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.VendorItem, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a vendor item link
func (r *GormVendorItemRepository) Save(ctx context.Context, link *partner.VendorItem) error {
	return translateError(r.db.WithContext(ctx).Save(models.VendorItemModelFromDomain(link)).Error, "vendor item")
}

// Delete removes a vendor item link
func (r *GormVendorItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundIfNoRows(r.db.WithContext(ctx).Delete(&models.VendorItemModel{}, "id = ?", id), "vendor item")
}

var (
	_ partner.VendorRepository     = (*GormVendorRepository)(nil)
	_ partner.VendorItemRepository = (*GormVendorItemRepository)(nil)
)
