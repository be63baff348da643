package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ItemModel{}).Where("is_deleted = ?", false)
}

// FindByID finds a live item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var m models.ItemModel
	if err := r.live(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err, "item")
	}
	return m.ToDomain(), nil
}

// FindByCode finds a live item by its normalized code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var m models.ItemModel
	if err := r.live(ctx).Where("item_code = ?", shared.NormalizeCode(code)).First(&m).Error; err != nil {
		return nil, translateError(err, "item")
	}
	return m.ToDomain(), nil
}

// FindAll lists live items
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.live(ctx), filter, "status", "item_type")
		return search(q, filter.Search, "item_name", "item_code")
	}
	rows, total, err := listPage[models.ItemModel](scope, filter, ItemSortFields, "created_at", "item")
	if err != nil {
		return nil, 0, err
	}
	items := make([]catalog.Item, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return translateError(r.db.WithContext(ctx).Save(models.ItemModelFromDomain(item)).Error, "item")
}

// ExistsByCode checks whether any item row, deleted or not, holds the code
func (r *GormItemRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.ItemModel{}).Where("item_code = ?", shared.NormalizeCode(code))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "item")
	}
	return count > 0, nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
