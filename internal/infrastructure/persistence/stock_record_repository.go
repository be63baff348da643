package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var m models.StockRecordModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "inventory record")
	}
	return m.ToDomain(), nil
}

// FindByItemAndLocation finds the record of an item at a location
func (r *GormStockRecordRepository) FindByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*inventory.StockRecord, error) {
	var m models.StockRecordModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND location_id = ?", itemID, locationID).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, "inventory record")
	}
	return m.ToDomain(), nil
}

// FindLines lists stock records joined with item and location names,
// ordered by item code then location code
func (r *GormStockRecordRepository) FindLines(ctx context.Context, filter shared.Filter) ([]inventory.StockLine, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Table("inventory AS inv").
			Joins("JOIN items i ON i.id = inv.item_id").
			Joins("JOIN locations l ON l.id = inv.location_id")
		if v, ok := filter.Filters["item_id"]; ok {
			q = q.Where("inv.item_id = ?", v)
		}
		if v, ok := filter.Filters["location_id"]; ok {
			q = q.Where("inv.location_id = ?", v)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "inventory record")
	}

	q := scope().
		Select(`inv.id, inv.item_id, i.item_code, i.item_name, inv.location_id,
			l.location_code, l.location_name, inv.quantity, inv.last_updated`).
		Order("i.item_code ASC, l.location_code ASC")
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	var lines []inventory.StockLine
	if err := q.Scan(&lines).Error; err != nil {
		return nil, 0, translateError(err, "inventory record")
	}
	return lines, total, nil
}

// Create inserts a record; a duplicate (item, location) pair is a conflict
func (r *GormStockRecordRepository) Create(ctx context.Context, record *inventory.StockRecord) error {
	err := r.db.WithContext(ctx).Create(models.StockRecordModelFromDomain(record)).Error
	if err != nil {
		if shared.IsConflict(translateError(err, "")) {
			return shared.NewConflictError("inventory record for this item and location already exists")
		}
		return translateError(err, "inventory record")
	}
	return nil
}

// Update persists the quantity of a record
func (r *GormStockRecordRepository) Update(ctx context.Context, record *inventory.StockRecord) error {
	result := r.db.WithContext(ctx).Model(&models.StockRecordModel{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"quantity":     record.Quantity,
			"last_updated": record.LastUpdated,
			"updated_at":   record.UpdatedAt,
		})
	return notFoundIfNoRows(result, "inventory record")
}

// AddQuantity inserts record, or when its (item, location) pair exists adds
// record.Quantity to the stored quantity in the same statement
func (r *GormStockRecordRepository) AddQuantity(ctx context.Context, record *inventory.StockRecord) error {
	m := models.StockRecordModelFromDomain(record)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "item_id"}, {Name: "location_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":     gorm.Expr(m.TableName()+".quantity + ?", m.Quantity),
				"last_updated": m.LastUpdated,
				"updated_at":   m.UpdatedAt,
			}),
		}).
		Create(m).Error
	return translateError(err, "inventory record")
}

// Delete removes a record
func (r *GormStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundIfNoRows(r.db.WithContext(ctx).Delete(&models.StockRecordModel{}, "id = ?", id), "inventory record")
}

var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)
