package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockRuleRepository implements StockRuleRepository using GORM
type GormStockRuleRepository struct {
	db *gorm.DB
}

// NewGormStockRuleRepository creates a new GormStockRuleRepository
func NewGormStockRuleRepository(db *gorm.DB) *GormStockRuleRepository {
	return &GormStockRuleRepository{db: db}
}

// FindByID finds a rule by ID
func (r *GormStockRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRule, error) {
	var m models.StockRuleModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "stock rule")
	}
	return m.ToDomain(), nil
}

// FindByItemID finds the rule of an item
func (r *GormStockRuleRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*inventory.StockRule, error) {
	var m models.StockRuleModel
	if err := r.db.WithContext(ctx).First(&m, "item_id = ?", itemID).Error; err != nil {
		return nil, translateError(err, "stock rule")
	}
	return m.ToDomain(), nil
}

// FindAll lists rules
func (r *GormStockRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRule, int64, error) {
	scope := func() *gorm.DB {
		return equals(r.db.WithContext(ctx).Model(&models.StockRuleModel{}), filter, "item_id")
	}
	rows, total, err := listPage[models.StockRuleModel](scope, filter, StockRuleSortFields, "created_at", "stock rule")
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.StockRule, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a rule; a second rule for an item is a conflict
func (r *GormStockRuleRepository) Save(ctx context.Context, rule *inventory.StockRule) error {
	return translateError(r.db.WithContext(ctx).Save(models.StockRuleModelFromDomain(rule)).Error, "stock rule")
}

// Delete removes a rule
func (r *GormStockRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundIfNoRows(r.db.WithContext(ctx).Delete(&models.StockRuleModel{}, "id = ?", id), "stock rule")
}

type reorderRow struct {
	ItemID   uuid.UUID
	ItemCode string
	ItemName string
	Quantity decimal.Decimal
	ROL      decimal.Decimal `gorm:"column:rol"`
	MaxStock decimal.Decimal
}

// FindReorderCandidates returns live items whose summed stock is strictly
// below their reorder level, lowest stock first
func (r *GormStockRuleRepository) FindReorderCandidates(ctx context.Context) ([]inventory.ReorderCandidate, error) {
	var rows []reorderRow
	err := r.db.WithContext(ctx).
		Table("stock_rules AS sr").
		Select(`sr.item_id, i.item_code, i.item_name,
			COALESCE(SUM(inv.quantity), 0) AS quantity, sr.rol, sr.max_stock`).
		Joins("JOIN items i ON i.id = sr.item_id AND i.is_deleted = ?", false).
		Joins("LEFT JOIN inventory inv ON inv.item_id = sr.item_id").
		Group("sr.item_id, i.item_code, i.item_name, sr.rol, sr.max_stock").
		Having("COALESCE(SUM(inv.quantity), 0) < sr.rol").
		Order("quantity ASC, i.item_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "stock rule")
	}

	out := make([]inventory.ReorderCandidate, len(rows))
	for i, row := range rows {
		out[i] = inventory.ReorderCandidate{
			ItemID:    row.ItemID,
			ItemCode:  row.ItemCode,
			ItemName:  row.ItemName,
			Quantity:  row.Quantity,
			ROL:       row.ROL,
			MaxStock:  row.MaxStock,
			Shortfall: row.ROL.Sub(row.Quantity),
		}
	}
	return out, nil
}

var _ inventory.StockRuleRepository = (*GormStockRuleRepository)(nil)
