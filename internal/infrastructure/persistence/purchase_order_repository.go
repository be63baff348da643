package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

func (r *GormPurchaseOrderRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).Where("is_deleted = ?", false)
}

// Create inserts the order and its lines in one transaction
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, order *trade.PurchaseOrder) error {
	m := models.PurchaseOrderModelFromDomain(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := m.Items
		m.Items = nil
		if err := tx.Omit("Items").Create(m).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err, "purchase order")
}

// FindByID loads a live order with its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var m models.PurchaseOrderModel
	err := r.live(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, "purchase order")
	}
	return m.ToDomain(), nil
}

// FindAll lists live order headers
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.live(ctx), filter, "status", "vendor_id")
		q = dateRange(q, "order_date", filter)
		return search(q, filter.Search, "po_number")
	}
	rows, total, err := listPage[models.PurchaseOrderModel](scope, filter, PurchaseOrderSortFields, "created_at", "purchase order")
	if err != nil {
		return nil, 0, err
	}
	orders := make([]trade.PurchaseOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// Update persists the header fields of the order
func (r *GormPurchaseOrderRepository) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	result := r.db.WithContext(ctx).Model(&models.PurchaseOrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     order.Status,
			"order_date": order.OrderDate,
			"is_deleted": order.IsDeleted,
			"updated_at": order.UpdatedAt,
		})
	return notFoundIfNoRows(result, "purchase order")
}

// FindItemByID finds a line of a live order
func (r *GormPurchaseOrderRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*trade.PurchaseOrderItem, error) {
	var m models.PurchaseOrderItemModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND po_id IN (?)", itemID,
			r.db.Model(&models.PurchaseOrderModel{}).Select("id").Where("is_deleted = ?", false)).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, "purchase order item")
	}
	return m.ToDomain(), nil
}

// FindItems lists the lines of an order in insertion order
func (r *GormPurchaseOrderRepository) FindItems(ctx context.Context, poID uuid.UUID) ([]trade.PurchaseOrderItem, error) {
	var rows []models.PurchaseOrderItemModel
	if err := r.db.WithContext(ctx).Where("po_id = ?", poID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err, "purchase order item")
	}
	items := make([]trade.PurchaseOrderItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// AddItem inserts a line and recomputes the order total
func (r *GormPurchaseOrderRepository) AddItem(ctx context.Context, item *trade.PurchaseOrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.PurchaseOrderItemModelFromDomain(item)).Error; err != nil {
			return err
		}
		return recalculateTotal(tx, item.POID)
	})
	return translateError(err, "purchase order item")
}

// UpdateItem persists a repriced line and recomputes the order total
func (r *GormPurchaseOrderRepository) UpdateItem(ctx context.Context, item *trade.PurchaseOrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PurchaseOrderItemModel{}).
			Where("id = ?", item.ID).
			Updates(map[string]any{
				"quantity":    item.Quantity,
				"unit_price":  item.UnitPrice,
				"tax_percent": item.TaxPercent,
				"gst_type":    item.GSTType,
				"cgst":        item.CGST,
				"sgst":        item.SGST,
				"igst":        item.IGST,
				"total_price": item.TotalPrice,
				"updated_at":  item.UpdatedAt,
			})
		if err := notFoundIfNoRows(result, "purchase order item"); err != nil {
			return err
		}
		return recalculateTotal(tx, item.POID)
	})
	return translateError(err, "purchase order item")
}

// RemoveItem deletes a line and recomputes the order total
func (r *GormPurchaseOrderRepository) RemoveItem(ctx context.Context, item *trade.PurchaseOrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.PurchaseOrderItemModel{}, "id = ?", item.ID)
		if err := notFoundIfNoRows(result, "purchase order item"); err != nil {
			return err
		}
		return recalculateTotal(tx, item.POID)
	})
	return translateError(err, "purchase order item")
}

// recalculateTotal sets total_amount to the sum of the order's line totals
func recalculateTotal(tx *gorm.DB, poID uuid.UUID) error {
	return tx.Exec(
		`UPDATE purchase_orders
		SET total_amount = (SELECT COALESCE(SUM(total_price), 0) FROM purchase_order_items WHERE po_id = ?),
			updated_at = ?
		WHERE id = ?`,
		poID, time.Now().UTC(), poID,
	).Error
}

// GormASNRepository implements ASNRepository using GORM
type GormASNRepository struct {
	db *gorm.DB
}

// NewGormASNRepository creates a new GormASNRepository
func NewGormASNRepository(db *gorm.DB) *GormASNRepository {
	return &GormASNRepository{db: db}
}

// FindByID finds a shipping note by ID
func (r *GormASNRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.AdvanceShippingNote, error) {
	var m models.ASNModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "ASN")
	}
	return m.ToDomain(), nil
}

// FindAll lists shipping notes
func (r *GormASNRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.AdvanceShippingNote, int64, error) {
	scope := func() *gorm.DB {
		return equals(r.db.WithContext(ctx).Model(&models.ASNModel{}), filter, "po_id", "vendor_id")
	}
	rows, total, err := listPage[models.ASNModel](scope, filter, ASNSortFields, "created_at", "ASN")
	if err != nil {
		return nil, 0, err
	}
	out := make([]trade.AdvanceShippingNote, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a shipping note
func (r *GormASNRepository) Save(ctx context.Context, note *trade.AdvanceShippingNote) error {
	return translateError(r.db.WithContext(ctx).Save(models.ASNModelFromDomain(note)).Error, "ASN")
}

// Delete removes a shipping note
func (r *GormASNRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundIfNoRows(r.db.WithContext(ctx).Delete(&models.ASNModel{}, "id = ?", id), "ASN")
}

var (
	_ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
	_ trade.ASNRepository           = (*GormASNRepository)(nil)
)
