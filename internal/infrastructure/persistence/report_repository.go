package persistence

import (
	"context"

	"github.com/medstock/backend/internal/domain/report"
	"github.com/medstock/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormReportRepository runs the report queries using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Inventory returns one row per stock record
func (r *GormReportRepository) Inventory(ctx context.Context, f report.Filter) ([]report.InventoryRow, error) {
	q := r.db.WithContext(ctx).
		Table("inventory AS inv").
		Select("i.item_code, i.item_name, l.location_code, l.location_name, inv.quantity, inv.last_updated").
		Joins("JOIN items i ON i.id = inv.item_id").
		Joins("JOIN locations l ON l.id = inv.location_id")
	if f.From != nil {
		q = q.Where("inv.last_updated >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("inv.last_updated <= ?", *f.To)
	}
	var rows []report.InventoryRow
	if err := q.Order("i.item_code ASC, l.location_code ASC").Scan(&rows).Error; err != nil {
		return nil, translateError(err, "inventory report")
	}
	return rows, nil
}

// PendingPOs returns live purchase orders still awaiting completion
func (r *GormReportRepository) PendingPOs(ctx context.Context, f report.Filter) ([]report.PendingPORow, error) {
	q := r.db.WithContext(ctx).
		Table("purchase_orders AS po").
		Select("po.id AS po_id, po.po_number, v.vendor_name, po.order_date, po.total_amount").
		Joins("JOIN vendors v ON v.id = po.vendor_id").
		Where("po.status = ? AND po.is_deleted = ?", trade.PurchaseOrderStatusPending, false)
	q = r.orderWindow(q, f)
	var rows []report.PendingPORow
	if err := q.Order("po.order_date DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err, "pending purchase order report")
	}
	return rows, nil
}

// VendorPerformance aggregates completed orders per vendor, highest value first
func (r *GormReportRepository) VendorPerformance(ctx context.Context, f report.Filter) ([]report.VendorPerformanceRow, error) {
	q := r.db.WithContext(ctx).
		Table("purchase_orders AS po").
		Select(`v.id AS vendor_id, v.vendor_name, COUNT(po.id) AS order_count,
			COALESCE(SUM(po.total_amount), 0) AS total_value`).
		Joins("JOIN vendors v ON v.id = po.vendor_id").
		Where("po.status = ? AND po.is_deleted = ?", trade.PurchaseOrderStatusCompleted, false)
	q = r.orderWindow(q, f)
	var rows []report.VendorPerformanceRow
	err := q.Group("v.id, v.vendor_name").
		Order("total_value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "vendor performance report")
	}
	return rows, nil
}

func (r *GormReportRepository) orderWindow(q *gorm.DB, f report.Filter) *gorm.DB {
	if f.From != nil {
		q = q.Where("po.order_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("po.order_date <= ?", *f.To)
	}
	if f.VendorID != nil {
		q = q.Where("po.vendor_id = ?", *f.VendorID)
	}
	return q
}

var _ report.Repository = (*GormReportRepository)(nil)
