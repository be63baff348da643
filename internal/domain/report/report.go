// Package report defines the read models of the operational reports.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Type names a report
type Type string

const (
	TypeInventory         Type = "inventory"
	TypePendingPOs        Type = "pending-pos"
	TypeVendorPerformance Type = "vendor-performance"
)

// ParseType validates a report type
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeInventory, TypePendingPOs, TypeVendorPerformance:
		return t, nil
	}
	return "", shared.NewValidationError("type", "invalid report type: must be one of inventory, pending-pos, vendor-performance")
}

// Filter narrows a report
type Filter struct {
	From     *time.Time
	To       *time.Time
	VendorID *uuid.UUID
}

// InventoryRow is one stock record of the inventory report
type InventoryRow struct {
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	LocationCode string          `json:"location_code"`
	LocationName string          `json:"location_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// PendingPORow is one pending purchase order
type PendingPORow struct {
	POID        uuid.UUID       `json:"po_id"`
	PONumber    string          `json:"po_number"`
	VendorName  string          `json:"vendor_name"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// VendorPerformanceRow aggregates completed orders of one vendor
type VendorPerformanceRow struct {
	VendorID   uuid.UUID       `json:"vendor_id"`
	VendorName string          `json:"vendor_name"`
	OrderCount int64           `json:"order_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Repository runs the report queries
type Repository interface {
	Inventory(ctx context.Context, f Filter) ([]InventoryRow, error)
	PendingPOs(ctx context.Context, f Filter) ([]PendingPORow, error)
	VendorPerformance(ctx context.Context, f Filter) ([]VendorPerformanceRow, error)
}
