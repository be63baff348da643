package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines persistence operations for purchase orders.
// Line mutations recompute the stored order total in the same transaction.
type PurchaseOrderRepository interface {
	// Create inserts the order together with its lines
	Create(ctx context.Context, order *PurchaseOrder) error
	// FindByID loads a live order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	// FindAll lists live orders; filters: status, vendor_id, and From/To on order_date
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, int64, error)
	// Update persists header fields (status, order date, deletion flag)
	Update(ctx context.Context, order *PurchaseOrder) error

	FindItemByID(ctx context.Context, itemID uuid.UUID) (*PurchaseOrderItem, error)
	FindItems(ctx context.Context, poID uuid.UUID) ([]PurchaseOrderItem, error)
	AddItem(ctx context.Context, item *PurchaseOrderItem) error
	UpdateItem(ctx context.Context, item *PurchaseOrderItem) error
	RemoveItem(ctx context.Context, item *PurchaseOrderItem) error
}

// ASNRepository defines persistence operations for advance shipping notes
type ASNRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdvanceShippingNote, error)
	// FindAll lists notes; filters: po_id, vendor_id
	FindAll(ctx context.Context, filter shared.Filter) ([]AdvanceShippingNote, int64, error)
	Save(ctx context.Context, note *AdvanceShippingNote) error
	Delete(ctx context.Context, id uuid.UUID) error
}
