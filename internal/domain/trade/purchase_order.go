package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusCompleted PurchaseOrderStatus = "completed"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Completed and cancelled are terminal.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	if s == target {
		return true
	}
	return s == PurchaseOrderStatusPending &&
		(target == PurchaseOrderStatusCompleted || target == PurchaseOrderStatusCancelled)
}

// PurchaseOrder is the aggregate root for a purchase order and its lines
type PurchaseOrder struct {
	shared.BaseEntity
	shared.SoftDeletable
	PONumber    string
	VendorID    uuid.UUID
	OrderDate   time.Time
	Status      PurchaseOrderStatus
	TotalAmount decimal.Decimal
	CreatedBy   *uuid.UUID
	Items       []PurchaseOrderItem
}

// GeneratePONumber builds a purchase order number from a timestamp
func GeneratePONumber(now time.Time) string {
	return fmt.Sprintf("PO%d", now.UnixMilli())
}

// NewPurchaseOrder creates a pending purchase order
func NewPurchaseOrder(poNumber string, vendorID uuid.UUID, orderDate time.Time) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewValidationError("po_number", "po_number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "vendor_id is required")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	return &PurchaseOrder{
		BaseEntity:  shared.NewBaseEntity(),
		PONumber:    poNumber,
		VendorID:    vendorID,
		OrderDate:   orderDate,
		Status:      PurchaseOrderStatusPending,
		TotalAmount: decimal.Zero,
	}, nil
}

// AddItem prices a line and appends it to the order
func (po *PurchaseOrder) AddItem(itemID uuid.UUID, in LineInput) (*PurchaseOrderItem, error) {
	if err := po.EnsureEditable(); err != nil {
		return nil, err
	}
	item, err := NewPurchaseOrderItem(po.ID, itemID, in)
	if err != nil {
		return nil, err
	}
	po.Items = append(po.Items, *item)
	po.RecalculateTotal()
	return item, nil
}

// RecalculateTotal sets the order total to the sum of its line totals
func (po *PurchaseOrder) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range po.Items {
		total = total.Add(item.TotalPrice)
	}
	po.TotalAmount = total
	po.Touch()
}

// EnsureEditable rejects line changes on orders that are no longer pending
func (po *PurchaseOrder) EnsureEditable() error {
	if po.Status != PurchaseOrderStatusPending {
		return shared.NewValidationError("status", fmt.Sprintf("cannot modify items of a %s purchase order", po.Status))
	}
	return nil
}

// UpdateStatus moves the order to a new status
func (po *PurchaseOrder) UpdateStatus(status PurchaseOrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "status must be one of: pending, completed, cancelled")
	}
	if !po.Status.CanTransitionTo(status) {
		return shared.NewValidationError("status", fmt.Sprintf("cannot change status from %s to %s", po.Status, status))
	}
	po.Status = status
	po.Touch()
	return nil
}

// SetOrderDate changes the order date
func (po *PurchaseOrder) SetOrderDate(date time.Time) error {
	if date.IsZero() {
		return shared.NewValidationError("order_date", "order_date cannot be empty")
	}
	po.OrderDate = date
	po.Touch()
	return nil
}

// SetCreatedBy records the user that raised the order
func (po *PurchaseOrder) SetCreatedBy(userID uuid.UUID) {
	po.CreatedBy = &userID
}

// Delete soft-deletes the order
func (po *PurchaseOrder) Delete() {
	po.IsDeleted = true
	po.Touch()
}

// PurchaseOrderItem is a priced line of a purchase order
type PurchaseOrderItem struct {
	shared.BaseEntity
	POID       uuid.UUID
	ItemID     uuid.UUID
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	GSTType    GSTType
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewPurchaseOrderItem validates and prices a new line
func NewPurchaseOrderItem(poID, itemID uuid.UUID, in LineInput) (*PurchaseOrderItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("item_id", "item_id is required")
	}
	item := &PurchaseOrderItem{
		BaseEntity: shared.NewBaseEntity(),
		POID:       poID,
		ItemID:     itemID,
	}
	if err := item.Reprice(in); err != nil {
		return nil, err
	}
	return item, nil
}

// Reprice replaces the pricing input of the line and recomputes its taxes
func (i *PurchaseOrderItem) Reprice(in LineInput) error {
	amounts, err := PriceLine(in)
	if err != nil {
		return err
	}
	i.Quantity = in.Quantity
	i.UnitPrice = in.UnitPrice
	i.TaxPercent = in.TaxPercent
	i.GSTType = in.GSTType
	i.CGST = amounts.CGST
	i.SGST = amounts.SGST
	i.IGST = amounts.IGST
	i.TotalPrice = amounts.Total
	i.Touch()
	return nil
}

// LineInput returns the current pricing input of the line
func (i *PurchaseOrderItem) LineInput() LineInput {
	return LineInput{
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TaxPercent: i.TaxPercent,
		GSTType:    i.GSTType,
	}
}
