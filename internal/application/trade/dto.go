package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest is one priced line of a purchase order request.
// Amounts accept JSON numbers or numeric strings.
type PurchaseOrderItemRequest struct {
	ItemID     uuid.UUID        `json:"item_id" binding:"required"`
	Quantity   *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price" binding:"required"`
	TaxPercent *decimal.Decimal `json:"tax_percent" binding:"required"`
	GSTType    string           `json:"gst_type" binding:"required"`
}

// LineInput converts the request into calculator input
func (r PurchaseOrderItemRequest) LineInput() trade.LineInput {
	return trade.LineInput{
		Quantity:   deref(r.Quantity),
		UnitPrice:  deref(r.UnitPrice),
		TaxPercent: deref(r.TaxPercent),
		GSTType:    trade.GSTType(r.GSTType),
	}
}

// UpdatePurchaseOrderItemRequest reprices an existing line
type UpdatePurchaseOrderItemRequest struct {
	Quantity   *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price" binding:"required"`
	TaxPercent *decimal.Decimal `json:"tax_percent" binding:"required"`
	GSTType    string           `json:"gst_type" binding:"required"`
}

// LineInput converts the request into calculator input
func (r UpdatePurchaseOrderItemRequest) LineInput() trade.LineInput {
	return trade.LineInput{
		Quantity:   deref(r.Quantity),
		UnitPrice:  deref(r.UnitPrice),
		TaxPercent: deref(r.TaxPercent),
		GSTType:    trade.GSTType(r.GSTType),
	}
}

// CreatePurchaseOrderRequest represents a request to raise a purchase order
type CreatePurchaseOrderRequest struct {
	VendorID  uuid.UUID                  `json:"vendor_id" binding:"required"`
	OrderDate *time.Time                 `json:"order_date"`
	Items     []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderRequest changes the status and/or order date
type UpdatePurchaseOrderRequest struct {
	Status    *string    `json:"status" binding:"omitempty,oneof=pending completed cancelled"`
	OrderDate *time.Time `json:"order_date"`
}

// PurchaseOrderItemResponse represents a purchase order line in API responses
type PurchaseOrderItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	POID       uuid.UUID       `json:"po_id"`
	ItemID     uuid.UUID       `json:"item_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	GSTType    string          `json:"gst_type"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	IGST       decimal.Decimal `json:"igst"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToPurchaseOrderItemResponse converts a domain line to a response
func ToPurchaseOrderItemResponse(i *trade.PurchaseOrderItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ID:         i.ID,
		POID:       i.POID,
		ItemID:     i.ItemID,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TaxPercent: i.TaxPercent,
		GSTType:    string(i.GSTType),
		CGST:       i.CGST,
		SGST:       i.SGST,
		IGST:       i.IGST,
		TotalPrice: i.TotalPrice,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID          uuid.UUID                   `json:"id"`
	PONumber    string                      `json:"po_number"`
	VendorID    uuid.UUID                   `json:"vendor_id"`
	VendorName  string                      `json:"vendor_name,omitempty"`
	OrderDate   time.Time                   `json:"order_date"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	CreatedBy   *uuid.UUID                  `json:"created_by,omitempty"`
	Items       []PurchaseOrderItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain order to a response
func ToPurchaseOrderResponse(po *trade.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:          po.ID,
		PONumber:    po.PONumber,
		VendorID:    po.VendorID,
		OrderDate:   po.OrderDate,
		Status:      string(po.Status),
		TotalAmount: po.TotalAmount,
		CreatedBy:   po.CreatedBy,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
	if len(po.Items) > 0 {
		resp.Items = make([]PurchaseOrderItemResponse, len(po.Items))
		for i := range po.Items {
			resp.Items[i] = ToPurchaseOrderItemResponse(&po.Items[i])
		}
	}
	return resp
}

// PurchaseOrderListFilter represents filter options for purchase orders
type PurchaseOrderListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	VendorID string     `form:"vendor_id" binding:"omitempty,uuid"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreateASNRequest represents a request to announce a delivery
type CreateASNRequest struct {
	POID                 uuid.UUID `json:"po_id" binding:"required"`
	ExpectedDeliveryDate time.Time `json:"expected_delivery_date" binding:"required"`
	Remarks              string    `json:"remarks" binding:"max=2000"`
}

// UpdateASNRequest reschedules a delivery
type UpdateASNRequest struct {
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	Remarks              *string    `json:"remarks" binding:"omitempty,max=2000"`
}

// ASNResponse represents an advance shipping note in API responses
type ASNResponse struct {
	ID                   uuid.UUID `json:"id"`
	POID                 uuid.UUID `json:"po_id"`
	VendorID             uuid.UUID `json:"vendor_id"`
	ExpectedDeliveryDate time.Time `json:"expected_delivery_date"`
	Remarks              string    `json:"remarks"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ToASNResponse converts a domain shipping note to a response
func ToASNResponse(a *trade.AdvanceShippingNote) ASNResponse {
	return ASNResponse{
		ID:                   a.ID,
		POID:                 a.POID,
		VendorID:             a.VendorID,
		ExpectedDeliveryDate: a.ExpectedDeliveryDate,
		Remarks:              a.Remarks,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// ASNListFilter represents filter options for shipping notes
type ASNListFilter struct {
	POID     string `form:"po_id" binding:"omitempty,uuid"`
	VendorID string `form:"vendor_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
