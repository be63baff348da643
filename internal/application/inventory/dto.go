package inventory

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// LocationRequest creates or replaces a location
type LocationRequest struct {
	LocationName string `json:"location_name" binding:"required,max=200"`
	LocationType string `json:"location_type" binding:"required,max=50"`
	LocationCode string `json:"location_code" binding:"required,max=50"`
	QRBarcode    string `json:"qr_barcode" binding:"max=200"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID           uuid.UUID `json:"id"`
	LocationName string    `json:"location_name"`
	LocationType string    `json:"location_type"`
	LocationCode string    `json:"location_code"`
	QRBarcode    string    `json:"qr_barcode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToLocationResponse converts a domain location to a response
func ToLocationResponse(l *inventory.Location) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		LocationName: l.LocationName,
		LocationType: l.LocationType,
		LocationCode: l.LocationCode,
		QRBarcode:    l.QRBarcode,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// LocationListFilter represents filter options for locations
type LocationListFilter struct {
	Search       string `form:"search"`
	LocationType string `form:"location_type"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreateStockRecordRequest opens a stock record for an item at a location
type CreateStockRecordRequest struct {
	ItemID     uuid.UUID        `json:"item_id" binding:"required"`
	LocationID uuid.UUID        `json:"location_id" binding:"required"`
	Quantity   *decimal.Decimal `json:"quantity" binding:"required"`
}

// UpdateStockRecordRequest overwrites the held quantity
type UpdateStockRecordRequest struct {
	Quantity *decimal.Decimal `json:"quantity" binding:"required"`
}

// StockRecordResponse represents a stock record in API responses
type StockRecordResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	LocationID  uuid.UUID       `json:"location_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LastUpdated time.Time       `json:"last_updated"`
}

// ToStockRecordResponse converts a domain stock record to a response
func ToStockRecordResponse(r *inventory.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:          r.ID,
		ItemID:      r.ItemID,
		LocationID:  r.LocationID,
		Quantity:    r.Quantity,
		LastUpdated: r.LastUpdated,
	}
}

// StockListFilter represents filter options for stock lines
type StockListFilter struct {
	ItemID     string `form:"item_id" binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockRuleRequest creates or replaces the stock rule of an item
type StockRuleRequest struct {
	ItemID      uuid.UUID        `json:"item_id" binding:"required"`
	MOQ         *decimal.Decimal `json:"moq"`
	PackSize    *decimal.Decimal `json:"pack_size"`
	PackDensity *decimal.Decimal `json:"pack_density"`
	ADRMode     string           `json:"adr_mode" binding:"max=50"`
	ADRMonths   int              `json:"adr_months" binding:"min=0"`
	ADR         *decimal.Decimal `json:"adr"`
	LOD         *decimal.Decimal `json:"lod"`
	LODStock    *decimal.Decimal `json:"lod_stock"`
	SafetyStock *decimal.Decimal `json:"safety_stock"`
	ROL         *decimal.Decimal `json:"rol" binding:"required"`
	MaxStock    *decimal.Decimal `json:"max_stock"`
}

// Params converts the request into rule parameters
func (r StockRuleRequest) Params() inventory.StockRuleParams {
	return inventory.StockRuleParams{
		MOQ:         orZero(r.MOQ),
		PackSize:    orZero(r.PackSize),
		PackDensity: orZero(r.PackDensity),
		ADRMode:     r.ADRMode,
		ADRMonths:   r.ADRMonths,
		ADR:         orZero(r.ADR),
		LOD:         orZero(r.LOD),
		LODStock:    orZero(r.LODStock),
		SafetyStock: orZero(r.SafetyStock),
		ROL:         orZero(r.ROL),
		MaxStock:    orZero(r.MaxStock),
	}
}

// StockRuleResponse represents a stock rule in API responses
type StockRuleResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	MOQ         decimal.Decimal `json:"moq"`
	PackSize    decimal.Decimal `json:"pack_size"`
	PackDensity decimal.Decimal `json:"pack_density"`
	ADRMode     string          `json:"adr_mode"`
	ADRMonths   int             `json:"adr_months"`
	ADR         decimal.Decimal `json:"adr"`
	LOD         decimal.Decimal `json:"lod"`
	LODStock    decimal.Decimal `json:"lod_stock"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	ROL         decimal.Decimal `json:"rol"`
	MaxStock    decimal.Decimal `json:"max_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToStockRuleResponse converts a domain stock rule to a response
func ToStockRuleResponse(r *inventory.StockRule) StockRuleResponse {
	return StockRuleResponse{
		ID:          r.ID,
		ItemID:      r.ItemID,
		MOQ:         r.MOQ,
		PackSize:    r.PackSize,
		PackDensity: r.PackDensity,
		ADRMode:     r.ADRMode,
		ADRMonths:   r.ADRMonths,
		ADR:         r.ADR,
		LOD:         r.LOD,
		LODStock:    r.LODStock,
		SafetyStock: r.SafetyStock,
		ROL:         r.ROL,
		MaxStock:    r.MaxStock,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// StockRuleListFilter represents filter options for stock rules
type StockRuleListFilter struct {
	ItemID   string `form:"item_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// MRNItemRequest is one received batch line
type MRNItemRequest struct {
	ItemID              uuid.UUID        `json:"item_id" binding:"required"`
	Quantity            *decimal.Decimal `json:"quantity" binding:"required"`
	BatchNumber         string           `json:"batch_number" binding:"max=100"`
	Price               *decimal.Decimal `json:"price"`
	UOM                 string           `json:"uom" binding:"max=20"`
	ExpiryDate          *time.Time       `json:"expiry_date"`
	ManufactureDate     *time.Time       `json:"manufacture_date"`
	ReceivingLocationID *uuid.UUID       `json:"receiving_location_id"`
}

// CreateMRNRequest records goods received against an invoice
type CreateMRNRequest struct {
	MRNNumber            string           `json:"mrn_number" binding:"max=50"`
	POID                 *uuid.UUID       `json:"po_id"`
	VendorID             uuid.UUID        `json:"vendor_id" binding:"required"`
	InvoiceNumber        string           `json:"invoice_number" binding:"max=100"`
	InvoiceDate          *time.Time       `json:"invoice_date"`
	ReceiptDate          *time.Time       `json:"receipt_date"`
	TransactionReference string           `json:"transaction_reference" binding:"max=100"`
	ScannedBy            string           `json:"scanned_by" binding:"max=100"`
	ReceivedBy           string           `json:"received_by" binding:"max=100"`
	TotalInvoiceValue    *decimal.Decimal `json:"total_invoice_value"`
	TaxDetails           json.RawMessage  `json:"tax_details" swaggertype:"object"`
	Remarks              string           `json:"remarks" binding:"max=2000"`
	Status               string           `json:"status" binding:"omitempty,oneof=pending received binned rejected"`
	Items                []MRNItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateMRNRequest changes the status and remarks of an MRN
type UpdateMRNRequest struct {
	Status  string  `json:"status" binding:"required,oneof=pending received binned rejected"`
	Remarks *string `json:"remarks" binding:"omitempty,max=2000"`
}

// MRNItemResponse represents an MRN line in API responses
type MRNItemResponse struct {
	ID                  uuid.UUID       `json:"id"`
	ItemID              uuid.UUID       `json:"item_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	BatchNumber         string          `json:"batch_number"`
	Price               decimal.Decimal `json:"price"`
	UOM                 string          `json:"uom"`
	ExpiryDate          *time.Time      `json:"expiry_date"`
	ManufactureDate     *time.Time      `json:"manufacture_date"`
	ReceivingLocationID *uuid.UUID      `json:"receiving_location_id"`
}

// MRNResponse represents an MRN in API responses
type MRNResponse struct {
	ID                   uuid.UUID         `json:"id"`
	MRNNumber            string            `json:"mrn_number"`
	POID                 *uuid.UUID        `json:"po_id"`
	VendorID             uuid.UUID         `json:"vendor_id"`
	InvoiceNumber        string            `json:"invoice_number"`
	InvoiceDate          *time.Time        `json:"invoice_date"`
	ReceiptDate          time.Time         `json:"receipt_date"`
	TransactionReference string            `json:"transaction_reference"`
	ScannedBy            string            `json:"scanned_by"`
	ReceivedBy           string            `json:"received_by"`
	TotalInvoiceValue    decimal.Decimal   `json:"total_invoice_value"`
	TaxDetails           json.RawMessage   `json:"tax_details,omitempty" swaggertype:"object"`
	Remarks              string            `json:"remarks"`
	Status               string            `json:"status"`
	Items                []MRNItemResponse `json:"items,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// ToMRNResponse converts a domain MRN to a response
func ToMRNResponse(m *inventory.MRN) MRNResponse {
	resp := MRNResponse{
		ID:                   m.ID,
		MRNNumber:            m.MRNNumber,
		POID:                 m.POID,
		VendorID:             m.VendorID,
		InvoiceNumber:        m.InvoiceNumber,
		InvoiceDate:          m.InvoiceDate,
		ReceiptDate:          m.ReceiptDate,
		TransactionReference: m.TransactionReference,
		ScannedBy:            m.ScannedBy,
		ReceivedBy:           m.ReceivedBy,
		TotalInvoiceValue:    m.TotalInvoiceValue,
		TaxDetails:           m.TaxDetails,
		Remarks:              m.Remarks,
		Status:               string(m.Status),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	for _, it := range m.Items {
		resp.Items = append(resp.Items, MRNItemResponse{
			ID:                  it.ID,
			ItemID:              it.ItemID,
			Quantity:            it.Quantity,
			BatchNumber:         it.BatchNumber,
			Price:               it.Price,
			UOM:                 it.UOM,
			ExpiryDate:          it.ExpiryDate,
			ManufactureDate:     it.ManufactureDate,
			ReceivingLocationID: it.ReceivingLocationID,
		})
	}
	return resp
}

// MRNListFilter represents filter options for MRNs
type MRNListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=pending received binned rejected"`
	VendorID string     `form:"vendor_id" binding:"omitempty,uuid"`
	POID     string     `form:"po_id" binding:"omitempty,uuid"`
	Search   string     `form:"search"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BinRequest puts the stock of an MRN away into a location
type BinRequest struct {
	MRNID           uuid.UUID  `json:"mrn_id" binding:"required"`
	ToLocationID    uuid.UUID  `json:"to_location_id" binding:"required"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// BinningLogResponse represents a binning log in API responses
type BinningLogResponse struct {
	ID              uuid.UUID `json:"id"`
	MRNID           uuid.UUID `json:"mrn_id"`
	ToLocationID    uuid.UUID `json:"to_location_id"`
	BinnedByUserID  uuid.UUID `json:"binned_by_user_id"`
	TransactionDate time.Time `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToBinningLogResponse converts a domain binning log to a response
func ToBinningLogResponse(l *inventory.BinningLog) BinningLogResponse {
	return BinningLogResponse{
		ID:              l.ID,
		MRNID:           l.MRNID,
		ToLocationID:    l.ToLocationID,
		BinnedByUserID:  l.BinnedByUserID,
		TransactionDate: l.TransactionDate,
		CreatedAt:       l.CreatedAt,
	}
}

// BinningLogListFilter represents filter options for binning logs
type BinningLogListFilter struct {
	ItemID     string     `form:"item_id" binding:"omitempty,uuid"`
	LocationID string     `form:"location_id" binding:"omitempty,uuid"`
	UserID     string     `form:"user_id" binding:"omitempty,uuid"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
