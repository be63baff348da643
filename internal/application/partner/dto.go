package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest represents a request to create a new vendor
type CreateVendorRequest struct {
	VendorName          string `json:"vendor_name" binding:"required,min=1,max=200"`
	VendorCode          string `json:"vendor_code" binding:"required,min=1,max=50"`
	RegistrationDetails string `json:"registration_details" binding:"max=2000"`
	Address             string `json:"address" binding:"max=2000"`
	ItemType            string `json:"item_type" binding:"max=100"`
	LogisticsMethod     string `json:"logistics_method" binding:"max=100"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	VendorName          *string `json:"vendor_name" binding:"omitempty,min=1,max=200"`
	VendorCode          *string `json:"vendor_code" binding:"omitempty,min=1,max=50"`
	RegistrationDetails *string `json:"registration_details" binding:"omitempty,max=2000"`
	Address             *string `json:"address" binding:"omitempty,max=2000"`
	ItemType            *string `json:"item_type" binding:"omitempty,max=100"`
	LogisticsMethod     *string `json:"logistics_method" binding:"omitempty,max=100"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID                  uuid.UUID `json:"id"`
	VendorName          string    `json:"vendor_name"`
	VendorCode          string    `json:"vendor_code"`
	RegistrationDetails string    `json:"registration_details"`
	Address             string    `json:"address"`
	ItemType            string    `json:"item_type"`
	LogisticsMethod     string    `json:"logistics_method"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToVendorResponse converts a domain Vendor to VendorResponse
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:                  v.ID,
		VendorName:          v.VendorName,
		VendorCode:          v.VendorCode,
		RegistrationDetails: v.RegistrationDetails,
		Address:             v.Address,
		ItemType:            v.ItemType,
		LogisticsMethod:     v.LogisticsMethod,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

// VendorListFilter represents filter options for the vendor list
type VendorListFilter struct {
	Search   string `form:"search"`
	ItemType string `form:"item_type"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// CreateVendorItemRequest represents a request to link a vendor to an item
type CreateVendorItemRequest struct {
	VendorID uuid.UUID        `json:"vendor_id" binding:"required"`
	ItemID   uuid.UUID        `json:"item_id" binding:"required"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
}

// UpdateVendorItemRequest represents a request to change a quoted price
type UpdateVendorItemRequest struct {
	Price *decimal.Decimal `json:"price" binding:"required"`
}

// VendorItemResponse represents a vendor price link in API responses
type VendorItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	VendorID  uuid.UUID       `json:"vendor_id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToVendorItemResponse converts a domain VendorItem to VendorItemResponse
func ToVendorItemResponse(vi *partner.VendorItem) VendorItemResponse {
	return VendorItemResponse{
		ID:        vi.ID,
		VendorID:  vi.VendorID,
		ItemID:    vi.ItemID,
		Price:     vi.Price,
		CreatedAt: vi.CreatedAt,
		UpdatedAt: vi.UpdatedAt,
	}
}

// VendorItemListFilter represents filter options for vendor price links
type VendorItemListFilter struct {
	VendorID string `form:"vendor_id" binding:"omitempty,uuid"`
	ItemID   string `form:"item_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
