package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to create a new item
type CreateItemRequest struct {
	ItemName          string           `json:"item_name" binding:"required,min=1,max=200"`
	ItemCode          string           `json:"item_code" binding:"required,min=1,max=50"`
	ItemSpecification string           `json:"item_specification" binding:"max=2000"`
	ItemType          string           `json:"item_type" binding:"max=100"`
	PackSize          string           `json:"pack_size" binding:"max=50"`
	UOM               string           `json:"uom" binding:"max=20"`
	LatestPrice       *decimal.Decimal `json:"latest_price"`
	AvgPrice10Batches *decimal.Decimal `json:"avg_price_10_batches"`
	Status            string           `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateItemRequest represents a request to update an item
type UpdateItemRequest struct {
	ItemName          *string          `json:"item_name" binding:"omitempty,min=1,max=200"`
	ItemCode          *string          `json:"item_code" binding:"omitempty,min=1,max=50"`
	ItemSpecification *string          `json:"item_specification" binding:"omitempty,max=2000"`
	ItemType          *string          `json:"item_type" binding:"omitempty,max=100"`
	PackSize          *string          `json:"pack_size" binding:"omitempty,max=50"`
	UOM               *string          `json:"uom" binding:"omitempty,max=20"`
	LatestPrice       *decimal.Decimal `json:"latest_price"`
	AvgPrice10Batches *decimal.Decimal `json:"avg_price_10_batches"`
	Status            *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ItemName          string          `json:"item_name"`
	ItemCode          string          `json:"item_code"`
	ItemSpecification string          `json:"item_specification"`
	ItemType          string          `json:"item_type"`
	PackSize          string          `json:"pack_size"`
	UOM               string          `json:"uom"`
	LatestPrice       decimal.Decimal `json:"latest_price"`
	AvgPrice10Batches decimal.Decimal `json:"avg_price_10_batches"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain Item to ItemResponse
func ToItemResponse(i *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		ItemName:          i.ItemName,
		ItemCode:          i.ItemCode,
		ItemSpecification: i.ItemSpecification,
		ItemType:          i.ItemType,
		PackSize:          i.PackSize,
		UOM:               i.UOM,
		LatestPrice:       i.LatestPrice,
		AvgPrice10Batches: i.AvgPrice10Batches,
		Status:            string(i.Status),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search   string `form:"search"`
	ItemType string `form:"item_type"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}
