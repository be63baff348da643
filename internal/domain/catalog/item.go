package catalog

import (
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemStatus represents whether an item can be ordered
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// IsValid checks if the status is a valid ItemStatus
func (s ItemStatus) IsValid() bool {
	return s == ItemStatusActive || s == ItemStatusInactive
}

// Item is a stockable product in the master catalog
type Item struct {
	shared.BaseEntity
	shared.SoftDeletable
	ItemName          string
	ItemCode          string
	ItemSpecification string
	ItemType          string
	PackSize          string
	UOM               string
	LatestPrice       decimal.Decimal
	AvgPrice10Batches decimal.Decimal
	Status            ItemStatus
}

// ItemDetails holds the descriptive fields of an item
type ItemDetails struct {
	ItemSpecification string
	ItemType          string
	PackSize          string
	UOM               string
}

// NewItem creates an active item with a normalized code
func NewItem(name, code string, details ItemDetails) (*Item, error) {
	item := &Item{
		BaseEntity:        shared.NewBaseEntity(),
		Status:            ItemStatusActive,
		LatestPrice:       decimal.Zero,
		AvgPrice10Batches: decimal.Zero,
	}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.SetCode(code); err != nil {
		return nil, err
	}
	item.SetDetails(details)
	return item, nil
}

// Rename changes the item name
func (i *Item) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("item_name", "item_name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("item_name", "item_name cannot exceed 200 characters")
	}
	i.ItemName = name
	i.Touch()
	return nil
}

// SetCode changes the item code
func (i *Item) SetCode(code string) error {
	code = shared.NormalizeCode(code)
	if code == "" {
		return shared.NewValidationError("item_code", "item_code is required")
	}
	if len(code) > 50 {
		return shared.NewValidationError("item_code", "item_code cannot exceed 50 characters")
	}
	i.ItemCode = code
	i.Touch()
	return nil
}

// SetDetails replaces the descriptive fields
func (i *Item) SetDetails(d ItemDetails) {
	i.ItemSpecification = d.ItemSpecification
	i.ItemType = d.ItemType
	i.PackSize = d.PackSize
	i.UOM = d.UOM
	i.Touch()
}

// SetPrices updates the latest and rolling average prices
func (i *Item) SetPrices(latest, avg10 decimal.Decimal) error {
	if latest.IsNegative() {
		return shared.NewValidationError("latest_price", "latest_price cannot be negative")
	}
	if avg10.IsNegative() {
		return shared.NewValidationError("avg_price_10_batches", "avg_price_10_batches cannot be negative")
	}
	i.LatestPrice = latest
	i.AvgPrice10Batches = avg10
	i.Touch()
	return nil
}

// SetStatus activates or deactivates the item
func (i *Item) SetStatus(status ItemStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "status must be one of: active, inactive")
	}
	i.Status = status
	i.Touch()
	return nil
}

// Delete soft-deletes the item
func (i *Item) Delete() {
	i.IsDeleted = true
	i.Touch()
}
