package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockRecord is the quantity of one item held at one location
type StockRecord struct {
	shared.BaseEntity
	ItemID      uuid.UUID
	LocationID  uuid.UUID
	Quantity    decimal.Decimal
	LastUpdated time.Time
}

// NewStockRecord creates a stock record
func NewStockRecord(itemID, locationID uuid.UUID, quantity decimal.Decimal) (*StockRecord, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("item_id", "item_id is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewValidationError("location_id", "location_id is required")
	}
	r := &StockRecord{BaseEntity: shared.NewBaseEntity(), ItemID: itemID, LocationID: locationID}
	if err := r.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return r, nil
}

// SetQuantity overwrites the held quantity
func (r *StockRecord) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewValidationError("quantity", "quantity cannot be negative")
	}
	r.Quantity = quantity
	r.LastUpdated = time.Now()
	r.Touch()
	return nil
}

// Receive adds a received quantity to the record
func (r *StockRecord) Receive(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewValidationError("quantity", "received quantity must be positive")
	}
	return r.SetQuantity(r.Quantity.Add(quantity))
}

// LocationStock is one location line of an item summary
type LocationStock struct {
	LocationID   uuid.UUID       `json:"location_id"`
	LocationCode string          `json:"location_code"`
	LocationName string          `json:"location_name"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ItemStockSummary is the total stock of an item across locations
type ItemStockSummary struct {
	ItemID        uuid.UUID       `json:"item_id"`
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Locations     []LocationStock `json:"locations"`
}

// SummarizeByItem groups per-location rows into per-item totals. Input order
// of items is preserved.
func SummarizeByItem(rows []StockLine) []ItemStockSummary {
	index := make(map[uuid.UUID]int)
	var out []ItemStockSummary
	for _, row := range rows {
		i, ok := index[row.ItemID]
		if !ok {
			index[row.ItemID] = len(out)
			out = append(out, ItemStockSummary{
				ItemID:        row.ItemID,
				ItemCode:      row.ItemCode,
				ItemName:      row.ItemName,
				TotalQuantity: decimal.Zero,
			})
			i = len(out) - 1
		}
		out[i].TotalQuantity = out[i].TotalQuantity.Add(row.Quantity)
		out[i].Locations = append(out[i].Locations, LocationStock{
			LocationID:   row.LocationID,
			LocationCode: row.LocationCode,
			LocationName: row.LocationName,
			Quantity:     row.Quantity,
		})
	}
	return out
}

// StockLine is a stock record joined with item and location names
type StockLine struct {
	ID           uuid.UUID       `json:"id"`
	ItemID       uuid.UUID       `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	LocationID   uuid.UUID       `json:"location_id"`
	LocationCode string          `json:"location_code"`
	LocationName string          `json:"location_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	LastUpdated  time.Time       `json:"last_updated"`
}
