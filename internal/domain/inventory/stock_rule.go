package inventory

import (
	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockRule holds the replenishment parameters of an item
type StockRule struct {
	shared.BaseEntity
	ItemID      uuid.UUID
	MOQ         decimal.Decimal
	PackSize    decimal.Decimal
	PackDensity decimal.Decimal
	ADRMode     string
	ADRMonths   int
	ADR         decimal.Decimal
	LOD         decimal.Decimal
	LODStock    decimal.Decimal
	SafetyStock decimal.Decimal
	ROL         decimal.Decimal
	MaxStock    decimal.Decimal
}

// StockRuleParams is the editable part of a stock rule
type StockRuleParams struct {
	MOQ         decimal.Decimal
	PackSize    decimal.Decimal
	PackDensity decimal.Decimal
	ADRMode     string
	ADRMonths   int
	ADR         decimal.Decimal
	LOD         decimal.Decimal
	LODStock    decimal.Decimal
	SafetyStock decimal.Decimal
	ROL         decimal.Decimal
	MaxStock    decimal.Decimal
}

// NewStockRule creates a rule for an item
func NewStockRule(itemID uuid.UUID, params StockRuleParams) (*StockRule, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("item_id", "item_id is required")
	}
	r := &StockRule{BaseEntity: shared.NewBaseEntity(), ItemID: itemID}
	if err := r.Apply(params); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply validates and sets the rule parameters
func (r *StockRule) Apply(p StockRuleParams) error {
	fields := map[string]decimal.Decimal{
		"moq": p.MOQ, "pack_size": p.PackSize, "pack_density": p.PackDensity, "adr": p.ADR,
		"lod": p.LOD, "lod_stock": p.LODStock, "safety_stock": p.SafetyStock, "rol": p.ROL, "max_stock": p.MaxStock,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return shared.NewValidationError(name, name+" cannot be negative")
		}
	}
	if p.ADRMonths < 0 {
		return shared.NewValidationError("adr_months", "adr_months cannot be negative")
	}
	if p.MaxStock.IsPositive() && p.ROL.GreaterThan(p.MaxStock) {
		return shared.NewValidationError("rol", "rol cannot exceed max_stock")
	}
	r.MOQ = p.MOQ
	r.PackSize = p.PackSize
	r.PackDensity = p.PackDensity
	r.ADRMode = p.ADRMode
	r.ADRMonths = p.ADRMonths
	r.ADR = p.ADR
	r.LOD = p.LOD
	r.LODStock = p.LODStock
	r.SafetyStock = p.SafetyStock
	r.ROL = p.ROL
	r.MaxStock = p.MaxStock
	r.Touch()
	return nil
}

// ReorderCandidate is an item whose stock has fallen below its reorder level
type ReorderCandidate struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ItemCode  string          `json:"item_code"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	ROL       decimal.Decimal `json:"rol"`
	MaxStock  decimal.Decimal `json:"max_stock"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// NeedsReorder reports whether quantity is strictly below the reorder level
func (r *StockRule) NeedsReorder(quantity decimal.Decimal) bool {
	return quantity.LessThan(r.ROL)
}
