package trade

import (
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GSTType selects how the goods and services tax of a line is split
type GSTType string

const (
	// GSTIntra is an intra-state supply: tax is split evenly into CGST and SGST
	GSTIntra GSTType = "intra"
	// GSTInter is an inter-state supply: the whole tax is IGST
	GSTInter GSTType = "inter"
)

// IsValid checks if the GST type is one the calculator splits
func (t GSTType) IsValid() bool {
	return t == GSTIntra || t == GSTInter
}

// AmountScale is the number of decimal places kept for tax components
const AmountScale int32 = 4

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineInput is the raw pricing input of a purchase order line
type LineInput struct {
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TaxPercent decimal.Decimal
	GSTType    GSTType
}

// LineAmounts is the priced breakdown of a line
type LineAmounts struct {
	BaseAmount decimal.Decimal `json:"base_amount"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	IGST       decimal.Decimal `json:"igst"`
	Total      decimal.Decimal `json:"total"`
}

// TaxAmount returns the sum of the tax components
func (a LineAmounts) TaxAmount() decimal.Decimal {
	return a.CGST.Add(a.SGST).Add(a.IGST)
}

// Validate checks a line before it is priced or persisted
func (in LineInput) Validate() error {
	if in.Quantity.IsNegative() {
		return shared.NewValidationError("quantity", "quantity cannot be negative")
	}
	if in.UnitPrice.IsNegative() {
		return shared.NewValidationError("unit_price", "unit_price cannot be negative")
	}
	if in.TaxPercent.IsNegative() {
		return shared.NewValidationError("tax_percent", "tax_percent cannot be negative")
	}
	if !in.GSTType.IsValid() {
		return shared.NewValidationError("gst_type", "gst_type must be one of: intra, inter")
	}
	return nil
}

// CalculateLine prices a line. It is pure: the same input always yields the
// same amounts. The base amount is the exact product of quantity and unit
// price, each tax component is rounded half-up to AmountScale places, and the
// total is the exact sum of the base and the rounded taxes. A GST type other
// than intra or inter yields zero tax.
func CalculateLine(in LineInput) LineAmounts {
	base := in.Quantity.Mul(in.UnitPrice)

	cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero
	switch in.GSTType {
	case GSTIntra:
		half := in.TaxPercent.Div(two)
		cgst = half.Mul(base).Div(hundred).Round(AmountScale)
		sgst = cgst
	case GSTInter:
		igst = in.TaxPercent.Mul(base).Div(hundred).Round(AmountScale)
	}

	return LineAmounts{
		BaseAmount: base,
		CGST:       cgst,
		SGST:       sgst,
		IGST:       igst,
		Total:      base.Add(cgst).Add(sgst).Add(igst),
	}
}

// PriceLine validates and then prices a line
func PriceLine(in LineInput) (LineAmounts, error) {
	if err := in.Validate(); err != nil {
		return LineAmounts{}, err
	}
	return CalculateLine(in), nil
}
