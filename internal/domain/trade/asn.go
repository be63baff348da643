package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// AdvanceShippingNote announces an expected delivery against a purchase order
type AdvanceShippingNote struct {
	shared.BaseEntity
	POID                 uuid.UUID
	VendorID             uuid.UUID
	ExpectedDeliveryDate time.Time
	Remarks              string
}

// NewAdvanceShippingNote creates a shipping note
func NewAdvanceShippingNote(poID, vendorID uuid.UUID, expected time.Time, remarks string) (*AdvanceShippingNote, error) {
	if poID == uuid.Nil {
		return nil, shared.NewValidationError("po_id", "po_id is required")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "vendor_id is required")
	}
	if expected.IsZero() {
		return nil, shared.NewValidationError("expected_delivery_date", "expected_delivery_date is required")
	}
	return &AdvanceShippingNote{
		BaseEntity:           shared.NewBaseEntity(),
		POID:                 poID,
		VendorID:             vendorID,
		ExpectedDeliveryDate: expected,
		Remarks:              remarks,
	}, nil
}

// Reschedule updates the expected delivery date and remarks
func (a *AdvanceShippingNote) Reschedule(expected *time.Time, remarks *string) {
	if expected != nil && !expected.IsZero() {
		a.ExpectedDeliveryDate = *expected
	}
	if remarks != nil {
		a.Remarks = *remarks
	}
	a.Touch()
}
