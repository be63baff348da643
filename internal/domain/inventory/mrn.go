package inventory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MRNStatus represents the state of a material receipt note
type MRNStatus string

const (
	MRNStatusPending  MRNStatus = "pending"
	MRNStatusReceived MRNStatus = "received"
	MRNStatusBinned   MRNStatus = "binned"
	MRNStatusRejected MRNStatus = "rejected"
)

// IsValid checks if the status is a valid MRNStatus
func (s MRNStatus) IsValid() bool {
	switch s {
	case MRNStatusPending, MRNStatusReceived, MRNStatusBinned, MRNStatusRejected:
		return true
	}
	return false
}

// MRN is a material receipt note: goods received against an invoice
type MRN struct {
	shared.BaseEntity
	MRNNumber            string
	POID                 *uuid.UUID
	VendorID             uuid.UUID
	InvoiceNumber        string
	InvoiceDate          *time.Time
	ReceiptDate          time.Time
	TransactionReference string
	ScannedBy            string
	ReceivedBy           string
	TotalInvoiceValue    decimal.Decimal
	TaxDetails           json.RawMessage
	Remarks              string
	Status               MRNStatus
	Items                []MRNItem
}

// MRNItem is one received batch line of an MRN
type MRNItem struct {
	shared.BaseEntity
	MRNID               uuid.UUID
	ItemID              uuid.UUID
	Quantity            decimal.Decimal
	BatchNumber         string
	Price               decimal.Decimal
	UOM                 string
	ExpiryDate          *time.Time
	ManufactureDate     *time.Time
	ReceivingLocationID *uuid.UUID
}

// GenerateMRNNumber builds an MRN number from a timestamp
func GenerateMRNNumber(now time.Time) string {
	return fmt.Sprintf("MRN%d", now.UnixMilli())
}

// NewMRN creates a pending MRN
func NewMRN(number string, vendorID uuid.UUID, receiptDate time.Time) (*MRN, error) {
	if number == "" {
		return nil, shared.NewValidationError("mrn_number", "mrn_number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "vendor_id is required")
	}
	if receiptDate.IsZero() {
		receiptDate = time.Now()
	}
	return &MRN{
		BaseEntity:        shared.NewBaseEntity(),
		MRNNumber:         number,
		VendorID:          vendorID,
		ReceiptDate:       receiptDate,
		TotalInvoiceValue: decimal.Zero,
		Status:            MRNStatusPending,
	}, nil
}

// SetTaxDetails stores free-form tax details; the payload must be valid JSON
func (m *MRN) SetTaxDetails(raw json.RawMessage) error {
	if len(raw) == 0 {
		m.TaxDetails = nil
		return nil
	}
	if !json.Valid(raw) {
		return shared.NewValidationError("tax_details", "tax_details must be valid JSON")
	}
	m.TaxDetails = raw
	return nil
}

// AddItem appends a received line
func (m *MRN) AddItem(item MRNItem) error {
	if item.ItemID == uuid.Nil {
		return shared.NewValidationError("item_id", "item_id is required")
	}
	if !item.Quantity.IsPositive() {
		return shared.NewValidationError("quantity", "quantity must be greater than zero")
	}
	if item.Price.IsNegative() {
		return shared.NewValidationError("price", "price cannot be negative")
	}
	if item.ExpiryDate != nil && item.ManufactureDate != nil && item.ExpiryDate.Before(*item.ManufactureDate) {
		return shared.NewValidationError("expiry_date", "expiry_date cannot be before manufacture_date")
	}
	item.BaseEntity = shared.NewBaseEntity()
	item.MRNID = m.ID
	m.Items = append(m.Items, item)
	return nil
}

// UpdateStatus changes the status and remarks
func (m *MRN) UpdateStatus(status MRNStatus, remarks *string) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "status must be one of: pending, received, binned, rejected")
	}
	m.Status = status
	if remarks != nil {
		m.Remarks = *remarks
	}
	m.Touch()
	return nil
}

// CanBin reports whether stock from this MRN may still be put away
func (m *MRN) CanBin() error {
	switch m.Status {
	case MRNStatusBinned:
		return shared.NewConflictError("MRN has already been binned")
	case MRNStatusRejected:
		return shared.NewValidationError("mrn_id", "cannot bin a rejected MRN")
	}
	if len(m.Items) == 0 {
		return shared.NewValidationError("mrn_id", "MRN has no items to bin")
	}
	return nil
}

// BinningLog records the put-away of an MRN into a location
type BinningLog struct {
	shared.BaseEntity
	MRNID           uuid.UUID
	ToLocationID    uuid.UUID
	BinnedByUserID  uuid.UUID
	TransactionDate time.Time
}

// NewBinningLog creates a binning log entry
func NewBinningLog(mrnID, toLocationID, userID uuid.UUID, date time.Time) (*BinningLog, error) {
	if mrnID == uuid.Nil {
		return nil, shared.NewValidationError("mrn_id", "mrn_id is required")
	}
	if toLocationID == uuid.Nil {
		return nil, shared.NewValidationError("to_location_id", "to_location_id is required")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &BinningLog{
		BaseEntity:      shared.NewBaseEntity(),
		MRNID:           mrnID,
		ToLocationID:    toLocationID,
		BinnedByUserID:  userID,
		TransactionDate: date,
	}, nil
}
