package partner

import (
	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Vendor is a supplier of items
type Vendor struct {
	shared.BaseEntity
	shared.SoftDeletable
	VendorName          string
	VendorCode          string
	RegistrationDetails string
	Address             string
	ItemType            string
	LogisticsMethod     string
}

// VendorDetails holds the descriptive fields of a vendor
type VendorDetails struct {
	RegistrationDetails string
	Address             string
	ItemType            string
	LogisticsMethod     string
}

// NewVendor creates a vendor with a normalized code
func NewVendor(name, code string, details VendorDetails) (*Vendor, error) {
	v := &Vendor{BaseEntity: shared.NewBaseEntity()}
	if err := v.Rename(name); err != nil {
		return nil, err
	}
	if err := v.SetCode(code); err != nil {
		return nil, err
	}
	v.SetDetails(details)
	return v, nil
}

// Rename changes the vendor name
func (v *Vendor) Rename(name string) error {
	if name == "" {
		return shared.NewValidationError("vendor_name", "vendor_name is required")
	}
	if len(name) > 200 {
		return shared.NewValidationError("vendor_name", "vendor_name cannot exceed 200 characters")
	}
	v.VendorName = name
	v.Touch()
	return nil
}

// SetCode changes the vendor code
func (v *Vendor) SetCode(code string) error {
	code = shared.NormalizeCode(code)
	if code == "" {
		return shared.NewValidationError("vendor_code", "vendor_code is required")
	}
	if len(code) > 50 {
		return shared.NewValidationError("vendor_code", "vendor_code cannot exceed 50 characters")
	}
	v.VendorCode = code
	v.Touch()
	return nil
}

// SetDetails replaces the descriptive fields
func (v *Vendor) SetDetails(d VendorDetails) {
	v.RegistrationDetails = d.RegistrationDetails
	v.Address = d.Address
	v.ItemType = d.ItemType
	v.LogisticsMethod = d.LogisticsMethod
	v.Touch()
}

// Delete soft-deletes the vendor
func (v *Vendor) Delete() {
	v.IsDeleted = true
	v.Touch()
}

// VendorItem links a vendor to an item at a quoted price
type VendorItem struct {
	shared.BaseEntity
	VendorID uuid.UUID
	ItemID   uuid.UUID
	Price    decimal.Decimal
}

// NewVendorItem creates a vendor price link
func NewVendorItem(vendorID, itemID uuid.UUID, price decimal.Decimal) (*VendorItem, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor_id", "vendor_id is required")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("item_id", "item_id is required")
	}
	vi := &VendorItem{BaseEntity: shared.NewBaseEntity(), VendorID: vendorID, ItemID: itemID}
	if err := vi.SetPrice(price); err != nil {
		return nil, err
	}
	return vi, nil
}

// SetPrice changes the quoted price
func (vi *VendorItem) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("price", "price cannot be negative")
	}
	vi.Price = price
	vi.Touch()
	return nil
}
