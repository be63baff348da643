package models

import (
	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/partner"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	SoftDeleteModel
	VendorName          string `gorm:"type:varchar(200);not null"`
	VendorCode          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	RegistrationDetails string `gorm:"type:text"`
	Address             string `gorm:"type:text"`
	ItemType            string `gorm:"type:varchar(100)"`
	LogisticsMethod     string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		BaseEntity:          m.BaseModel.ToDomain(),
		SoftDeletable:       shared.SoftDeletable{IsDeleted: m.IsDeleted},
		VendorName:          m.VendorName,
		VendorCode:          m.VendorCode,
		RegistrationDetails: m.RegistrationDetails,
		Address:             m.Address,
		ItemType:            m.ItemType,
		LogisticsMethod:     m.LogisticsMethod,
	}
}

// VendorModelFromDomain creates a persistence model from a domain Vendor.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{
		VendorName:          v.VendorName,
		VendorCode:          v.VendorCode,
		RegistrationDetails: v.RegistrationDetails,
		Address:             v.Address,
		ItemType:            v.ItemType,
		LogisticsMethod:     v.LogisticsMethod,
	}
	m.FromDomainSoftDeletable(v.BaseEntity, v.SoftDeletable)
	return m
}

// VendorItemModel is the persistence model for vendor price links.
type VendorItemModel struct {
	BaseModel
	VendorID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_item,priority:1"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_vendor_item,priority:2"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (VendorItemModel) TableName() string {
	return "vendor_items"
}

// ToDomain converts the persistence model to a domain VendorItem.
func (m *VendorItemModel) ToDomain() *partner.VendorItem {
	return &partner.VendorItem{
		BaseEntity: m.BaseModel.ToDomain(),
		VendorID:   m.VendorID,
		ItemID:     m.ItemID,
		Price:      m.Price,
	}
}

// VendorItemModelFromDomain creates a persistence model from a domain VendorItem.
func VendorItemModelFromDomain(vi *partner.VendorItem) *VendorItemModel {
	m := &VendorItemModel{VendorID: vi.VendorID, ItemID: vi.ItemID, Price: vi.Price}
	m.FromDomainBaseEntity(vi.BaseEntity)
	return m
}
