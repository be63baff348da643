package models

import (
	"github.com/medstock/backend/internal/domain/catalog"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemModel is the persistence model for the Item domain entity.
type ItemModel struct {
	SoftDeleteModel
	ItemName          string             `gorm:"type:varchar(200);not null"`
	ItemCode          string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	ItemSpecification string             `gorm:"type:text"`
	ItemType          string             `gorm:"type:varchar(100);index"`
	PackSize          string             `gorm:"type:varchar(50)"`
	UOM               string             `gorm:"column:uom;type:varchar(20)"`
	LatestPrice       decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	AvgPrice10Batches decimal.Decimal    `gorm:"column:avg_price_10_batches;type:decimal(18,4);not null;default:0"`
	Status            catalog.ItemStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		BaseEntity:        m.BaseModel.ToDomain(),
		SoftDeletable:     shared.SoftDeletable{IsDeleted: m.IsDeleted},
		ItemName:          m.ItemName,
		ItemCode:          m.ItemCode,
		ItemSpecification: m.ItemSpecification,
		ItemType:          m.ItemType,
		PackSize:          m.PackSize,
		UOM:               m.UOM,
		LatestPrice:       m.LatestPrice,
		AvgPrice10Batches: m.AvgPrice10Batches,
		Status:            m.Status,
	}
}

// ItemModelFromDomain creates a persistence model from a domain Item.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{
		ItemName:          i.ItemName,
		ItemCode:          i.ItemCode,
		ItemSpecification: i.ItemSpecification,
		ItemType:          i.ItemType,
		PackSize:          i.PackSize,
		UOM:               i.UOM,
		LatestPrice:       i.LatestPrice,
		AvgPrice10Batches: i.AvgPrice10Batches,
		Status:            i.Status,
	}
	m.FromDomainSoftDeletable(i.BaseEntity, i.SoftDeletable)
	return m
}
