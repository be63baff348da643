package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel is the persistence model for the PurchaseOrder aggregate root.
type PurchaseOrderModel struct {
	SoftDeleteModel
	PONumber    string                    `gorm:"column:po_number;type:varchar(50);not null;uniqueIndex"`
	VendorID    uuid.UUID                 `gorm:"type:uuid;not null;index"`
	OrderDate   time.Time                 `gorm:"not null;index"`
	Status      trade.PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedBy   *uuid.UUID                `gorm:"type:uuid"`
	Items       []PurchaseOrderItemModel  `gorm:"foreignKey:POID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts the persistence model to a domain PurchaseOrder.
func (m *PurchaseOrderModel) ToDomain() *trade.PurchaseOrder {
	po := &trade.PurchaseOrder{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: shared.SoftDeletable{IsDeleted: m.IsDeleted},
		PONumber:      m.PONumber,
		VendorID:      m.VendorID,
		OrderDate:     m.OrderDate,
		Status:        m.Status,
		TotalAmount:   m.TotalAmount,
		CreatedBy:     m.CreatedBy,
	}
	if len(m.Items) > 0 {
		po.Items = make([]trade.PurchaseOrderItem, len(m.Items))
		for i := range m.Items {
			po.Items[i] = *m.Items[i].ToDomain()
		}
	}
	return po
}

// PurchaseOrderModelFromDomain creates a persistence model from a domain
// PurchaseOrder, including its lines.
func PurchaseOrderModelFromDomain(po *trade.PurchaseOrder) *PurchaseOrderModel {
	m := &PurchaseOrderModel{
		PONumber:    po.PONumber,
		VendorID:    po.VendorID,
		OrderDate:   po.OrderDate,
		Status:      po.Status,
		TotalAmount: po.TotalAmount,
		CreatedBy:   po.CreatedBy,
	}
	m.FromDomainSoftDeletable(po.BaseEntity, po.SoftDeletable)
	for i := range po.Items {
		m.Items = append(m.Items, *PurchaseOrderItemModelFromDomain(&po.Items[i]))
	}
	return m
}

// PurchaseOrderItemModel is the persistence model for a PO line.
type PurchaseOrderItemModel struct {
	BaseModel
	POID       uuid.UUID       `gorm:"column:po_id;type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxPercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	GSTType    trade.GSTType   `gorm:"column:gst_type;type:varchar(10);not null"`
	CGST       decimal.Decimal `gorm:"column:cgst;type:decimal(18,4);not null;default:0"`
	SGST       decimal.Decimal `gorm:"column:sgst;type:decimal(18,4);not null;default:0"`
	IGST       decimal.Decimal `gorm:"column:igst;type:decimal(18,4);not null;default:0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// ToDomain converts the persistence model to a domain PurchaseOrderItem.
func (m *PurchaseOrderItemModel) ToDomain() *trade.PurchaseOrderItem {
	return &trade.PurchaseOrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		POID:       m.POID,
		ItemID:     m.ItemID,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		TaxPercent: m.TaxPercent,
		GSTType:    m.GSTType,
		CGST:       m.CGST,
		SGST:       m.SGST,
		IGST:       m.IGST,
		TotalPrice: m.TotalPrice,
	}
}

// PurchaseOrderItemModelFromDomain creates a persistence model from a domain line.
func PurchaseOrderItemModelFromDomain(i *trade.PurchaseOrderItem) *PurchaseOrderItemModel {
	m := &PurchaseOrderItemModel{
		POID:       i.POID,
		ItemID:     i.ItemID,
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TaxPercent: i.TaxPercent,
		GSTType:    i.GSTType,
		CGST:       i.CGST,
		SGST:       i.SGST,
		IGST:       i.IGST,
		TotalPrice: i.TotalPrice,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// ASNModel is the persistence model for advance shipping notes.
type ASNModel struct {
	BaseModel
	POID                 uuid.UUID `gorm:"column:po_id;type:uuid;not null;index"`
	VendorID             uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpectedDeliveryDate time.Time `gorm:"not null"`
	Remarks              string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ASNModel) TableName() string {
	return "asns"
}

// ToDomain converts the persistence model to a domain AdvanceShippingNote.
func (m *ASNModel) ToDomain() *trade.AdvanceShippingNote {
	return &trade.AdvanceShippingNote{
		BaseEntity:           m.BaseModel.ToDomain(),
		POID:                 m.POID,
		VendorID:             m.VendorID,
		ExpectedDeliveryDate: m.ExpectedDeliveryDate,
		Remarks:              m.Remarks,
	}
}

// ASNModelFromDomain creates a persistence model from a domain note.
func ASNModelFromDomain(a *trade.AdvanceShippingNote) *ASNModel {
	m := &ASNModel{
		POID:                 a.POID,
		VendorID:             a.VendorID,
		ExpectedDeliveryDate: a.ExpectedDeliveryDate,
		Remarks:              a.Remarks,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
