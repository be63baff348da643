package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LocationModel is the persistence model for storage locations.
type LocationModel struct {
	BaseModel
	LocationName string `gorm:"type:varchar(200);not null"`
	LocationType string `gorm:"type:varchar(50);not null"`
	LocationCode string `gorm:"type:varchar(50);not null;uniqueIndex"`
	QRBarcode    string `gorm:"column:qr_barcode;type:varchar(200)"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location.
func (m *LocationModel) ToDomain() *inventory.Location {
	return &inventory.Location{
		BaseEntity:   m.BaseModel.ToDomain(),
		LocationName: m.LocationName,
		LocationType: m.LocationType,
		LocationCode: m.LocationCode,
		QRBarcode:    m.QRBarcode,
	}
}

// LocationModelFromDomain creates a persistence model from a domain Location.
func LocationModelFromDomain(l *inventory.Location) *LocationModel {
	m := &LocationModel{
		LocationName: l.LocationName,
		LocationType: l.LocationType,
		LocationCode: l.LocationCode,
		QRBarcode:    l.QRBarcode,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// StockRecordModel is the persistence model for per-location stock.
type StockRecordModel struct {
	BaseModel
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_item_location,priority:1"`
	LocationID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_item_location,priority:2;index"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastUpdated time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockRecordModel) TableName() string {
	return "inventory"
}

// ToDomain converts the persistence model to a domain StockRecord.
func (m *StockRecordModel) ToDomain() *inventory.StockRecord {
	return &inventory.StockRecord{
		BaseEntity:  m.BaseModel.ToDomain(),
		ItemID:      m.ItemID,
		LocationID:  m.LocationID,
		Quantity:    m.Quantity,
		LastUpdated: m.LastUpdated,
	}
}

// StockRecordModelFromDomain creates a persistence model from a domain StockRecord.
func StockRecordModelFromDomain(r *inventory.StockRecord) *StockRecordModel {
	m := &StockRecordModel{
		ItemID:      r.ItemID,
		LocationID:  r.LocationID,
		Quantity:    r.Quantity,
		LastUpdated: r.LastUpdated,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// StockRuleModel is the persistence model for replenishment rules.
type StockRuleModel struct {
	BaseModel
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	MOQ         decimal.Decimal `gorm:"column:moq;type:decimal(18,4);not null;default:0"`
	PackSize    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PackDensity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ADRMode     string          `gorm:"column:adr_mode;type:varchar(20)"`
	ADRMonths   int             `gorm:"column:adr_months;not null;default:0"`
	ADR         decimal.Decimal `gorm:"column:adr;type:decimal(18,4);not null;default:0"`
	LOD         decimal.Decimal `gorm:"column:lod;type:decimal(18,4);not null;default:0"`
	LODStock    decimal.Decimal `gorm:"column:lod_stock;type:decimal(18,4);not null;default:0"`
	SafetyStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ROL         decimal.Decimal `gorm:"column:rol;type:decimal(18,4);not null;default:0"`
	MaxStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockRuleModel) TableName() string {
	return "stock_rules"
}

// ToDomain converts the persistence model to a domain StockRule.
func (m *StockRuleModel) ToDomain() *inventory.StockRule {
	return &inventory.StockRule{
		BaseEntity:  m.BaseModel.ToDomain(),
		ItemID:      m.ItemID,
		MOQ:         m.MOQ,
		PackSize:    m.PackSize,
		PackDensity: m.PackDensity,
		ADRMode:     m.ADRMode,
		ADRMonths:   m.ADRMonths,
		ADR:         m.ADR,
		LOD:         m.LOD,
		LODStock:    m.LODStock,
		SafetyStock: m.SafetyStock,
		ROL:         m.ROL,
		MaxStock:    m.MaxStock,
	}
}

// StockRuleModelFromDomain creates a persistence model from a domain StockRule.
func StockRuleModelFromDomain(r *inventory.StockRule) *StockRuleModel {
	m := &StockRuleModel{
		ItemID:      r.ItemID,
		MOQ:         r.MOQ,
		PackSize:    r.PackSize,
		PackDensity: r.PackDensity,
		ADRMode:     r.ADRMode,
		ADRMonths:   r.ADRMonths,
		ADR:         r.ADR,
		LOD:         r.LOD,
		LODStock:    r.LODStock,
		SafetyStock: r.SafetyStock,
		ROL:         r.ROL,
		MaxStock:    r.MaxStock,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// MRNModel is the persistence model for material receipt notes.
type MRNModel struct {
	BaseModel
	MRNNumber            string              `gorm:"column:mrn_number;type:varchar(50);not null;uniqueIndex"`
	POID                 *uuid.UUID          `gorm:"column:po_id;type:uuid;index"`
	VendorID             uuid.UUID           `gorm:"type:uuid;not null;index"`
	InvoiceNumber        string              `gorm:"type:varchar(100)"`
	InvoiceDate          *time.Time          `gorm:""`
	ReceiptDate          time.Time           `gorm:"not null"`
	TransactionReference string              `gorm:"type:varchar(100)"`
	ScannedBy            string              `gorm:"type:varchar(100)"`
	ReceivedBy           string              `gorm:"type:varchar(100)"`
	TotalInvoiceValue    decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TaxDetails           datatypes.JSON      `gorm:"type:json"`
	Remarks              string              `gorm:"type:text"`
	Status               inventory.MRNStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Items                []MRNItemModel      `gorm:"foreignKey:MRNID;references:ID"`
}

// TableName returns the table name for GORM
func (MRNModel) TableName() string {
	return "mrns"
}

// ToDomain converts the persistence model to a domain MRN.
func (m *MRNModel) ToDomain() *inventory.MRN {
	mrn := &inventory.MRN{
		BaseEntity:           m.BaseModel.ToDomain(),
		MRNNumber:            m.MRNNumber,
		POID:                 m.POID,
		VendorID:             m.VendorID,
		InvoiceNumber:        m.InvoiceNumber,
		InvoiceDate:          m.InvoiceDate,
		ReceiptDate:          m.ReceiptDate,
		TransactionReference: m.TransactionReference,
		ScannedBy:            m.ScannedBy,
		ReceivedBy:           m.ReceivedBy,
		TotalInvoiceValue:    m.TotalInvoiceValue,
		Remarks:              m.Remarks,
		Status:               m.Status,
	}
	if len(m.TaxDetails) > 0 {
		mrn.TaxDetails = json.RawMessage(m.TaxDetails)
	}
	for i := range m.Items {
		mrn.Items = append(mrn.Items, *m.Items[i].ToDomain())
	}
	return mrn
}

// MRNModelFromDomain creates a persistence model from a domain MRN, including its items.
func MRNModelFromDomain(mrn *inventory.MRN) *MRNModel {
	m := &MRNModel{
		MRNNumber:            mrn.MRNNumber,
		POID:                 mrn.POID,
		VendorID:             mrn.VendorID,
		InvoiceNumber:        mrn.InvoiceNumber,
		InvoiceDate:          mrn.InvoiceDate,
		ReceiptDate:          mrn.ReceiptDate,
		TransactionReference: mrn.TransactionReference,
		ScannedBy:            mrn.ScannedBy,
		ReceivedBy:           mrn.ReceivedBy,
		TotalInvoiceValue:    mrn.TotalInvoiceValue,
		Remarks:              mrn.Remarks,
		Status:               mrn.Status,
	}
	if len(mrn.TaxDetails) > 0 {
		m.TaxDetails = datatypes.JSON(mrn.TaxDetails)
	}
	m.FromDomainBaseEntity(mrn.BaseEntity)
	for i := range mrn.Items {
		m.Items = append(m.Items, *MRNItemModelFromDomain(&mrn.Items[i]))
	}
	return m
}

// MRNItemModel is the persistence model for a received batch line.
type MRNItemModel struct {
	BaseModel
	MRNID               uuid.UUID       `gorm:"column:mrn_id;type:uuid;not null;index"`
	ItemID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BatchNumber         string          `gorm:"type:varchar(100)"`
	Price               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UOM                 string          `gorm:"column:uom;type:varchar(20)"`
	ExpiryDate          *time.Time
	ManufactureDate     *time.Time
	ReceivingLocationID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (MRNItemModel) TableName() string {
	return "mrn_items"
}

// ToDomain converts the persistence model to a domain MRNItem.
func (m *MRNItemModel) ToDomain() *inventory.MRNItem {
	return &inventory.MRNItem{
		BaseEntity:          m.BaseModel.ToDomain(),
		MRNID:               m.MRNID,
		ItemID:              m.ItemID,
		Quantity:            m.Quantity,
		BatchNumber:         m.BatchNumber,
		Price:               m.Price,
		UOM:                 m.UOM,
		ExpiryDate:          m.ExpiryDate,
		ManufactureDate:     m.ManufactureDate,
		ReceivingLocationID: m.ReceivingLocationID,
	}
}

// MRNItemModelFromDomain creates a persistence model from a domain MRNItem.
func MRNItemModelFromDomain(i *inventory.MRNItem) *MRNItemModel {
	m := &MRNItemModel{
		MRNID:               i.MRNID,
		ItemID:              i.ItemID,
		Quantity:            i.Quantity,
		BatchNumber:         i.BatchNumber,
		Price:               i.Price,
		UOM:                 i.UOM,
		ExpiryDate:          i.ExpiryDate,
		ManufactureDate:     i.ManufactureDate,
		ReceivingLocationID: i.ReceivingLocationID,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}

// BinningLogModel is the persistence model for put-away records.
type BinningLogModel struct {
	BaseModel
	MRNID           uuid.UUID `gorm:"column:mrn_id;type:uuid;not null;index"`
	ToLocationID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BinnedByUserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TransactionDate time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BinningLogModel) TableName() string {
	return "binning_logs"
}

// ToDomain converts the persistence model to a domain BinningLog.
func (m *BinningLogModel) ToDomain() *inventory.BinningLog {
	return &inventory.BinningLog{
		BaseEntity:      m.BaseModel.ToDomain(),
		MRNID:           m.MRNID,
		ToLocationID:    m.ToLocationID,
		BinnedByUserID:  m.BinnedByUserID,
		TransactionDate: m.TransactionDate,
	}
}

// BinningLogModelFromDomain creates a persistence model from a domain BinningLog.
func BinningLogModelFromDomain(l *inventory.BinningLog) *BinningLogModel {
	m := &BinningLogModel{
		MRNID:           l.MRNID,
		ToLocationID:    l.ToLocationID,
		BinnedByUserID:  l.BinnedByUserID,
		TransactionDate: l.TransactionDate,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
