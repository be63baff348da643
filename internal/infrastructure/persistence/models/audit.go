package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/audit"
)

// ActivityLogModel is the persistence model for activity log entries.
type ActivityLogModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Action      string     `gorm:"type:varchar(50);not null;index"`
	Table       string     `gorm:"column:table_name;type:varchar(100);not null;index"`
	RecordID    string     `gorm:"type:varchar(100)"`
	Description string     `gorm:"type:text"`
	Timestamp   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

// ToDomain converts the persistence model to a domain ActivityLog.
func (m *ActivityLogModel) ToDomain() *audit.ActivityLog {
	return &audit.ActivityLog{
		ID:          m.ID,
		UserID:      m.UserID,
		Action:      m.Action,
		TableName:   m.Table,
		RecordID:    m.RecordID,
		Description: m.Description,
		Timestamp:   m.Timestamp,
	}
}

// ActivityLogModelFromDomain creates a persistence model from a domain ActivityLog.
func ActivityLogModelFromDomain(a *audit.ActivityLog) *ActivityLogModel {
	return &ActivityLogModel{
		ID:          a.ID,
		UserID:      a.UserID,
		Action:      a.Action,
		Table:       a.TableName,
		RecordID:    a.RecordID,
		Description: a.Description,
		Timestamp:   a.Timestamp,
	}
}

// DeletionLogModel is the persistence model for the append-only deletion log.
type DeletionLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Table     string    `gorm:"column:table_name;type:varchar(100);not null;index"`
	RecordID  string    `gorm:"type:varchar(100);not null"`
	DeletedBy string    `gorm:"type:varchar(100);not null"`
	DeletedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DeletionLogModel) TableName() string {
	return "deletion_logs"
}

// ToDomain converts the persistence model to a domain DeletionLog.
func (m *DeletionLogModel) ToDomain() audit.DeletionLog {
	return audit.DeletionLog{
		ID:        m.ID,
		TableName: m.Table,
		RecordID:  m.RecordID,
		DeletedBy: m.DeletedBy,
		DeletedAt: m.DeletedAt,
	}
}

// DeletionLogModelFromDomain creates a persistence model from a domain DeletionLog.
func DeletionLogModelFromDomain(d audit.DeletionLog) *DeletionLogModel {
	return &DeletionLogModel{
		ID:        d.ID,
		Table:     d.TableName,
		RecordID:  d.RecordID,
		DeletedBy: d.DeletedBy,
		DeletedAt: d.DeletedAt,
	}
}

// AllModels lists every model in dependency order, for AutoMigrate in tests.
func AllModels() []any {
	return []any{
		&UserModel{},
		&NotificationModel{},
		&VendorModel{},
		&ItemModel{},
		&VendorItemModel{},
		&PurchaseOrderModel{},
		&PurchaseOrderItemModel{},
		&ASNModel{},
		&LocationModel{},
		&StockRecordModel{},
		&StockRuleModel{},
		&MRNModel{},
		&MRNItemModel{},
		&BinningLogModel{},
		&ActivityLogModel{},
		&DeletionLogModel{},
	}
}
