// Package audit holds the append-only records of who changed what.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// Action names written to the activity log
const (
	ActionCreate  = "CREATE"
	ActionUpdate  = "UPDATE"
	ActionDelete  = "DELETE"
	ActionLogin   = "LOGIN"
	ActionBin     = "BIN"
	ActionCleanup = "CLEANUP"
)

// DeletedBySystem is the deleter identity of rows purged by the retention job
const DeletedBySystem = "SYSTEM"

// ActivityLog records a user or system action against a table row
type ActivityLog struct {
	ID          uuid.UUID
	UserID      *uuid.UUID
	Action      string
	TableName   string
	RecordID    string
	Description string
	Timestamp   time.Time
}

// NewActivityLog creates an activity entry; a nil user means the system acted
func NewActivityLog(userID *uuid.UUID, action, table, recordID, description string) (*ActivityLog, error) {
	if action == "" {
		return nil, shared.NewValidationError("action", "action is required")
	}
	if table == "" {
		return nil, shared.NewValidationError("table_name", "table_name is required")
	}
	return &ActivityLog{
		ID:          uuid.New(),
		UserID:      userID,
		Action:      action,
		TableName:   table,
		RecordID:    recordID,
		Description: description,
		Timestamp:   time.Now(),
	}, nil
}

// DeletionLog records one permanently purged row
type DeletionLog struct {
	ID        uuid.UUID
	TableName string
	RecordID  string
	DeletedBy string
	DeletedAt time.Time
}

// NewDeletionLog creates a deletion record
func NewDeletionLog(table, recordID, deletedBy string, at time.Time) DeletionLog {
	return DeletionLog{
		ID:        uuid.New(),
		TableName: table,
		RecordID:  recordID,
		DeletedBy: deletedBy,
		DeletedAt: at,
	}
}

// ActivityLogRepository defines persistence operations for activity logs
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *ActivityLog) error
	// FindAll lists entries newest first; filters: user_id, table_name, action, From/To
	FindAll(ctx context.Context, filter shared.Filter) ([]ActivityLog, int64, error)
}

// DeletionLogRepository reads the deletion log. Rows are written by the
// retention store inside its purge transaction.
type DeletionLogRepository interface {
	// FindAll lists entries newest first; filters: table_name
	FindAll(ctx context.Context, filter shared.Filter) ([]DeletionLog, int64, error)
}
