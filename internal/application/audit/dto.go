package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/audit"
)

// ActivityLogFilter represents filter options for the activity log
type ActivityLogFilter struct {
	UserID    string     `form:"user_id" binding:"omitempty,uuid"`
	TableName string     `form:"table_name"`
	Action    string     `form:"action"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ActivityLogResponse represents an activity entry in API responses
type ActivityLogResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id"`
	Action      string     `json:"action"`
	TableName   string     `json:"table_name"`
	RecordID    string     `json:"record_id"`
	Description string     `json:"description"`
	Timestamp   time.Time  `json:"timestamp"`
}

// ToActivityLogResponse converts a domain entry to a response
func ToActivityLogResponse(a *audit.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Action:      a.Action,
		TableName:   a.TableName,
		RecordID:    a.RecordID,
		Description: a.Description,
		Timestamp:   a.Timestamp,
	}
}

// DeletionLogFilter selects entries of the deletion log
type DeletionLogFilter struct {
	TableName string     `form:"table_name"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DeletionLogResponse is one purged row
type DeletionLogResponse struct {
	ID        uuid.UUID `json:"id"`
	TableName string    `json:"table_name"`
	RecordID  string    `json:"record_id"`
	DeletedBy string    `json:"deleted_by"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ToDeletionLogResponse converts a domain entry to a response
func ToDeletionLogResponse(d audit.DeletionLog) DeletionLogResponse {
	return DeletionLogResponse{
		ID:        d.ID,
		TableName: d.TableName,
		RecordID:  d.RecordID,
		DeletedBy: d.DeletedBy,
		DeletedAt: d.DeletedAt,
	}
}
