package audit

import (
	"context"

	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/shared"
)

// ActivityLogService serves the activity log
type ActivityLogService struct {
	repo audit.ActivityLogRepository
}

// NewActivityLogService creates a new ActivityLogService
func NewActivityLogService(repo audit.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// List returns entries newest first
func (s *ActivityLogService) List(ctx context.Context, filter ActivityLogFilter) ([]ActivityLogResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.UserID != "" {
		f.Filters["user_id"] = filter.UserID
	}
	if filter.TableName != "" {
		f.Filters["table_name"] = filter.TableName
	}
	if filter.Action != "" {
		f.Filters["action"] = filter.Action
	}
	f.From, f.To = filter.FromDate, shared.EndOfDay(filter.ToDate)

	entries, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ActivityLogResponse, len(entries))
	for i := range entries {
		out[i] = ToActivityLogResponse(&entries[i])
	}
	return out, total, nil
}

// DeletionLogService serves the rows purged by the retention job
type DeletionLogService struct {
	repo audit.DeletionLogRepository
}

// NewDeletionLogService creates a new DeletionLogService
func NewDeletionLogService(repo audit.DeletionLogRepository) *DeletionLogService {
	return &DeletionLogService{repo: repo}
}

// List returns purged rows, latest deletion first
func (s *DeletionLogService) List(ctx context.Context, filter DeletionLogFilter) ([]DeletionLogResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "deleted_at", "desc")
	if filter.TableName != "" {
		f.Filters["table_name"] = filter.TableName
	}
	f.From, f.To = filter.FromDate, shared.EndOfDay(filter.ToDate)

	entries, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DeletionLogResponse, len(entries))
	for i := range entries {
		out[i] = ToDeletionLogResponse(entries[i])
	}
	return out, total, nil
}
