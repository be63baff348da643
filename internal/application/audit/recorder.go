package audit

import (
	"context"

	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Recorder writes activity log entries for the acting user
type Recorder interface {
	Record(ctx context.Context, action, table, recordID, description string)
}

// ActivityRecorder persists entries through the activity log repository.
// A failed write is logged and never fails the caller's operation.
type ActivityRecorder struct {
	repo   audit.ActivityLogRepository
	logger *zap.Logger
}

// NewActivityRecorder creates a new ActivityRecorder
func NewActivityRecorder(repo audit.ActivityLogRepository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger}
}

// Record appends an entry attributed to the actor in ctx
func (r *ActivityRecorder) Record(ctx context.Context, action, table, recordID, description string) {
	entry, err := audit.NewActivityLog(ActorFrom(ctx), action, table, recordID, description)
	if err == nil {
		err = r.repo.Create(ctx, entry)
	}
	if err != nil {
		logger.L(ctx).Warn("Failed to record activity",
			zap.String("action", action),
			zap.String("table", table),
			zap.String("record_id", recordID),
			zap.Error(err))
	}
}

// NopRecorder discards entries
type NopRecorder struct{}

// Record does nothing
func (NopRecorder) Record(context.Context, string, string, string, string) {}

var (
	_ Recorder = (*ActivityRecorder)(nil)
	_ Recorder = NopRecorder{}
)
