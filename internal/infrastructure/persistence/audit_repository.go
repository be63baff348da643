package persistence

import (
	"context"

	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityLogRepository implements ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create appends an activity entry
func (r *GormActivityLogRepository) Create(ctx context.Context, entry *audit.ActivityLog) error {
	return translateError(r.db.WithContext(ctx).Create(models.ActivityLogModelFromDomain(entry)).Error, "activity log")
}

// FindAll lists entries newest first
func (r *GormActivityLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.ActivityLog, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.db.WithContext(ctx).Model(&models.ActivityLogModel{}), filter, "user_id", "table_name", "action")
		return dateRange(q, "timestamp", filter)
	}
	filter.OrderBy, filter.OrderDir = "timestamp", "DESC"
	rows, total, err := listPage[models.ActivityLogModel](scope, filter, map[string]bool{"timestamp": true}, "timestamp", "activity log")
	if err != nil {
		return nil, 0, err
	}
	out := make([]audit.ActivityLog, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// GormDeletionLogRepository reads the deletion log using GORM
type GormDeletionLogRepository struct {
	db *gorm.DB
}

// NewGormDeletionLogRepository creates a new GormDeletionLogRepository
func NewGormDeletionLogRepository(db *gorm.DB) *GormDeletionLogRepository {
	return &GormDeletionLogRepository{db: db}
}

// FindAll lists entries newest first
func (r *GormDeletionLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.DeletionLog, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.db.WithContext(ctx).Model(&models.DeletionLogModel{}), filter, "table_name")
		return dateRange(q, "deleted_at", filter)
	}
	filter.OrderBy, filter.OrderDir = "deleted_at", "DESC"
	rows, total, err := listPage[models.DeletionLogModel](scope, filter, map[string]bool{"deleted_at": true}, "deleted_at", "deletion log")
	if err != nil {
		return nil, 0, err
	}
	out := make([]audit.DeletionLog, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

var (
	_ audit.ActivityLogRepository = (*GormActivityLogRepository)(nil)
	_ audit.DeletionLogRepository = (*GormDeletionLogRepository)(nil)
)
