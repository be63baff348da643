package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/identity"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.UserModel{}).Where("is_deleted = ?", false)
}

// FindByID finds a live user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var m models.UserModel
	if err := r.live(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return m.ToDomain(), nil
}

// FindByUsername finds a live user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var m models.UserModel
	if err := r.live(ctx).Where("username = ?", strings.TrimSpace(username)).First(&m).Error; err != nil {
		return nil, translateError(err, "user")
	}
	return m.ToDomain(), nil
}

// FindAll lists live users
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, int64, error) {
	scope := func() *gorm.DB {
		q := equals(r.live(ctx), filter, "role", "status")
		return search(q, filter.Search, "username", "email")
	}
	rows, total, err := listPage[models.UserModel](scope, filter, UserSortFields, "created_at", "user")
	if err != nil {
		return nil, 0, err
	}
	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, total, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Save(models.UserModelFromDomain(user)).Error, "user")
}

// ExistsByUsernameOrEmail reports whether another user, deleted or not, holds
// the username or email
func (r *GormUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("username = ? OR email = ?", username, strings.ToLower(email))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "user")
	}
	return count > 0, nil
}

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Notification, error) {
	var m models.NotificationModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "notification")
	}
	return m.ToDomain(), nil
}

// FindAll lists notifications newest first
func (r *GormNotificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Notification, int64, error) {
	scope := func() *gorm.DB {
		return equals(r.db.WithContext(ctx).Model(&models.NotificationModel{}), filter, "user_id", "is_read")
	}
	rows, total, err := listPage[models.NotificationModel](scope, filter, NotificationSortFields, "created_at", "notification")
	if err != nil {
		return nil, 0, err
	}
	out := make([]identity.Notification, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *identity.Notification) error {
	return translateError(r.db.WithContext(ctx).Save(models.NotificationModelFromDomain(n)).Error, "notification")
}

// Delete removes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFoundIfNoRows(r.db.WithContext(ctx).Delete(&models.NotificationModel{}, "id = ?", id), "notification")
}

var (
	_ identity.UserRepository         = (*GormUserRepository)(nil)
	_ identity.NotificationRepository = (*GormNotificationRepository)(nil)
)
