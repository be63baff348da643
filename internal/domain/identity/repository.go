package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users.
// Reads never return soft-deleted users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// FindAll lists users; filters: role, status; Search matches username or email
	FindAll(ctx context.Context, filter shared.Filter) ([]User, int64, error)
	Save(ctx context.Context, user *User) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID *uuid.UUID) (bool, error)
}

// NotificationRepository defines persistence operations for notifications
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// FindAll lists notifications newest first; filters: user_id, is_read
	FindAll(ctx context.Context, filter shared.Filter) ([]Notification, int64, error)
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}
