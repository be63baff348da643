package identity

import (
	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// Notification is a message addressed to one user
type Notification struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Message string
	Type    string
	IsRead  bool
}

// NewNotification creates an unread notification
func NewNotification(userID uuid.UUID, message, notificationType string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("user_id", "user_id is required")
	}
	if message == "" {
		return nil, shared.NewValidationError("message", "message is required")
	}
	if notificationType == "" {
		notificationType = "info"
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Message:    message,
		Type:       notificationType,
	}, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
	n.Touch()
}
