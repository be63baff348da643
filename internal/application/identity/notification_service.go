package identity

import (
	"context"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/identity"
	"github.com/medstock/backend/internal/domain/shared"
)

// NotificationService manages per-user notifications
type NotificationService struct {
	repo     identity.NotificationRepository
	userRepo identity.UserRepository
	recorder appaudit.Recorder
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	repo identity.NotificationRepository,
	userRepo identity.UserRepository,
	recorder appaudit.Recorder,
) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, recorder: recorder}
}

// Create sends a notification to an existing user
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*NotificationResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewValidationError("user_id", "user does not exist")
		}
		return nil, err
	}
	n, err := identity.NewNotification(req.UserID, req.Message, req.Type)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionCreate, "notifications", n.ID.String(), "notified user "+req.UserID.String())
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// List returns all notifications, optionally for one user
func (s *NotificationService) List(ctx context.Context, filter NotificationListFilter) ([]NotificationResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "")
	if filter.UserID != "" {
		id, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, shared.NewValidationError("user_id", "invalid user_id")
		}
		f.Filters["user_id"] = id
	}
	return s.list(ctx, f, filter.IsRead)
}

// ListForUser returns the notifications of one user, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, filter NotificationListFilter) ([]NotificationResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, "", "").With("user_id", userID)
	return s.list(ctx, f, filter.IsRead)
}

func (s *NotificationService) list(ctx context.Context, f shared.Filter, isRead *bool) ([]NotificationResponse, int64, error) {
	if isRead != nil {
		f.Filters["is_read"] = *isRead
	}
	items, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]NotificationResponse, len(items))
	for i := range items {
		out[i] = ToNotificationResponse(&items[i])
	}
	return out, total, nil
}

// MarkRead marks a notification owned by userID as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	n.MarkRead()
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	resp := ToNotificationResponse(n)
	return &resp, nil
}

// Delete removes a notification owned by userID
func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recorder.Record(ctx, audit.ActionDelete, "notifications", id.String(), "")
	return nil
}

// owned hides notifications of other users behind NOT_FOUND
func (s *NotificationService) owned(ctx context.Context, userID, id uuid.UUID) (*identity.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, shared.NewNotFoundError("notification")
	}
	return n, nil
}
