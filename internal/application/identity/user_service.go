package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/medstock/backend/internal/application/audit"
	"github.com/medstock/backend/internal/domain/audit"
	"github.com/medstock/backend/internal/domain/identity"
	"github.com/medstock/backend/internal/domain/shared"
	"github.com/medstock/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
	recorder  appaudit.Recorder
	logger    *zap.Logger
}

// NewUserService creates a new user service. tokenTTL is how long a forced
// sign-out must be remembered, normally the refresh token lifetime.
func NewUserService(
	userRepo identity.UserRepository,
	blacklist auth.TokenBlacklist,
	tokenTTL time.Duration,
	recorder appaudit.Recorder,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		blacklist: blacklist,
		tokenTTL:  tokenTTL,
		recorder:  recorder,
		logger:    logger,
	}
}

// createUser checks uniqueness, then saves a new user with role
func createUser(ctx context.Context, repo identity.UserRepository, username, email, password string, role identity.Role, phone string) (*identity.User, error) {
	exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Username or email already exists")
	}

	user, err := identity.NewUser(username, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := user.SetPhone(phone); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds an account with the requested role
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	user, err := createUser(ctx, s.userRepo, req.Username, req.Email, req.Password, identity.Role(req.Role), req.Phone)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	s.recorder.Record(ctx, audit.ActionCreate, "users", user.ID.String(), "created "+string(user.Role)+" "+user.Username)

	resp := ToUserResponse(user)
	return &resp, nil
}

// EnsureAdmin creates the configured administrator unless a user with that
// username already exists. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !shared.IsNotFound(err) {
		return false, err
	}

	user, err := createUser(ctx, s.userRepo, username, email, password, identity.RoleAdmin, "")
	if err != nil {
		return false, err
	}
	s.logger.Info("Administrator account seeded", zap.String("username", user.Username))
	s.recorder.Record(appaudit.WithActor(ctx, user.ID), audit.ActionCreate, "users", user.ID.String(), "seeded administrator "+user.Username)
	return true, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	f := shared.DefaultFilter().WithPage(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	f.Search = filter.Search
	if filter.Role != "" {
		f.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	users, total, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, total, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes the contact details or role of a user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, "", *req.Email, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflictError("Email already in use")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, audit.ActionUpdate, "users", id.String(), "updated user "+user.Username)

	resp := ToUserResponse(user)
	return &resp, nil
}

// SetStatus activates or deactivates a user. Deactivation signs the user
// out of every session.
func (s *UserService) SetStatus(ctx context.Context, id uuid.UUID, req UpdateUserStatusRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.SetStatus(identity.UserStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if user.Status == identity.UserStatusInactive {
		s.invalidateSessions(ctx, id)
	}

	s.logger.Info("User status changed", zap.String("user_id", id.String()), zap.String("status", req.Status))
	s.recorder.Record(ctx, audit.ActionUpdate, "users", id.String(), "status set to "+req.Status)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete soft-deletes a user and signs them out
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if actor := appaudit.ActorFrom(ctx); actor != nil && *actor == id {
		return shared.NewDomainError(shared.CodeForbidden, "Cannot delete your own account")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Delete()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.invalidateSessions(ctx, id)
	s.recorder.Record(ctx, audit.ActionDelete, "users", id.String(), "deleted user "+user.Username)
	return nil
}

func (s *UserService) invalidateSessions(ctx context.Context, id uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, id.String(), s.tokenTTL); err != nil {
		s.logger.Error("Failed to invalidate user sessions", zap.String("user_id", id.String()), zap.Error(err))
	}
}
