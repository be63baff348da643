package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/medstock/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse access level of a user
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// UserStatus represents whether a user may sign in
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// IsValid checks if the status is a valid UserStatus
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

const bcryptCost = bcrypt.DefaultCost

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is an operator of the system
type User struct {
	shared.BaseEntity
	shared.SoftDeletable
	Username     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	Status       UserStatus
	LastLogin    *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(username, email, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleUser
	}
	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Status:     UserStatusActive,
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetRole(role); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetEmail sets the email address
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = email
	u.Touch()
	return nil
}

// SetPhone sets the phone number
func (u *User) SetPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone_number", "phone_number cannot exceed 50 characters")
	}
	u.PhoneNumber = phone
	u.Touch()
	return nil
}

// SetRole assigns the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("role", "role must be one of: admin, manager, user")
	}
	u.Role = role
	u.Touch()
	return nil
}

// SetStatus activates or deactivates the user
func (u *User) SetStatus(status UserStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "status must be one of: active, inactive")
	}
	u.Status = status
	u.Touch()
	return nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewInternalError("failed to hash password", err)
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword checks a plain password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the user is active and not deleted
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive && !u.IsDeleted
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLogin = &at
	u.Touch()
}

// Delete soft-deletes the user and blocks further logins
func (u *User) Delete() {
	u.IsDeleted = true
	u.Status = UserStatusInactive
	u.Touch()
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewValidationError("username", "username is required")
	}
	if len(username) < 3 || len(username) > 100 {
		return shared.NewValidationError("username", "username must be between 3 and 100 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewValidationError("username", "username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewValidationError("password", "password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewValidationError("password", "password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("email", "email is required")
	}
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.NewValidationError("email", "invalid email format")
	}
	return nil
}
