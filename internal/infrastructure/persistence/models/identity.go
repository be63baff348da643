package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/identity"
	"github.com/medstock/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	SoftDeleteModel
	Username     string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PhoneNumber  string              `gorm:"type:varchar(50)"`
	PasswordHash string              `gorm:"type:varchar(255);not null"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;default:'user'"`
	Status       identity.UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLogin    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:    m.BaseModel.ToDomain(),
		SoftDeletable: shared.SoftDeletable{IsDeleted: m.IsDeleted},
		Username:      m.Username,
		Email:         m.Email,
		PhoneNumber:   m.PhoneNumber,
		PasswordHash:  m.PasswordHash,
		Role:          m.Role,
		Status:        m.Status,
		LastLogin:     m.LastLogin,
	}
}

// UserModelFromDomain creates a persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:     u.Username,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Status:       u.Status,
		LastLogin:    u.LastLogin,
	}
	m.FromDomainSoftDeletable(u.BaseEntity, u.SoftDeletable)
	return m
}

// NotificationModel is the persistence model for notifications.
type NotificationModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Message string    `gorm:"type:text;not null"`
	Type    string    `gorm:"type:varchar(50);not null;default:'info'"`
	IsRead  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() *identity.Notification {
	return &identity.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Message:    m.Message,
		Type:       m.Type,
		IsRead:     m.IsRead,
	}
}

// NotificationModelFromDomain creates a persistence model from a domain Notification.
func NotificationModelFromDomain(n *identity.Notification) *NotificationModel {
	m := &NotificationModel{
		UserID:  n.UserID,
		Message: n.Message,
		Type:    n.Type,
		IsRead:  n.IsRead,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}
