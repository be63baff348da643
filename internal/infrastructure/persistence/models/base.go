package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/medstock/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// SoftDeleteModel adds the is_deleted flag read by the retention job.
type SoftDeleteModel struct {
	BaseModel
	IsDeleted bool `gorm:"not null;default:false;index"`
}

// FromDomainSoftDeletable populates SoftDeleteModel from its domain parts
func (m *SoftDeleteModel) FromDomainSoftDeletable(e shared.BaseEntity, s shared.SoftDeletable) {
	m.FromDomainBaseEntity(e)
	m.IsDeleted = s.IsDeleted
}
