package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"

	AuditEntityDocument    = "teacher_document"
	AuditEntityTestimonial = "testimonial"
)

type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"actor_id"` // admin
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Entity    string    `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID  uuid.UUID `gorm:"type:uuid;not null;index" json:"entity_id"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
