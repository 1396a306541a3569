package domain

import (
	"time"

	"github.com/google/uuid"
)

type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "pending"
	TestimonialApproved TestimonialStatus = "approved"
	TestimonialRejected TestimonialStatus = "rejected"
)

type Testimonial struct {
	Base
	AuthorID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"author_id"`
	AuthorRole string            `gorm:"type:varchar(20);not null" json:"author_role"`
	AuthorName string            `gorm:"type:varchar(200)" json:"author_name"`
	Content    string            `gorm:"type:text;not null" json:"content"`
	Rating     int               `gorm:"not null" json:"rating"`
	Status     TestimonialStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedBy *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time        `json:"reviewed_at,omitempty"`
}
