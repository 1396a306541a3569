package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventUserRegistered           = "user.registered"
	EventDocumentUploaded         = "document.uploaded"
	EventDocumentReviewed         = "document.reviewed"
	EventApplicationStatusChanged = "application.status_changed"
)

// Envelope wraps every message on the events topic.
type Envelope struct {
	Event      string          `json:"event"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type UserRegisteredEvent struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

type DocumentUploadedEvent struct {
	DocumentID   uuid.UUID `json:"document_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	DocumentType string    `json:"document_type"`
}

type DocumentReviewedEvent struct {
	DocumentID      uuid.UUID `json:"document_id"`
	TeacherID       uuid.UUID `json:"teacher_id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	DocumentLabel   string    `json:"document_label"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	Verified        bool      `json:"verified"`
}

type ApplicationStatusChangedEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	JobID         uuid.UUID `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	SchoolName    string    `json:"school_name"`
	TeacherID     uuid.UUID `json:"teacher_id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Status        string    `json:"status"`
}
