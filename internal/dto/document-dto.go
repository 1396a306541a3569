package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/temped/temped-api/internal/domain"
)

type DocumentResponse struct {
	ID              uuid.UUID             `json:"id"`
	TeacherID       uuid.UUID             `json:"teacher_id"`
	DocumentType    domain.DocumentType   `json:"document_type"`
	Label           string                `json:"label"`
	FileName        *string               `json:"file_name,omitempty"`
	URL             string                `json:"url,omitempty"` // signed, short lived
	Status          domain.DocumentStatus `json:"status"`
	ReviewedBy      *uuid.UUID            `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time            `json:"reviewed_at,omitempty"`
	RejectionReason *string               `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

type SummaryEntryResponse struct {
	Type            domain.DocumentType `json:"type"`
	Label           string              `json:"label"`
	HasApproved     bool                `json:"has_approved"`
	HasPending      bool                `json:"has_pending"`
	Latest          *DocumentResponse   `json:"latest,omitempty"`
	LatestRejection *DocumentResponse   `json:"latest_rejection,omitempty"`
}

type VerificationResponse struct {
	IsVerified   bool                   `json:"is_verified"`
	PendingCount int                    `json:"pending_count"`
	Missing      []domain.DocumentType  `json:"missing"`
	Summary      []SummaryEntryResponse `json:"summary"`
}

type AdminTeacherResponse struct {
	Teacher              TeacherProfileResponse `json:"teacher"`
	Email                string                 `json:"email"`
	Documents            []DocumentResponse     `json:"documents"`
	Verification         VerificationResponse   `json:"verification"`
	StoredCompleteness   int                    `json:"stored_completeness"`
	ComputedCompleteness int                    `json:"computed_completeness"`
}
