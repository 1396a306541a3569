package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/temped/temped-api/internal/domain"
)

type TeacherProfileRequest struct {
	FirstName       string                    `json:"first_name"`
	Surname         string                    `json:"surname"`
	Description     string                    `json:"description"`
	EducationPhases []string                  `json:"education_phases"`
	Subjects        domain.Subjects           `json:"subjects"`
	Address         string                    `json:"address"`
	Latitude        *float64                  `json:"latitude,omitempty"`
	Longitude       *float64                  `json:"longitude,omitempty"`
	SearchRadiusKm  *int                      `json:"search_radius_km,omitempty"`
	IDNumber        string                    `json:"id_number"`
	References      []domain.TeacherReference `json:"teacher_references"`
}

// CompletenessPreviewRequest is the unsaved editor state, including uploads
// the teacher has chosen but not sent yet.
type CompletenessPreviewRequest struct {
	TeacherProfileRequest
	ProfilePictureStaged bool                  `json:"profile_picture_staged"`
	RemoveProfilePicture bool                  `json:"remove_profile_picture"`
	StagedDocumentTypes  []domain.DocumentType `json:"staged_document_types"`
}

type CompletenessResponse struct {
	Completeness int    `json:"completeness"`
	Checklist    []bool `json:"checklist"`
}

type TeacherProfileResponse struct {
	ID                  uuid.UUID                 `json:"id"`
	UserID              uuid.UUID                 `json:"user_id"`
	FirstName           string                    `json:"first_name"`
	Surname             string                    `json:"surname"`
	Description         string                    `json:"description"`
	EducationPhases     []string                  `json:"education_phases"`
	Subjects            domain.Subjects           `json:"subjects"`
	Address             string                    `json:"address"`
	Latitude            *float64                  `json:"latitude,omitempty"`
	Longitude           *float64                  `json:"longitude,omitempty"`
	SearchRadiusKm      int                       `json:"search_radius_km"`
	IDNumber            string                    `json:"id_number,omitempty"`
	ProfilePictureURL   *string                   `json:"profile_picture_url,omitempty"`
	References          []domain.TeacherReference `json:"teacher_references"`
	Experiences         []ExperienceResponse      `json:"experiences"`
	ProfileCompleteness int                       `json:"profile_completeness"`
	IsVerified          bool                      `json:"is_verified"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

type ExperienceRequest struct {
	SchoolName  string  `json:"school_name"`
	Position    string  `json:"position"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description"`
}

type ExperienceResponse struct {
	ID          uuid.UUID  `json:"id"`
	SchoolName  string     `json:"school_name"`
	Position    string     `json:"position"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description"`
}
