package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/temped/temped-api/internal/domain"
)

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type ApplicationResponse struct {
	ID          uuid.UUID                `json:"id"`
	JobID       uuid.UUID                `json:"job_id"`
	TeacherID   uuid.UUID                `json:"teacher_id"`
	CoverLetter string                   `json:"cover_letter"`
	Status      domain.ApplicationStatus `json:"status"`
	Shortlisted bool                     `json:"shortlisted"`
	CreatedAt   time.Time                `json:"created_at"`

	Job     *JobResponse       `json:"job,omitempty"`
	Teacher *ApplicantResponse `json:"teacher,omitempty"`
}

// ApplicantResponse is the teacher card a school sees on an application.
type ApplicantResponse struct {
	ID                  uuid.UUID `json:"id"`
	FirstName           string    `json:"first_name"`
	Surname             string    `json:"surname"`
	EducationPhases     []string  `json:"education_phases"`
	ProfileCompleteness int       `json:"profile_completeness"`
	DistanceKm          *float64  `json:"distance_km,omitempty"`
}
