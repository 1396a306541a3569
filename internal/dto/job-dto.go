package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/temped/temped-api/internal/domain"
)

type JobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Subject        string   `json:"subject"`
	EducationPhase string   `json:"education_phase"`
	StartDate      string   `json:"start_date"` // YYYY-MM-DD
	EndDate        *string  `json:"end_date,omitempty"`
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
}

type JobQuery struct {
	Q       string `query:"q"`
	Phase   string `query:"phase"`
	Subject string `query:"subject"`
	Status  string `query:"status"`
	Near    bool   `query:"near"`
	Limit   int    `query:"limit"`
	Offset  int    `query:"offset"`
}

type JobResponse struct {
	ID             uuid.UUID        `json:"id"`
	SchoolID       uuid.UUID        `json:"school_id"`
	SchoolName     string           `json:"school_name,omitempty"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Subject        string           `json:"subject"`
	EducationPhase string           `json:"education_phase"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	Address        string           `json:"address"`
	Latitude       *float64         `json:"latitude,omitempty"`
	Longitude      *float64         `json:"longitude,omitempty"`
	Status         domain.JobStatus `json:"status"`
	DistanceKm     *float64         `json:"distance_km,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}
