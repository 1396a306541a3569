package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen         JobStatus = "Open"
	JobStatusInterviewing JobStatus = "Interviewing"
	JobStatusHired        JobStatus = "Hired"
	JobStatusClosed       JobStatus = "Closed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusInterviewing, JobStatusHired, JobStatusClosed:
		return true
	}
	return false
}

type Job struct {
	Base
	SchoolID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Title          string     `gorm:"type:varchar(255);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Subject        string     `gorm:"type:varchar(100)" json:"subject"`
	EducationPhase string     `gorm:"type:varchar(30)" json:"education_phase"`
	StartDate      time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Address        string     `gorm:"type:text" json:"address"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Status         JobStatus  `gorm:"type:varchar(20);not null;default:'Open';index" json:"status"`

	School *School `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}
