package domain

import "github.com/google/uuid"

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Application is unique per (job, teacher). Shortlisted is a school-side flag
// and does not follow Status.
type Application struct {
	Base
	JobID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uidx_applications_job_teacher" json:"job_id"`
	TeacherID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:uidx_applications_job_teacher;index" json:"teacher_id"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Shortlisted bool              `gorm:"not null;default:false" json:"shortlisted"`

	Job     *Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}
