package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

const (
	PhaseFoundation   = "foundation"
	PhaseIntermediate = "intermediate"
	PhaseSenior       = "senior"
	PhaseFET          = "fet"
)

var EducationPhases = []string{PhaseFoundation, PhaseIntermediate, PhaseSenior, PhaseFET}

func ValidEducationPhase(p string) bool {
	for _, v := range EducationPhases {
		if v == p {
			return true
		}
	}
	return false
}

const DefaultSearchRadiusKm = 50

type TeacherReference struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Subjects maps an education phase to the subjects taught in it.
type Subjects map[string][]string

type Teacher struct {
	Base
	UserID              uuid.UUID                              `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FirstName           string                                 `gorm:"type:varchar(100)" json:"first_name"`
	Surname             string                                 `gorm:"type:varchar(100)" json:"surname"`
	Description         string                                 `gorm:"type:text" json:"description"`
	EducationPhases     pq.StringArray                         `gorm:"type:text[]" json:"education_phases"`
	Subjects            datatypes.JSONType[Subjects]           `gorm:"type:jsonb" json:"subjects"`
	Address             string                                 `gorm:"type:text" json:"address"`
	Latitude            *float64                               `json:"latitude,omitempty"`
	Longitude           *float64                               `json:"longitude,omitempty"`
	SearchRadiusKm      int                                    `gorm:"not null;default:50" json:"search_radius_km"`
	IDNumber            string                                 `gorm:"type:varchar(20)" json:"id_number"`
	ProfilePicture      *string                                `gorm:"type:text" json:"profile_picture,omitempty"` // storage path
	TeacherReferences   datatypes.JSONType[[]TeacherReference] `gorm:"type:jsonb" json:"teacher_references"`
	ProfileCompleteness int                                    `gorm:"not null;default:0" json:"profile_completeness"`

	Documents   []TeacherDocument   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:TeacherID" json:"documents,omitempty"`
	Experiences []TeacherExperience `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:TeacherID" json:"experiences,omitempty"`
}

type TeacherExperience struct {
	Base
	TeacherID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"teacher_id"`
	SchoolName  string     `gorm:"type:varchar(200);not null" json:"school_name"`
	Position    string     `gorm:"type:varchar(200);not null" json:"position"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Description string     `gorm:"type:text" json:"description"`
}
