package domain

import "github.com/google/uuid"

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleSchool  = "SCHOOL"
)

// RoleCodes lists the roles seeded at startup.
var RoleCodes = []string{RoleAdmin, RoleTeacher, RoleSchool}

type Role struct {
	Base
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN | TEACHER | SCHOOL
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

type UserRole struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	RoleID uuid.UUID `gorm:"type:uuid;index;not null" json:"role_id"`
}
