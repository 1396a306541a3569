package domain

const (
	ProfileStatusActive    = "active"
	ProfileStatusSuspended = "suspended"
)

// Profile is the login account. Teachers and schools hang off it by user_id.
type Profile struct {
	Base
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	FullName     string  `gorm:"type:varchar(200)" json:"full_name"`
	Phone        *string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Status       string  `gorm:"type:varchar(20);not null;default:active" json:"status"`
}
