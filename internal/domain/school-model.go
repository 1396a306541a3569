package domain

import "github.com/google/uuid"

type School struct {
	Base
	UserID                  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name                    string    `gorm:"type:varchar(255)" json:"name"`
	EMISNumber              string    `gorm:"type:varchar(20);column:emis_number" json:"emis_number"`
	Description             string    `gorm:"type:text" json:"description"`
	Address                 string    `gorm:"type:text" json:"address"`
	Latitude                *float64  `json:"latitude,omitempty"`
	Longitude               *float64  `json:"longitude,omitempty"`
	Phone                   string    `gorm:"type:varchar(30)" json:"phone"`
	RegistrationCertificate *string   `gorm:"type:text" json:"registration_certificate,omitempty"` // storage path
}
