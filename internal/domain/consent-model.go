package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConsentTerms = "TERMS"
	ConsentPOPIA = "POPIA" // processing of personal information
)

type UserConsent struct {
	Base
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:uidx_user_consents_code,unique" json:"user_id"`
	ConsentCode string     `gorm:"type:varchar(50);not null;index:uidx_user_consents_code,unique" json:"consent_code"`
	Accepted    bool       `gorm:"not null;default:true" json:"accepted"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
}
