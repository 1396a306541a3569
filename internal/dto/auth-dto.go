package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`

	Role string `json:"role" validate:"required,oneof=TEACHER SCHOOL"`

	// TERMS is mandatory, POPIA optional.
	ConsentCodes []string `json:"consent_codes"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      UserProfileResponse `json:"user"`
}

type UserProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	Roles     []string  `json:"roles,omitempty"`
	Consents  []string  `json:"consents,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
