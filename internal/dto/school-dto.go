package dto

import "github.com/google/uuid"

type SchoolProfileRequest struct {
	Name        string   `json:"name"`
	EMISNumber  string   `json:"emis_number"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Phone       string   `json:"phone"`
}

type SchoolProfileResponse struct {
	ID                         uuid.UUID `json:"id"`
	UserID                     uuid.UUID `json:"user_id"`
	Name                       string    `json:"name"`
	EMISNumber                 string    `json:"emis_number"`
	Description                string    `json:"description"`
	Address                    string    `json:"address"`
	Latitude                   *float64  `json:"latitude,omitempty"`
	Longitude                  *float64  `json:"longitude,omitempty"`
	Phone                      string    `json:"phone"`
	RegistrationCertificateURL *string   `json:"registration_certificate_url,omitempty"`
}
