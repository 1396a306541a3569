package dto

import "github.com/google/uuid"

type SetRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"` // ["ADMIN","TEACHER"]
}

type RoleResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type UserRolesResponse struct {
	UserID uuid.UUID      `json:"user_id"`
	Roles  []RoleResponse `json:"roles"`
}
