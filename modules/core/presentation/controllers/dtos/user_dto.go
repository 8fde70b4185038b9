package dtos

import (
	"time"

	"github.com/ledgerflow/practice-sdk/modules/core/domain/aggregates/user"
)

type CreateUserDTO struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role" validate:"required,oneof=admin manager staff"`
}

type UpdateUserDTO struct {
	Name   string `json:"name" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=admin manager staff"`
	Active *bool  `json:"active"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID().String(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      string(u.Role()),
		Active:    u.Active(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
