package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Role       string `json:"role" validate:"required,oneof=admin rrhh empleado"`
	CostCenter string `json:"cost_center" validate:"omitempty,max=50"`
}

// UpdateUserRequest entrada para actualizar un usuario (sin password ni email).
type UpdateUserRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Role       string `json:"role" validate:"required,oneof=admin rrhh empleado"`
	Active     bool   `json:"active"`
	CostCenter string `json:"cost_center" validate:"omitempty,max=50"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CostCenter string    `json:"cost_center,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
