package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the per-identity row in profiles. Its ID is shared with the
// auth identity, so there is exactly one profile per authenticated user.
type Profile struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Email         string    `json:"email" db:"email"`
	Nombre        string    `json:"nombre" db:"nombre"`
	Apellido      string    `json:"apellido" db:"apellido"`
	DNI           string    `json:"dni" db:"dni"`
	Role          Role      `json:"role" db:"role"`
	EmailVerified bool      `json:"email_verified" db:"email_verified"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin empleado cliente"`
}
