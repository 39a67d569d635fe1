package model

import (
	"github.com/google/uuid"
)

// Patient is a clinic patient. DNI is the join key to studies; a patient
// does not need a portal login.
type Patient struct {
	Base
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	DNI             string    `json:"dni" db:"dni"`
	Email           *string   `json:"email" db:"email"`
	Telefono        *string   `json:"telefono" db:"telefono"`
	FechaNacimiento *string   `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Direccion       *string   `json:"direccion" db:"direccion"`
	CreatedBy       uuid.UUID `json:"created_by" db:"created_by"`
}

type CreatePatientRequest struct {
	Nombre          string  `json:"nombre" binding:"required"`
	Apellido        string  `json:"apellido" binding:"required"`
	DNI             string  `json:"dni" binding:"required,dni"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Direccion       *string `json:"direccion"`
}

type UpdatePatientRequest struct {
	Nombre          string  `json:"nombre" binding:"required"`
	Apellido        string  `json:"apellido" binding:"required"`
	DNI             string  `json:"dni" binding:"required,dni"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Telefono        *string `json:"telefono"`
	FechaNacimiento *string `json:"fecha_nacimiento"`
	Direccion       *string `json:"direccion"`
}
