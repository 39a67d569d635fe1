package model

import (
	"time"

	"github.com/google/uuid"
)

// Known study types offered by the clinic. TipoEstudio is stored as free
// text so "Otro" uploads keep whatever the employee typed.
var StudyTypes = []string{
	"Radiografía Panorámica",
	"Radiografía Periapical",
	"Radiografía de Aleta de Mordida",
	"Tomografía Computarizada (TC)",
	"Resonancia Magnética (RM)",
	"Cefalometría",
	"Radiografía de ATM",
	"Otro",
}

// Study is one radiology study. Patient identity is denormalized; the DNI
// is the only link to the patient (and to a cliente profile, if any).
type Study struct {
	ID              uuid.UUID `json:"id" db:"id"`
	PatientNombre   string    `json:"patient_nombre" db:"patient_nombre"`
	PatientApellido string    `json:"patient_apellido" db:"patient_apellido"`
	PatientDNI      string    `json:"patient_dni" db:"patient_dni"`
	TipoEstudio     string    `json:"tipo_estudio" db:"tipo_estudio"`
	Descripcion     *string   `json:"descripcion" db:"descripcion"`
	FechaEstudio    string    `json:"fecha_estudio" db:"fecha_estudio"`
	UploadedBy      uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// StudyImage references one stored image blob of a study.
type StudyImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StudyID   uuid.UUID `json:"study_id" db:"study_id"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	ImageName string    `json:"image_name" db:"image_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StudyWithImages is the projection served to the portal: the study plus
// its image rows, fetched in a second query per study.
type StudyWithImages struct {
	Study
	Images []*StudyImage `json:"images"`
}

// CreateStudyRequest carries the non-file fields of the upload form.
type CreateStudyRequest struct {
	PatientNombre   string `form:"patient_nombre" binding:"required"`
	PatientApellido string `form:"patient_apellido" binding:"required"`
	PatientDNI      string `form:"patient_dni" binding:"required,dni"`
	TipoEstudio     string `form:"tipo_estudio" binding:"required"`
	Descripcion     string `form:"descripcion"`
	FechaEstudio    string `form:"fecha_estudio" binding:"required"`
}
