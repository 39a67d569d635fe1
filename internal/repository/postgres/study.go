package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
)

type studyRepository struct {
	db *sqlx.DB
}

func NewStudyRepository(db *sqlx.DB) repository.StudyRepository {
	return &studyRepository{db: db}
}

func (r *studyRepository) Create(ctx context.Context, study *model.Study) error {
	query := `
		INSERT INTO studies (id, patient_nombre, patient_apellido, patient_dni, tipo_estudio, descripcion, fecha_estudio, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	study.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		study.ID,
		study.PatientNombre,
		study.PatientApellido,
		study.PatientDNI,
		study.TipoEstudio,
		study.Descripcion,
		study.FechaEstudio,
		study.UploadedBy,
		study.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create study: %w", err)
	}
	return nil
}

func (r *studyRepository) Get(ctx context.Context, id uuid.UUID) (*model.Study, error) {
	query := `SELECT * FROM studies WHERE id = $1`
	var study model.Study
	if err := r.db.GetContext(ctx, &study, query, id); err != nil {
		return nil, fmt.Errorf("failed to get study: %w", err)
	}
	return &study, nil
}

func (r *studyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM studies WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete study: %w", err)
	}
	return requireRowsAffected(res, "study")
}

func (r *studyRepository) List(ctx context.Context) ([]*model.Study, error) {
	query := `SELECT * FROM studies ORDER BY fecha_estudio DESC`
	var studies []*model.Study
	if err := r.db.SelectContext(ctx, &studies, query); err != nil {
		return nil, fmt.Errorf("failed to list studies: %w", err)
	}
	return studies, nil
}

func (r *studyRepository) ListByPatientDNI(ctx context.Context, dni string) ([]*model.Study, error) {
	query := `SELECT * FROM studies WHERE patient_dni = $1 ORDER BY fecha_estudio DESC`
	var studies []*model.Study
	if err := r.db.SelectContext(ctx, &studies, query, dni); err != nil {
		return nil, fmt.Errorf("failed to list studies by dni: %w", err)
	}
	return studies, nil
}

func (r *studyRepository) CreateImage(ctx context.Context, image *model.StudyImage) error {
	query := `
		INSERT INTO study_images (id, study_id, image_url, image_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	image.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		image.ID,
		image.StudyID,
		image.ImageURL,
		image.ImageName,
		image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create study image: %w", err)
	}
	return nil
}

func (r *studyRepository) ListImages(ctx context.Context, studyID uuid.UUID) ([]*model.StudyImage, error) {
	query := `SELECT * FROM study_images WHERE study_id = $1 ORDER BY created_at`
	var images []*model.StudyImage
	if err := r.db.SelectContext(ctx, &images, query, studyID); err != nil {
		return nil, fmt.Errorf("failed to list study images: %w", err)
	}
	return images, nil
}

func (r *studyRepository) DeleteImages(ctx context.Context, studyID uuid.UUID) error {
	query := `DELETE FROM study_images WHERE study_id = $1`
	if _, err := r.db.ExecContext(ctx, query, studyID); err != nil {
		return fmt.Errorf("failed to delete study images: %w", err)
	}
	return nil
}
