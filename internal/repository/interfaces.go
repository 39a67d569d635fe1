package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetByDNI(ctx context.Context, dni string) (*model.Profile, error)
	List(ctx context.Context) ([]*model.Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Patient, error)
}

type StudyRepository interface {
	Create(ctx context.Context, study *model.Study) error
	Get(ctx context.Context, id uuid.UUID) (*model.Study, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Study, error)
	ListByPatientDNI(ctx context.Context, dni string) ([]*model.Study, error)
	CreateImage(ctx context.Context, image *model.StudyImage) error
	ListImages(ctx context.Context, studyID uuid.UUID) ([]*model.StudyImage, error)
	DeleteImages(ctx context.Context, studyID uuid.UUID) error
}

type ContentRepository interface {
	Create(ctx context.Context, item *model.ContentItem) error
	Update(ctx context.Context, item *model.ContentItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.ContentItem, error)
	// GetValue returns at most one matching row's value; ok is false when
	// no row matches.
	GetValue(ctx context.Context, page, section, key string) (value string, ok bool, err error)
}

// TokenRepository tracks revoked session tokens and one-shot
// verification/reset tokens.
type TokenRepository interface {
	RevokeToken(ctx context.Context, tokenID string, until time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	ValidateVerificationToken(ctx context.Context, token string) (uuid.UUID, error)
	StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error)
	InvalidateToken(ctx context.Context, token string) error
}
