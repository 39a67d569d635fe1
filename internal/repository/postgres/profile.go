package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
)

var ErrNoRows = sql.ErrNoRows

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, email, nombre, apellido, dni, role, email_verified, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.Nombre,
		profile.Apellido,
		profile.DNI,
		profile.Role,
		profile.EmailVerified,
		profile.PasswordHash,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE id = $1`
	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE email = $1`
	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, email); err != nil {
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByDNI(ctx context.Context, dni string) (*model.Profile, error) {
	query := `SELECT * FROM profiles WHERE dni = $1`
	var profile model.Profile
	if err := r.db.GetContext(ctx, &profile, query, dni); err != nil {
		return nil, fmt.Errorf("failed to get profile by dni: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	query := `SELECT * FROM profiles ORDER BY created_at DESC`
	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	query := `UPDATE profiles SET role = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, role, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return requireRowsAffected(res, "profile")
}

func (r *profileRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE profiles SET password_hash = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRowsAffected(res, "profile")
}

func (r *profileRepository) UpdateEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE profiles SET email_verified = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, verified, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update email_verified: %w", err)
	}
	return requireRowsAffected(res, "profile")
}

// requireRowsAffected turns a zero-row update/delete into ErrNoRows so
// callers can tell "nothing matched" from a transport failure.
func requireRowsAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", resource, ErrNoRows)
	}
	return nil
}

// IsNoRows reports whether err stems from an empty result.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
