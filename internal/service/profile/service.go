package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
	"github.com/doi-radiologia/portal-api/internal/repository/postgres"
	"github.com/doi-radiologia/portal-api/pkg/errors"
)

type Service struct {
	repo repository.ProfileRepository
}

func NewService(repo repository.ProfileRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, errors.NotFound("profile", err)
		}
		return nil, errors.Persistence("failed to load profile", err)
	}
	return profile, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Persistence("no se pudieron cargar los usuarios", err)
	}
	return profiles, nil
}

// UpdateRole changes a user's role. A user can never change their own
// role, no matter what the UI sends.
func (s *Service) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, role model.Role) error {
	if actorID == targetID {
		return errors.Forbidden("no puedes cambiar tu propio rol")
	}
	if !role.Valid() {
		return errors.Validation("rol desconocido")
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		if postgres.IsNoRows(err) {
			return errors.NotFound("profile", err)
		}
		return errors.Persistence("no se pudo actualizar el rol del usuario", err)
	}
	return nil
}
