package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
	"github.com/doi-radiologia/portal-api/internal/repository/postgres"
	"github.com/doi-radiologia/portal-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest, createdBy uuid.UUID) (*model.Patient, error) {
	patient := &model.Patient{
		Base:            model.Base{ID: uuid.New()},
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		DNI:             req.DNI,
		Email:           req.Email,
		Telefono:        req.Telefono,
		FechaNacimiento: req.FechaNacimiento,
		Direccion:       req.Direccion,
		CreatedBy:       createdBy,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, errors.Persistence("no se pudo guardar el paciente", err)
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Base:            model.Base{ID: id},
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		DNI:             req.DNI,
		Email:           req.Email,
		Telefono:        req.Telefono,
		FechaNacimiento: req.FechaNacimiento,
		Direccion:       req.Direccion,
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, errors.Persistence("no se pudo guardar el paciente", err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Persistence("no se pudo eliminar el paciente", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Persistence("no se pudieron cargar los pacientes", err)
	}
	return patients, nil
}

// Get is used by the employee dashboard detail view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, errors.NotFound("patient", err)
		}
		return nil, errors.Persistence("no se pudo cargar el paciente", err)
	}
	return patient, nil
}
