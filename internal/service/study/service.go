package study

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/blob"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
	"github.com/doi-radiologia/portal-api/pkg/errors"
)

// ImageFile is one image selected in the upload form.
type ImageFile struct {
	Name   string
	Reader io.Reader
}

type Service struct {
	repo  repository.StudyRepository
	blobs blob.Store
	// fileURL turns a blob id into the public URL stored on the image row.
	fileURL func(id string) string
}

func NewService(repo repository.StudyRepository, blobs blob.Store, publicURL string) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
		fileURL: func(id string) string {
			return fmt.Sprintf("%s/api/v1/files/%s", publicURL, id)
		},
	}
}

// Upload runs the two-step pipeline: persist the study row, then store
// each image sequentially (blob upload, then reference row). There is no
// cross-step transaction: if the k-th image fails, the study and the
// first k-1 image rows remain.
func (s *Service) Upload(ctx context.Context, req *model.CreateStudyRequest, images []ImageFile, uploadedBy uuid.UUID) (*model.StudyWithImages, error) {
	if len(images) == 0 {
		return nil, errors.Validation("debes subir al menos una imagen del estudio")
	}

	study := &model.Study{
		ID:              uuid.New(),
		PatientNombre:   req.PatientNombre,
		PatientApellido: req.PatientApellido,
		PatientDNI:      req.PatientDNI,
		TipoEstudio:     req.TipoEstudio,
		FechaEstudio:    req.FechaEstudio,
		UploadedBy:      uploadedBy,
	}
	if req.Descripcion != "" {
		study.Descripcion = &req.Descripcion
	}

	if err := s.repo.Create(ctx, study); err != nil {
		return nil, errors.Persistence("no se pudo cargar el estudio", err)
	}

	stored := make([]*model.StudyImage, 0, len(images))
	for _, img := range images {
		blobID, err := s.blobs.Upload(ctx, img.Name, img.Reader)
		if err != nil {
			return nil, errors.Upload(fmt.Sprintf("error al subir imagen %s", img.Name), err)
		}

		row := &model.StudyImage{
			ID:        uuid.New(),
			StudyID:   study.ID,
			ImageURL:  s.fileURL(blobID),
			ImageName: img.Name,
		}
		if err := s.repo.CreateImage(ctx, row); err != nil {
			return nil, errors.Upload(fmt.Sprintf("error al registrar imagen %s", img.Name), err)
		}
		stored = append(stored, row)
	}

	return &model.StudyWithImages{Study: *study, Images: stored}, nil
}

// ListForPatient returns the studies whose patient DNI matches the
// signed-in client's own DNI, newest study date first, each with its
// image rows fetched in a follow-up query.
func (s *Service) ListForPatient(ctx context.Context, dni string) ([]*model.StudyWithImages, error) {
	if dni == "" {
		// OAuth accounts without a recorded DNI own no studies.
		return []*model.StudyWithImages{}, nil
	}

	studies, err := s.repo.ListByPatientDNI(ctx, dni)
	if err != nil {
		return nil, errors.Persistence("no se pudieron cargar los estudios", err)
	}
	return s.attachImages(ctx, studies)
}

// ListAll serves the employee/admin catalog view.
func (s *Service) ListAll(ctx context.Context) ([]*model.StudyWithImages, error) {
	studies, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Persistence("no se pudieron cargar los estudios", err)
	}
	return s.attachImages(ctx, studies)
}

// Delete removes the study and its image rows. Blobs stay behind.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteImages(ctx, id); err != nil {
		return errors.Persistence("no se pudo eliminar el estudio", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Persistence("no se pudo eliminar el estudio", err)
	}
	return nil
}

// OpenImage streams a stored image blob for download.
func (s *Service) OpenImage(ctx context.Context, blobID string) (*blob.Object, error) {
	obj, err := s.blobs.Download(ctx, blobID)
	if err != nil {
		return nil, errors.NotFound("image", err)
	}
	return obj, nil
}

// attachImages issues one image query per study.
func (s *Service) attachImages(ctx context.Context, studies []*model.Study) ([]*model.StudyWithImages, error) {
	out := make([]*model.StudyWithImages, 0, len(studies))
	for _, st := range studies {
		images, err := s.repo.ListImages(ctx, st.ID)
		if err != nil {
			return nil, errors.Persistence("no se pudieron cargar las imágenes", err)
		}
		if images == nil {
			images = []*model.StudyImage{}
		}
		out = append(out, &model.StudyWithImages{Study: *st, Images: images})
	}
	return out, nil
}
