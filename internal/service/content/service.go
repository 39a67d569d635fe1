package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
	"github.com/doi-radiologia/portal-api/pkg/errors"
)

// Fallback copy for the public home page, used whenever the registry has
// no row for a tuple or the store errors.
const (
	FallbackHeroTitle    = "Diagnóstico Odontológico por Imagen"
	FallbackHeroSubtitle = "Más de 30 años de experiencia en radiología dental y maxilofacial. " +
		"Tecnología de vanguardia y atención personalizada para profesionales de la salud dental."
	FallbackHeroCTA    = "Agendar Cita"
	FallbackAboutTitle = "¿Por qué elegirnos?"
	FallbackAboutDesc  = "Somos líderes en diagnóstico por imagen dental con el compromiso de " +
		"ofrecer resultados precisos y confiables"
)

type Service struct {
	repo repository.ContentRepository
}

func NewService(repo repository.ContentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.ContentItemRequest) (*model.ContentItem, error) {
	item := &model.ContentItem{
		ID:           uuid.New(),
		PageName:     req.PageName,
		SectionName:  req.SectionName,
		ContentKey:   req.ContentKey,
		ContentValue: req.ContentValue,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, errors.Persistence("error al crear el contenido", err)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.ContentItemRequest) (*model.ContentItem, error) {
	item := &model.ContentItem{
		ID:           id,
		PageName:     req.PageName,
		SectionName:  req.SectionName,
		ContentKey:   req.ContentKey,
		ContentValue: req.ContentValue,
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, errors.Persistence("error al actualizar el contenido", err)
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Persistence("error al eliminar el contenido", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.ContentItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Persistence("no se pudo cargar el contenido", err)
	}
	return items, nil
}

// Get resolves one content tuple for the public pages. It never fails:
// a missing row or a store error both degrade to the fallback.
func (s *Service) Get(ctx context.Context, page, section, key, fallback string) string {
	value, ok, err := s.repo.GetValue(ctx, page, section, key)
	if err != nil {
		log.Warn().Err(err).
			Str("page", page).
			Str("section", section).
			Str("key", key).
			Msg("content lookup failed, serving fallback")
		return fallback
	}
	if !ok {
		return fallback
	}
	return value
}

// HomeContent assembles the editable fragments of the public home page.
func (s *Service) HomeContent(ctx context.Context) map[string]string {
	return map[string]string{
		"hero.title":        s.Get(ctx, "home", "hero", "title", FallbackHeroTitle),
		"hero.subtitle":     s.Get(ctx, "home", "hero", "subtitle", FallbackHeroSubtitle),
		"hero.cta_text":     s.Get(ctx, "home", "hero", "cta_text", FallbackHeroCTA),
		"about.title":       s.Get(ctx, "home", "about", "title", FallbackAboutTitle),
		"about.description": s.Get(ctx, "home", "about", "description", FallbackAboutDesc),
	}
}
