package content

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doi-radiologia/portal-api/internal/model"
)

// MockContentRepository is a mock implementation of ContentRepository.
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, item *model.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) Update(ctx context.Context, item *model.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentRepository) List(ctx context.Context) ([]*model.ContentItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ContentItem), args.Error(1)
}

func (m *MockContentRepository) GetValue(ctx context.Context, page, section, key string) (string, bool, error) {
	args := m.Called(ctx, page, section, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func TestGetReturnsStoredValue(t *testing.T) {
	repo := new(MockContentRepository)
	svc := NewService(repo)

	repo.On("GetValue", mock.Anything, "home", "hero", "title").Return("Título editado", true, nil)

	got := svc.Get(context.Background(), "home", "hero", "title", FallbackHeroTitle)

	assert.Equal(t, "Título editado", got)
}

func TestGetFallsBackOnMissingRow(t *testing.T) {
	repo := new(MockContentRepository)
	svc := NewService(repo)

	repo.On("GetValue", mock.Anything, "home", "hero", "title").Return("", false, nil)

	got := svc.Get(context.Background(), "home", "hero", "title", FallbackHeroTitle)

	assert.Equal(t, FallbackHeroTitle, got)
}

// A broken store must never surface as an error on the public pages.
func TestGetFallsBackOnStoreError(t *testing.T) {
	repo := new(MockContentRepository)
	svc := NewService(repo)

	repo.On("GetValue", mock.Anything, "home", "hero", "title").
		Return("", false, fmt.Errorf("connection refused"))

	got := svc.Get(context.Background(), "home", "hero", "title", FallbackHeroTitle)

	assert.Equal(t, FallbackHeroTitle, got)
}

// An editor may deliberately blank a fragment; a stored empty string is
// a value, not a missing row.
func TestGetReturnsStoredEmptyValue(t *testing.T) {
	repo := new(MockContentRepository)
	svc := NewService(repo)

	repo.On("GetValue", mock.Anything, "home", "hero", "cta_text").Return("", true, nil)

	got := svc.Get(context.Background(), "home", "hero", "cta_text", FallbackHeroCTA)

	assert.Equal(t, "", got)
}

func TestHomeContentServesAllKeys(t *testing.T) {
	repo := new(MockContentRepository)
	svc := NewService(repo)

	repo.On("GetValue", mock.Anything, "home", mock.Anything, mock.Anything).
		Return("", false, fmt.Errorf("store down"))

	got := svc.HomeContent(context.Background())

	require.Len(t, got, 5)
	assert.Equal(t, FallbackHeroTitle, got["hero.title"])
	assert.Equal(t, FallbackHeroSubtitle, got["hero.subtitle"])
	assert.Equal(t, FallbackHeroCTA, got["hero.cta_text"])
	assert.Equal(t, FallbackAboutTitle, got["about.title"])
	assert.Equal(t, FallbackAboutDesc, got["about.description"])
}
