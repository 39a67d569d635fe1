package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/pkg/errors"
)

// MockProfileRepository is a mock implementation of ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByDNI(ctx context.Context, dni string) (*model.Profile, error) {
	args := m.Called(ctx, dni)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context) ([]*model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func TestUpdateRoleSelfChangeRejected(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := NewService(repo)

	id := uuid.New()
	err := svc.UpdateRole(context.Background(), id, id, model.RoleEmpleado)

	assert.Error(t, err)
	assert.Equal(t, errors.ErrForbidden, errors.Code(err))
	repo.AssertNotCalled(t, "UpdateRole")
}

func TestUpdateRoleUnknownRole(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := NewService(repo)

	err := svc.UpdateRole(context.Background(), uuid.New(), uuid.New(), model.Role("superadmin"))

	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.Code(err))
	repo.AssertNotCalled(t, "UpdateRole")
}

func TestUpdateRole(t *testing.T) {
	repo := new(MockProfileRepository)
	svc := NewService(repo)

	targetID := uuid.New()
	repo.On("UpdateRole", mock.Anything, targetID, model.RoleAdmin).Return(nil)

	err := svc.UpdateRole(context.Background(), uuid.New(), targetID, model.RoleAdmin)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
