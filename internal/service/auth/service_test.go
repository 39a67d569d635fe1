package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doi-radiologia/portal-api/internal/config"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/pkg/auth"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/security"
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

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	args := m.Called(ctx, tokenID, until)
	return args.Error(0)
}

func (m *MockTokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) StoreVerificationToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	args := m.Called(ctx, userID, token, expiry)
	return args.Error(0)
}

func (m *MockTokenRepository) ValidateVerificationToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenRepository) StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	args := m.Called(ctx, userID, token, expiry)
	return args.Error(0)
}

func (m *MockTokenRepository) ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenRepository) InvalidateToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// stubEmailService records sends without talking to SMTP.
type stubEmailService struct {
	verifications int
	resets        int
}

func (s *stubEmailService) SendVerification(to, token string) error {
	s.verifications++
	return nil
}

func (s *stubEmailService) SendPasswordReset(to, token string) error {
	s.resets++
	return nil
}

var testHasher = security.NewBcryptHasher(4)

func newTestService(profileRepo *MockProfileRepository, tokenRepo *MockTokenRepository, emails *stubEmailService) *Service {
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
	oauth := NewOAuthClient(config.OAuthConfig{})
	return NewService(profileRepo, tokenRepo, jwtSvc, testHasher, emails, oauth)
}

func testProfile(role model.Role, password string) *model.Profile {
	hash, err := testHasher.Hash(password)
	if err != nil {
		panic(err)
	}
	return &model.Profile{
		ID:            uuid.New(),
		Email:         "user@example.com",
		Nombre:        "Ana",
		Apellido:      "García",
		DNI:           "30123456",
		Role:          role,
		EmailVerified: true,
		PasswordHash:  hash,
	}
}

func TestLoginRoutesByRole(t *testing.T) {
	cases := []struct {
		role model.Role
		want string
	}{
		{model.RoleAdmin, model.PathAdmin},
		{model.RoleEmpleado, model.PathEmpleado},
		{model.RoleCliente, model.PathCliente},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			profileRepo := new(MockProfileRepository)
			tokenRepo := new(MockTokenRepository)
			svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

			prof := testProfile(tc.role, "contraseña123")
			profileRepo.On("GetByEmail", mock.Anything, prof.Email).Return(prof, nil)

			tokens, err := svc.Login(context.Background(), prof.Email, "contraseña123")

			require.NoError(t, err)
			assert.Equal(t, tc.want, tokens.RedirectTo)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	prof := testProfile(model.RoleCliente, "contraseña123")
	profileRepo.On("GetByEmail", mock.Anything, prof.Email).Return(prof, nil)

	_, err := svc.Login(context.Background(), prof.Email, "otra-clave")

	assert.Error(t, err)
	assert.Equal(t, errors.ErrAuth, errors.Code(err))
}

// Correct credentials on an unconfirmed account do not open a session.
func TestLoginRejectsUnverifiedEmail(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	prof := testProfile(model.RoleCliente, "contraseña123")
	prof.EmailVerified = false
	profileRepo.On("GetByEmail", mock.Anything, prof.Email).Return(prof, nil)

	tokens, err := svc.Login(context.Background(), prof.Email, "contraseña123")

	assert.Error(t, err)
	assert.Equal(t, errors.ErrAuth, errors.Code(err))
	assert.Nil(t, tokens)
}

func TestLoginUnknownEmail(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	profileRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, fmt.Errorf("sql: no rows in result set"))

	_, err := svc.Login(context.Background(), "nobody@example.com", "contraseña123")

	assert.Error(t, err)
	assert.Equal(t, errors.ErrAuth, errors.Code(err))
}

// A token whose profile row is gone still restores a session, landing on
// the cliente dashboard.
func TestRestoreSessionDegradesToCliente(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	userID := uuid.New()
	profileRepo.On("Get", mock.Anything, userID).Return(nil, fmt.Errorf("sql: no rows in result set"))

	prof, path, err := svc.RestoreSession(context.Background(), &model.TokenClaims{UserID: userID})

	require.NoError(t, err)
	assert.Nil(t, prof)
	assert.Equal(t, model.PathCliente, path)
}

func TestRestoreSession(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	prof := testProfile(model.RoleAdmin, "contraseña123")
	profileRepo.On("Get", mock.Anything, prof.ID).Return(prof, nil)

	got, path, err := svc.RestoreSession(context.Background(), &model.TokenClaims{UserID: prof.ID})

	require.NoError(t, err)
	assert.Equal(t, prof, got)
	assert.Equal(t, model.PathAdmin, path)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:           "ana@example.com",
		DNI:             "30123456",
		Password:        "contraseña123",
		ConfirmPassword: "contraseña124",
	})

	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.Code(err))
	profileRepo.AssertNotCalled(t, "Create")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	existing := testProfile(model.RoleCliente, "contraseña123")
	profileRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(existing, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:           "ana@example.com",
		DNI:             "30123456",
		Password:        "contraseña123",
		ConfirmPassword: "contraseña123",
	})

	assert.Error(t, err)
	assert.Equal(t, errors.ErrConflict, errors.Code(err))
	profileRepo.AssertNotCalled(t, "Create")
}

func TestRegisterDuplicateDNI(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	profileRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, fmt.Errorf("no rows"))
	existing := testProfile(model.RoleCliente, "contraseña123")
	profileRepo.On("GetByDNI", mock.Anything, "30123456").Return(existing, nil)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:           "ana@example.com",
		DNI:             "30123456",
		Password:        "contraseña123",
		ConfirmPassword: "contraseña123",
	})

	assert.Error(t, err)
	assert.Equal(t, errors.ErrConflict, errors.Code(err))
	profileRepo.AssertNotCalled(t, "Create")
}

func TestRegisterCreatesCliente(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	emails := &stubEmailService{}
	svc := newTestService(profileRepo, tokenRepo, emails)

	profileRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, fmt.Errorf("no rows"))
	profileRepo.On("GetByDNI", mock.Anything, "30123456").Return(nil, fmt.Errorf("no rows"))
	profileRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)
	tokenRepo.On("StoreVerificationToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	prof, err := svc.Register(context.Background(), &model.RegisterRequest{
		Nombre:          "Ana",
		Apellido:        "García",
		Email:           "ana@example.com",
		DNI:             "30123456",
		Password:        "contraseña123",
		ConfirmPassword: "contraseña123",
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleCliente, prof.Role)
	assert.NotEmpty(t, prof.PasswordHash)
	assert.NotEqual(t, "contraseña123", prof.PasswordHash)
	assert.Equal(t, 1, emails.verifications)
}

func TestValidateTokenRejectsRevoked(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	svc := newTestService(profileRepo, tokenRepo, &stubEmailService{})

	prof := testProfile(model.RoleCliente, "contraseña123")
	profileRepo.On("GetByEmail", mock.Anything, prof.Email).Return(prof, nil)
	tokens, err := svc.Login(context.Background(), prof.Email, "contraseña123")
	require.NoError(t, err)

	tokenRepo.On("IsTokenRevoked", mock.Anything, mock.Anything).Return(true, nil)

	_, err = svc.ValidateToken(context.Background(), tokens.AccessToken)

	assert.Error(t, err)
	assert.Equal(t, errors.ErrAuth, errors.Code(err))
}

func TestResendVerification(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	emails := &stubEmailService{}
	svc := newTestService(profileRepo, tokenRepo, emails)

	prof := testProfile(model.RoleCliente, "contraseña123")
	prof.EmailVerified = false
	profileRepo.On("GetByEmail", mock.Anything, prof.Email).Return(prof, nil)
	tokenRepo.On("StoreVerificationToken", mock.Anything, prof.ID, mock.Anything, mock.Anything).Return(nil)

	err := svc.ResendVerification(context.Background(), prof.Email)

	require.NoError(t, err)
	assert.Equal(t, 1, emails.verifications)
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	emails := &stubEmailService{}
	svc := newTestService(profileRepo, tokenRepo, emails)

	prof := testProfile(model.RoleCliente, "contraseña123")
	profileRepo.On("GetByEmail", mock.Anything, prof.Email).Return(prof, nil)

	err := svc.ResendVerification(context.Background(), prof.Email)

	assert.Error(t, err)
	assert.Equal(t, errors.ErrValidation, errors.Code(err))
	assert.Zero(t, emails.verifications)
}

func TestResendVerificationUnknownEmailIsSilent(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	emails := &stubEmailService{}
	svc := newTestService(profileRepo, tokenRepo, emails)

	profileRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, fmt.Errorf("no rows"))

	err := svc.ResendVerification(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Zero(t, emails.verifications)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	tokenRepo := new(MockTokenRepository)
	emails := &stubEmailService{}
	svc := newTestService(profileRepo, tokenRepo, emails)

	profileRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, fmt.Errorf("no rows"))

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Zero(t, emails.resets)
}
