package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/doi-radiologia/portal-api/internal/email"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
	"github.com/doi-radiologia/portal-api/pkg/auth"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/security"
)

const (
	verifyTokenExpiry = 48 * time.Hour
	resetTokenExpiry  = 1 * time.Hour
)

type Service struct {
	profileRepo repository.ProfileRepository
	tokenRepo   repository.TokenRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	emailSvc    email.Service
	oauth       *OAuthClient
}

func NewService(profileRepo repository.ProfileRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service, oauth *OAuthClient) *Service {
	return &Service{
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		emailSvc:    emailSvc,
		oauth:       oauth,
	}
}

// Register creates a credential identity plus its profile row with role
// cliente. The email/dni existence checks run before the insert; two
// concurrent registrations can both pass them, the schema's unique
// constraints are the backstop.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Profile, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.Validation("las contraseñas no coinciden")
	}

	if existing, _ := s.profileRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, errors.Conflict("este correo electrónico ya está registrado")
	}
	if existing, _ := s.profileRepo.GetByDNI(ctx, req.DNI); existing != nil {
		return nil, errors.Conflict("este DNI ya está registrado")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.Validation("contraseña inválida")
	}

	profile := &model.Profile{
		ID:           uuid.New(),
		Email:        req.Email,
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		DNI:          req.DNI,
		Role:         model.RoleCliente,
		PasswordHash: hash,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Conflict("este correo electrónico o DNI ya está registrado")
		}
		return nil, errors.Persistence("no se pudo crear la cuenta", err)
	}

	if err := s.sendVerificationEmail(ctx, profile); err != nil {
		// Registration stands; the user can request a resend.
		log.Error().Err(err).Str("email", profile.Email).Msg("failed to send verification email")
	}

	return profile, nil
}

// Login validates credentials and resolves the landing path through the
// role router. A missing profile after a successful credential check
// degrades to the cliente path instead of failing the login.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Auth("credenciales incorrectas", err)
	}

	if err := s.hasher.Compare(profile.PasswordHash, password); err != nil {
		return nil, errors.Auth("credenciales incorrectas", err)
	}

	if !profile.EmailVerified {
		return nil, errors.Auth("debes confirmar tu correo electrónico antes de iniciar sesión", nil)
	}

	return s.issueSession(ctx, profile)
}

// ResendVerification issues a fresh verification token for an account
// that has not confirmed its address yet.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	profile, err := s.profileRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		// Do not leak whether the address exists.
		return nil
	}

	if profile.EmailVerified {
		return errors.Validation("este correo ya está verificado")
	}

	if err := s.sendVerificationEmail(ctx, profile); err != nil {
		return errors.Persistence("no se pudo reenviar el correo de verificación", err)
	}
	return nil
}

// RestoreSession re-resolves the profile for a validated token, mirroring
// the login role routing for page loads with an existing session.
func (s *Service) RestoreSession(ctx context.Context, claims *model.TokenClaims) (*model.Profile, string, error) {
	profile, err := s.profileRepo.Get(ctx, claims.UserID)
	if err != nil {
		// Degrade: an identity without a profile is treated as a cliente.
		return nil, model.RoleCliente.LandingPath(), nil
	}
	return profile, profile.Role.LandingPath(), nil
}

// ValidateToken checks signature, expiry and the revocation set.
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, errors.Auth("invalid token", err)
	}

	revoked, err := s.tokenRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errors.Persistence("failed to check token revocation", err)
	}
	if revoked {
		return nil, errors.Auth("token revoked", nil)
	}

	return claims, nil
}

func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Auth("invalid refresh token", err)
	}

	profile, err := s.profileRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Auth("unknown identity", err)
	}

	return s.issueSession(ctx, profile)
}

// SignOut revokes the presented access token until its natural expiry.
func (s *Service) SignOut(ctx context.Context, claims *model.TokenClaims) error {
	until := time.Now().Add(24 * time.Hour)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.tokenRepo.RevokeToken(ctx, claims.ID, until); err != nil {
		return errors.Persistence("failed to sign out", err)
	}
	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokenRepo.ValidateVerificationToken(ctx, token)
	if err != nil {
		return errors.Auth("invalid or expired verification token", err)
	}

	if err := s.profileRepo.UpdateEmailVerified(ctx, userID, true); err != nil {
		return errors.Persistence("failed to verify email", err)
	}

	return s.tokenRepo.InvalidateToken(ctx, token)
}

func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	profile, err := s.profileRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		// Do not leak whether the address exists.
		return nil
	}

	token := uuid.New().String()
	if err := s.tokenRepo.StoreResetToken(ctx, profile.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return errors.Persistence("failed to store reset token", err)
	}

	if err := s.emailSvc.SendPasswordReset(profile.Email, token); err != nil {
		return errors.Persistence("failed to send reset email", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokenRepo.ValidateResetToken(ctx, token)
	if err != nil {
		return errors.Auth("invalid or expired reset token", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return errors.Validation("contraseña inválida")
	}

	if err := s.profileRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return errors.Persistence("failed to update password", err)
	}

	return s.tokenRepo.InvalidateToken(ctx, token)
}

func (s *Service) issueSession(ctx context.Context, profile *model.Profile) (*model.TokenResponse, error) {
	accessToken, err := s.jwtSvc.GenerateAccessToken(profile)
	if err != nil {
		return nil, errors.Auth("failed to generate token", err)
	}
	refreshToken, err := s.jwtSvc.GenerateRefreshToken(profile)
	if err != nil {
		return nil, errors.Auth("failed to generate token", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RedirectTo:   profile.Role.LandingPath(),
	}, nil
}

func (s *Service) sendVerificationEmail(ctx context.Context, profile *model.Profile) error {
	token := uuid.New().String()
	if err := s.tokenRepo.StoreVerificationToken(ctx, profile.ID, token, time.Now().Add(verifyTokenExpiry)); err != nil {
		return err
	}
	return s.emailSvc.SendVerification(profile.Email, token)
}
