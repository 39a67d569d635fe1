package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doi-radiologia/portal-api/internal/middleware"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/service/auth"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

// cookieMaxAge keeps the session cookie alive as long as the access
// token; expired tokens fail validation regardless.
const cookieMaxAge = 24 * 60 * 60

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)
		authGroup.GET("/verify-email", h.VerifyEmail)
		authGroup.POST("/resend-verification", h.ResendVerification)
		authGroup.GET("/oauth/start", h.OAuthStart)
		authGroup.GET("/oauth/callback", h.OAuthCallback)
	}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	profile, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, profile)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, tokens.AccessToken)
	httputil.RespondWithSuccess(c, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, tokens.AccessToken)
	httputil.RespondWithSuccess(c, http.StatusOK, tokens)
}

func (h *Handler) Logout(c *gin.Context) {
	if v, ok := c.Get(middleware.ContextClaims); ok {
		if claims, ok := v.(*model.TokenClaims); ok {
			if err := h.service.SignOut(c.Request.Context(), claims); err != nil {
				httputil.RespondWithError(c, err)
				return
			}
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "sesión cerrada"})
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// Same answer whether or not the email exists.
	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"message": "si el correo existe, enviamos un enlace de recuperación",
	})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "contraseña actualizada"})
}

func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httputil.RespondWithError(c, errors.Validation("token requerido"))
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), token); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "correo verificado"})
}

func (h *Handler) ResendVerification(c *gin.Context) {
	var req model.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	if err := h.service.ResendVerification(c.Request.Context(), req.Email); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"message": "si el correo existe, reenviamos el enlace de verificación",
	})
}

func (h *Handler) OAuthStart(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, h.service.OAuthStartURL())
}

// OAuthCallback lands browser redirects from the provider, so failures
// bounce back to the login page instead of returning JSON.
func (h *Handler) OAuthCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.Redirect(http.StatusSeeOther, model.PathLogin+"?error=auth_failed")
		return
	}

	tokens, err := h.service.HandleOAuthCallback(c.Request.Context(), state, code)
	if err != nil {
		c.Redirect(http.StatusSeeOther, model.PathLogin+"?error=auth_failed")
		return
	}

	h.setSessionCookie(c, tokens.AccessToken)
	c.Redirect(http.StatusSeeOther, tokens.RedirectTo)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, cookieMaxAge, "/", "", false, true)
}
