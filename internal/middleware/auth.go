package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/service/auth"
	"github.com/doi-radiologia/portal-api/internal/service/profile"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

const (
	ContextUserID  = "userID"
	ContextEmail   = "userEmail"
	ContextClaims  = "tokenClaims"
	ContextProfile = "profile"

	// SessionCookie lets browser navigations to the portal shells carry
	// the session without an Authorization header.
	SessionCookie = "access_token"
)

type AuthMiddleware struct {
	authSvc    *auth.Service
	profileSvc *profile.Service
}

func NewAuthMiddleware(authSvc *auth.Service, profileSvc *profile.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc, profileSvc: profileSvc}
}

// Authenticate verifies the bearer token and stores the claims in the
// request context. JSON 401 on failure.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		claims, err := m.authSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httputil.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole re-resolves the caller's profile on every request (no role
// caching across requests) and rejects roles outside the allowed set.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		prof, ok := m.resolveProfile(c)
		if !ok {
			c.JSON(http.StatusForbidden, httputil.NewErrorResponse("profile not found"))
			c.Abort()
			return
		}

		for _, r := range roles {
			if prof.Role == r {
				c.Set(ContextProfile, prof)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, httputil.NewErrorResponse("permission denied"))
		c.Abort()
	}
}

// RequireProfile only demands that a profile exists (any role), as the
// client dashboard does.
func (m *AuthMiddleware) RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		prof, ok := m.resolveProfile(c)
		if !ok {
			c.JSON(http.StatusForbidden, httputil.NewErrorResponse("profile not found"))
			c.Abort()
			return
		}
		c.Set(ContextProfile, prof)
		c.Next()
	}
}

// GateDashboard protects a portal shell with navigation semantics:
// unauthenticated visitors are redirected to the login page, visitors
// whose role cannot enter the dashboard are redirected home.
func (m *AuthMiddleware) GateDashboard(dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Redirect(http.StatusSeeOther, model.PathLogin)
			c.Abort()
			return
		}

		claims, err := m.authSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusSeeOther, model.PathLogin)
			c.Abort()
			return
		}

		prof, err := m.profileSvc.Get(c.Request.Context(), claims.UserID)
		if err != nil || !prof.Role.CanAccess(dashboardPath) {
			c.Redirect(http.StatusSeeOther, model.PathHome)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Set(ContextProfile, prof)
		c.Next()
	}
}

func (m *AuthMiddleware) resolveProfile(c *gin.Context) (*model.Profile, bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return nil, false
	}
	prof, err := m.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		return nil, false
	}
	return prof, true
}

// CurrentUserID returns the authenticated identity set by Authenticate.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentProfile returns the profile set by a role gate.
func CurrentProfile(c *gin.Context) (*model.Profile, bool) {
	v, ok := c.Get(ContextProfile)
	if !ok {
		return nil, false
	}
	prof, ok := v.(*model.Profile)
	return prof, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if parts := strings.Split(header, " "); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
