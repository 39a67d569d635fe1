package portal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/doi-radiologia/portal-api/internal/middleware"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/service/auth"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

// Handler serves the dashboard shells and the session-restore endpoint
// the frontend calls on page load.
type Handler struct {
	authSvc *auth.Service
	authMW  *middleware.AuthMiddleware
}

func NewHandler(authSvc *auth.Service, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{authSvc: authSvc, authMW: authMW}
}

// RegisterRoutes mounts the three role dashboards behind the gate.
// Browser navigations that fail the gate get 303 redirects, not JSON.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	portal := r.Group("/portal")
	{
		portal.GET("/admin", h.authMW.GateDashboard(model.PathAdmin), h.dashboard("admin"))
		portal.GET("/empleado", h.authMW.GateDashboard(model.PathEmpleado), h.dashboard("empleado"))
		portal.GET("/cliente", h.authMW.GateDashboard(model.PathCliente), h.dashboard("cliente"))
	}
}

// RegisterSessionRoute mounts session restore; the group must carry
// Authenticate.
func (h *Handler) RegisterSessionRoute(r *gin.RouterGroup) {
	r.GET("/portal/session", h.Session)
}

func (h *Handler) dashboard(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		prof, ok := middleware.CurrentProfile(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, model.PathLogin)
			return
		}

		httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
			"dashboard": name,
			"profile":   prof,
		})
	}
}

// Session resolves the signed-in user's profile and landing path. A
// token whose profile row is missing still gets a session, routed to
// the cliente dashboard.
func (h *Handler) Session(c *gin.Context) {
	v, ok := c.Get(middleware.ContextClaims)
	if !ok {
		httputil.RespondWithError(c, errors.Auth("sesión no encontrada", nil))
		return
	}

	claims, ok := v.(*model.TokenClaims)
	if !ok {
		httputil.RespondWithError(c, errors.Auth("sesión no encontrada", nil))
		return
	}

	prof, redirectTo, err := h.authSvc.RestoreSession(c.Request.Context(), claims)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"profile":     prof,
		"redirect_to": redirectTo,
	})
}
