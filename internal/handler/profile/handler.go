package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/middleware"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/service/profile"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

type Handler struct {
	service *profile.Service
}

func NewHandler(service *profile.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user administration endpoints. The group is
// expected to be admin-gated by the router.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("", h.ListProfiles)
		profiles.GET("/:id", h.GetProfile)
		profiles.PUT("/:id/role", h.UpdateRole)
	}
}

func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, profiles)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("id inválido"))
		return
	}

	prof, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, prof)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("id inválido"))
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Auth("sesión no encontrada", nil))
		return
	}

	if err := h.service.UpdateRole(c.Request.Context(), actorID, targetID, model.Role(req.Role)); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "rol actualizado"})
}
