package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/service/content"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

type Handler struct {
	service *content.Service
}

func NewHandler(service *content.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the landing-page content endpoint. It
// never fails; missing or unreadable entries come back as defaults.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/content/home", h.HomeContent)
}

// RegisterAdminRoutes mounts the content editor; the router gates the
// group to admins.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	items := r.Group("/content")
	{
		items.GET("", h.ListContent)
		items.POST("", h.CreateContent)
		items.PUT("/:id", h.UpdateContent)
		items.DELETE("/:id", h.DeleteContent)
	}
}

func (h *Handler) HomeContent(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, h.service.HomeContent(c.Request.Context()))
}

func (h *Handler) ListContent(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, items)
}

func (h *Handler) CreateContent(c *gin.Context) {
	var req model.ContentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, item)
}

func (h *Handler) UpdateContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("id inválido"))
		return
	}

	var req model.ContentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, item)
}

func (h *Handler) DeleteContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("id inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "contenido eliminado"})
}
