package study

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/doi-radiologia/portal-api/internal/middleware"
	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/service/study"
	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

type Handler struct {
	service *study.Service
}

func NewHandler(service *study.Service) *Handler {
	return &Handler{service: service}
}

// RegisterStaffRoutes mounts the upload and catalog endpoints for
// admin/empleado sessions.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	studies := r.Group("/studies")
	{
		studies.POST("", h.UploadStudy)
		studies.GET("", h.ListStudies)
		studies.DELETE("/:id", h.DeleteStudy)
	}
	r.GET("/study-types", h.ListStudyTypes)
}

// RegisterClientRoutes mounts the DNI-scoped study list for any
// signed-in profile.
func (h *Handler) RegisterClientRoutes(r *gin.RouterGroup) {
	r.GET("/studies/mine", h.ListMyStudies)
}

// RegisterFileRoutes mounts the image download endpoint; image_url
// values in study responses point here.
func (h *Handler) RegisterFileRoutes(r *gin.RouterGroup) {
	r.GET("/files/:id", h.DownloadImage)
}

// UploadStudy reads the multipart form: metadata fields plus one or
// more files under the "images" key. Images are stored one by one; an
// upload that fails midway leaves the study with the images stored so
// far.
func (h *Handler) UploadStudy(c *gin.Context) {
	var req model.CreateStudyRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, errors.Validation(err.Error()))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("formulario multipart inválido"))
		return
	}

	files := form.File["images"]
	images := make([]study.ImageFile, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			httputil.RespondWithError(c, errors.Upload("no se pudo leer el archivo "+fh.Filename, err))
			return
		}
		opened = append(opened, f)
		images = append(images, study.ImageFile{Name: fh.Filename, Reader: f})
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httputil.RespondWithError(c, errors.Auth("sesión no encontrada", nil))
		return
	}

	created, err := h.service.Upload(c.Request.Context(), &req, images, userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, created)
}

func (h *Handler) ListStudies(c *gin.Context) {
	studies, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, studies)
}

// ListMyStudies resolves the caller's DNI from their profile. Profiles
// without a DNI (OAuth sign-ups) get an empty list.
func (h *Handler) ListMyStudies(c *gin.Context) {
	prof, ok := middleware.CurrentProfile(c)
	if !ok {
		httputil.RespondWithError(c, errors.Auth("sesión no encontrada", nil))
		return
	}

	studies, err := h.service.ListForPatient(c.Request.Context(), prof.DNI)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, studies)
}

func (h *Handler) DeleteStudy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.Validation("id inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "estudio eliminado"})
}

func (h *Handler) ListStudyTypes(c *gin.Context) {
	httputil.RespondWithSuccess(c, http.StatusOK, model.StudyTypes)
}

func (h *Handler) DownloadImage(c *gin.Context) {
	obj, err := h.service.OpenImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer obj.Reader.Close()

	c.Header("Content-Disposition", `inline; filename="`+obj.Name+`"`)
	c.DataFromReader(http.StatusOK, obj.Length, "application/octet-stream", obj.Reader, nil)
}
