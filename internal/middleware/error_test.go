package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/doi-radiologia/portal-api/pkg/errors"
	"github.com/doi-radiologia/portal-api/pkg/httputil"
)

// A handler that attaches an error without writing gets its response
// from the middleware, with the error's own status.
func TestErrorHandlerRespondsForUnwrittenErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.Conflict("ya existe"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ya existe")
}

// A handler that already answered through the envelope keeps its
// response; the middleware only logs the attached error.
func TestErrorHandlerDoesNotDoubleWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/denied", func(c *gin.Context) {
		httputil.RespondWithError(c, errors.Forbidden("no puedes cambiar tu propio rol"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/denied", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
	assert.Contains(t, w.Body.String(), "no puedes cambiar tu propio rol")
}

func TestErrorHandlerPlainErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/oops", func(c *gin.Context) {
		_ = c.Error(assertionError{})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/oops", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type assertionError struct{}

func (assertionError) Error() string { return "plain failure" }
