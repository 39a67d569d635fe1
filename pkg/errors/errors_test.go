package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("x").StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict("x").StatusCode())
	assert.Equal(t, http.StatusUnauthorized, Auth("x", nil).StatusCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("x").StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound("thing", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Persistence("x", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Upload("x", nil).StatusCode())
}

func TestCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Conflict("already there"))
	assert.Equal(t, ErrConflict, Code(err))
	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrNotFound))
}

func TestCodeOnPlainError(t *testing.T) {
	assert.Equal(t, ErrorCode(0), Code(fmt.Errorf("plain")))
	assert.Equal(t, ErrorCode(0), Code(nil))
}

func TestErrorMessage(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Persistence("no se pudo guardar", cause)
	assert.Contains(t, err.Error(), "no se pudo guardar")
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, cause)
}
