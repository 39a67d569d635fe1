package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/doi-radiologia/portal-api/internal/model"
)

func TestDNIBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	r := gin.New()
	r.POST("/patients", func(c *gin.Context) {
		var req model.CreatePatientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"dni": req.DNI})
	})

	cases := []struct {
		name string
		dni  string
		want int
	}{
		{"seven digits", "3012345", http.StatusOK},
		{"eight digits", "30123456", http.StatusOK},
		{"too short", "301234", http.StatusBadRequest},
		{"too long", "301234567", http.StatusBadRequest},
		{"letters", "3012345a", http.StatusBadRequest},
		{"empty", "", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"nombre":"Ana","apellido":"García","dni":"` + tc.dni + `"}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
		})
	}
}
