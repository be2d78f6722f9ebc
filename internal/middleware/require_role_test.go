package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// contexte pré-authentifié avec un rôle arbitraire, comme après AuthRequired
func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	}
}

func roleTestRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/admin", withRole(role), RequireAdmin, ok)
	r.GET("/farmer", withRole(role), RequireFarmer, ok)
	return r
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"farmer", http.StatusForbidden},
		{"user", http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		roleTestRouter(tt.role).ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "rôle %q", tt.role)
	}
}

func TestRequireFarmer(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"farmer", http.StatusOK},
		{"admin", http.StatusForbidden},
		{"user", http.StatusForbidden},
		{"n'importe quoi", http.StatusForbidden},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/farmer", nil)
		roleTestRouter(tt.role).ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "rôle %q", tt.role)
	}
}
