package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtsvc "realty/internal/pkg/jwt"
)

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j := jwtsvc.New("test-secret", time.Hour)

	r := gin.New()
	r.GET("/admin/ping", JWTAuth(j), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	adminToken, err := j.GenerateToken("user-1", "admin")
	require.NoError(t, err)
	viewerToken, err := j.GenerateToken("user-2", "viewer")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
