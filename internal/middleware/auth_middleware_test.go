package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/kerem/schoolhub/internal/app/auth"
	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/auth"
)

func newTestMiddleware() (*AuthMiddleware, *auth.JWTService) {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "schoolhub.test",
	})
	return NewAuthMiddleware(jwtService, appauth.Allowed), jwtService
}

func newTestRouter(m *AuthMiddleware, required ...models.Role) *gin.Engine {
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), m.RequireRoles(required...), func(c *gin.Context) {
		id, _ := AdminIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"adminId": id})
	})
	return router
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role models.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.Admin{ID: 42, Username: "super", Role: role})
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	m, _ := newTestMiddleware()
	router := newTestRouter(m)

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	m, _ := newTestMiddleware()
	router := newTestRouter(m)

	w := doRequest(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey: "test-secret",
		TokenExp:  -time.Minute,
	})
	token, _, err := expired.GenerateToken(&models.Admin{ID: 1, Username: "super", Role: models.RoleSuper})
	require.NoError(t, err)

	m, _ := newTestMiddleware()
	router := newTestRouter(m)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestRequireRolesSuperOnly(t *testing.T) {
	m, jwtService := newTestMiddleware()
	router := newTestRouter(m, models.RoleSuper)

	w := doRequest(router, "Bearer "+issueToken(t, jwtService, models.RoleSuper))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")

	w = doRequest(router, "Bearer "+issueToken(t, jwtService, models.RoleSub))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAnyAdmin(t *testing.T) {
	m, jwtService := newTestMiddleware()
	router := newTestRouter(m)

	for _, role := range []models.Role{models.RoleSuper, models.RoleSub} {
		w := doRequest(router, "Bearer "+issueToken(t, jwtService, role))
		assert.Equal(t, http.StatusOK, w.Code, string(role))
	}
}

func TestRequireRolesRecorderSet(t *testing.T) {
	m, jwtService := newTestMiddleware()
	router := newTestRouter(m, models.RoleSuper, models.RoleSub)

	w := doRequest(router, "Bearer "+issueToken(t, jwtService, models.RoleSub))
	assert.Equal(t, http.StatusOK, w.Code)
}
