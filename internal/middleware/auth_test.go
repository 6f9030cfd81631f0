package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository/memory"
	userService "github.com/medhq/hms-api/internal/service/user"
	"github.com/medhq/hms-api/pkg/auth"
	"github.com/medhq/hms-api/pkg/security"
)

type staticVerifier struct {
	claims map[string]*auth.Claims
}

func (v *staticVerifier) Verify(_ context.Context, token string) (*auth.Claims, error) {
	if claims, ok := v.claims[token]; ok {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func newTestAuth(t *testing.T, apiKeys *security.APIKeyVerifier) *AuthMiddleware {
	t.Helper()
	verifier := &staticVerifier{claims: map[string]*auth.Claims{
		"doc-token": {
			Subject: "auth0|doc1",
			Email:   "doc@example.com",
			Role:    "DOCTOR",
		},
	}}
	users := userService.NewService(memory.NewStore().Users())
	return NewAuthMiddleware(verifier, users, apiKeys, time.Minute)
}

func newProtectedRouter(auth *AuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{auth.Authenticate()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, user)
	})
	engine.GET("/protected", handlers...)
	return engine
}

func get(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateMissingHeader(t *testing.T) {
	engine := newProtectedRouter(newTestAuth(t, nil))
	rec := get(engine, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":true`)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	engine := newProtectedRouter(newTestAuth(t, nil))
	rec := get(engine, "Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateProvisionsUser(t *testing.T) {
	engine := newProtectedRouter(newTestAuth(t, nil))

	rec := get(engine, "Bearer doc-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"auth0|doc1"`)
	assert.Contains(t, rec.Body.String(), `"DOCTOR"`)

	// Second request is served from the role cache.
	rec = get(engine, "Bearer doc-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateUnsupportedScheme(t *testing.T) {
	engine := newProtectedRouter(newTestAuth(t, nil))
	rec := get(engine, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyGrantsAdmin(t *testing.T) {
	hash, err := security.HashKey("svc-key")
	require.NoError(t, err)
	auth := newTestAuth(t, security.NewAPIKeyVerifier([]string{hash}))
	engine := newProtectedRouter(auth)

	rec := get(engine, "ApiKey svc-key")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ADMIN"`)

	rec = get(engine, "ApiKey wrong-key")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyWithoutConfiguredKeys(t *testing.T) {
	engine := newProtectedRouter(newTestAuth(t, nil))
	rec := get(engine, "ApiKey svc-key")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	auth := newTestAuth(t, nil)

	adminOnly := newProtectedRouter(auth, auth.RequireRole(model.UserRoleAdmin))
	rec := get(adminOnly, "Bearer doc-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient role")

	doctorAllowed := newProtectedRouter(auth, auth.RequireRole(model.UserRoleAdmin, model.UserRoleDoctor))
	rec = get(doctorAllowed, "Bearer doc-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}
