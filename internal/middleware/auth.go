package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/medhq/hms-api/internal/model"
	userService "github.com/medhq/hms-api/internal/service/user"
	"github.com/medhq/hms-api/pkg/auth"
	"github.com/medhq/hms-api/pkg/httputil"
	"github.com/medhq/hms-api/pkg/security"
)

const (
	// ContextUser holds the resolved *model.User for the request.
	ContextUser = "user"

	bearerScheme = "Bearer"
	apiKeyScheme = "ApiKey"
)

type AuthMiddleware struct {
	verifier auth.Verifier
	users    *userService.Service
	apiKeys  *security.APIKeyVerifier
	// cache maps subject id to *model.User so the role lookup does
	// not hit the store on every request.
	cache *gocache.Cache
}

func NewAuthMiddleware(verifier auth.Verifier, users *userService.Service, apiKeys *security.APIKeyVerifier, cacheTTL time.Duration) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		apiKeys:  apiKeys,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Authenticate verifies the bearer credential with the identity
// provider and resolves the subject to a local user. Machine callers
// may present an ApiKey instead and act with ADMIN scope.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 {
			unauthorized(c, "invalid authorization format")
			return
		}

		switch parts[0] {
		case bearerScheme:
			m.authenticateBearer(c, parts[1])
		case apiKeyScheme:
			m.authenticateAPIKey(c, parts[1])
		default:
			unauthorized(c, "unsupported authorization scheme")
		}
	}
}

func (m *AuthMiddleware) authenticateBearer(c *gin.Context, token string) {
	claims, err := m.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		unauthorized(c, "invalid token")
		return
	}

	if cached, ok := m.cache.Get(claims.Subject); ok {
		c.Set(ContextUser, cached.(*model.User))
		c.Next()
		return
	}

	user, err := m.users.EnsureUser(c.Request.Context(), claims)
	if err != nil {
		unauthorized(c, "failed to resolve user")
		return
	}

	m.cache.SetDefault(claims.Subject, user)
	c.Set(ContextUser, user)
	c.Next()
}

func (m *AuthMiddleware) authenticateAPIKey(c *gin.Context, key string) {
	if m.apiKeys == nil || m.apiKeys.Verify(key) != nil {
		unauthorized(c, "invalid API key")
		return
	}
	c.Set(ContextUser, &model.User{
		ID:   "service",
		Role: model.UserRoleAdmin,
	})
	c.Next()
}

// RequireRole rejects callers whose resolved role is not in the set.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUser)
		if !exists {
			unauthorized(c, "not authenticated")
			return
		}
		user := value.(*model.User)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httputil.ErrorResponse{
			Error:   true,
			Message: "insufficient role",
		})
	}
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
