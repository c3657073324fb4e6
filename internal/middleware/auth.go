package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"entregas/internal/domain"
	"entregas/internal/service"
)

const (
	ContextKeyTenant = "empresa"
	ContextKeyClaims = "claims"
)

// OptionalAuth validates a bearer token when one is sent and injects its
// tenant into the context. Requests without an Authorization header pass
// through unchanged; a malformed or invalid token is rejected with 401.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyTenant, claims.Tenant)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetTenant returns the tenant carried by the request token, if any.
func GetTenant(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextKeyTenant)
	if !exists {
		return "", false
	}
	tenant, ok := val.(string)
	return tenant, ok && tenant != ""
}

// ResolveTenant picks the tenant a request acts on. The token tenant wins;
// an explicit empresa naming another tenant is ErrForbidden. Without a token
// the requested value is used as is, possibly empty.
func ResolveTenant(c *gin.Context, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	tenant, ok := GetTenant(c)
	if !ok {
		return requested, nil
	}
	if requested != "" && requested != tenant {
		return "", domain.ErrForbidden
	}
	return tenant, nil
}
