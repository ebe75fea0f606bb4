package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
	"store_rating_v1/internal/service"
	"store_rating_v1/pkg/credential"
)

// ==================== Authenticator ====================

// Authenticator resolves a bearer token to its claims and the current user record.
// Errors wrapping service.ErrUnauthenticated are answered with 401, anything else with 500.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*credential.Claims, *model.User, error)
}

// Context keys
const (
	ContextKeyUser   = "current_user"
	ContextKeyClaims = "claims"
)

// ==================== Gin middleware ====================

// JWTAuth requires "Authorization: Bearer <token>" and loads the user behind it.
func JWTAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header must be Bearer {token}")
			return
		}

		claims, user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				abortWithError(c, http.StatusUnauthorized, err.Error())
				return
			}
			Logger(c).WithError(err).Error("authenticate request")
			abortWithError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)
		setLogUser(c, user.ID)

		c.Next()
	}
}

// RequireRole lets the request through only when the stored user's role is allowed.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWithError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		if !user.Role.In(roles...) {
			abortWithError(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// ==================== helpers ====================

// CurrentUser authenticated user, nil outside JWTAuth
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentClaims claims of the presented token
func CurrentClaims(c *gin.Context) *credential.Claims {
	if v, exists := c.Get(ContextKeyClaims); exists {
		if claims, ok := v.(*credential.Claims); ok {
			return claims
		}
	}
	return nil
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    status,
		Message: message,
	})
}
