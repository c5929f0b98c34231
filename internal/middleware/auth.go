package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr/taskmanager-api/internal/constants"
	apierrors "github.com/taskmgr/taskmanager-api/internal/errors"
	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/services"
)

// RequireAuth resolves the bearer token from the Authorization header
// ("Token <value>") and stores the authenticated user in the context.
// Requests with a missing, malformed, or revoked token are rejected.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(header, constants.AuthScheme+" ") {
			apierrors.Unauthorized(c, "Invalid authorization header format. Use: Token <value>")
			c.Abort()
			return
		}

		key := strings.TrimPrefix(header, constants.AuthScheme+" ")
		user, err := authService.ResolveToken(key)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or revoked token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
