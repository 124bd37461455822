package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-tracker/internal/constants"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, _ := session.Get(constants.SessionKeyUsername).(string)
		roleValue, _ := session.Get(constants.SessionKeyRole).(string)

		if username == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		role, err := models.ParseRole(roleValue)
		if err != nil {
			apierrors.Unauthorized(c, "Session is no longer valid")
			c.Abort()
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUsername, username)
		c.Set(constants.ContextKeyRole, role)
		c.Next()
	}
}

// RequireRole rejects users whose role fails the permission predicate,
// e.g. RequireRole(models.Role.MayManageUsers)
func RequireRole(permitted func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !permitted(role) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, ok := c.Get(constants.ContextKeyUsername)
	if !ok {
		return "", false
	}
	name, ok := username.(string)
	return name, ok && name != ""
}

// GetRole retrieves the current role from context
func GetRole(c *gin.Context) (models.Role, bool) {
	role, ok := c.Get(constants.ContextKeyRole)
	if !ok {
		return "", false
	}
	r, ok := role.(models.Role)
	return r, ok
}
