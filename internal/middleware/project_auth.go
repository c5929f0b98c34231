package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr/taskmanager-api/internal/constants"
	"github.com/taskmgr/taskmanager-api/internal/database"
	apierrors "github.com/taskmgr/taskmanager-api/internal/errors"
	"github.com/taskmgr/taskmanager-api/internal/models"
	"github.com/taskmgr/taskmanager-api/internal/permissions"
)

// RequireProjectAccess checks that the project in the URL exists and is
// visible to the user (owner or member). Non-visible projects answer 404,
// indistinguishable from absent ones.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().
			Preload("Owner").
			Preload("OtherUsers").
			First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if !permissions.Authorize(user, permissions.ActionRead, project) {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireProjectOwner checks that the user owns the project loaded by
// RequireProjectAccess. Mutating project routes stack this on top of the
// access check, so a visible-but-not-owned project answers 403.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		project, exists := GetProject(c)
		if !exists {
			apierrors.InternalError(c, "Project not loaded")
			c.Abort()
			return
		}

		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !permissions.Authorize(user, permissions.ActionWrite, project) {
			apierrors.Forbidden(c, "Only the project owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the guarded project from context
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}

	project, ok := value.(models.Project)
	return project, ok
}
