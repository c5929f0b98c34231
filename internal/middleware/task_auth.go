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

// RequireTaskAccess checks that the task in the URL belongs to the guarded
// project and that the user may access it. Task access belongs to the task's
// creator and the project's members only; the project owner has no implicit
// grant, so denial answers 404 like any other invisible object.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, exists := GetProject(c)
		if !exists {
			apierrors.InternalError(c, "Project not loaded")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Project.OtherUsers").
			Preload("CreatedBy").
			Preload("AssignedTo").
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if task.ProjectID != project.ID {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if !permissions.Authorize(user, actionForMethod(c.Request.Method), task) {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the guarded task from context
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := value.(models.Task)
	return task, ok
}

func actionForMethod(method string) permissions.Action {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return permissions.ActionRead
	}
	return permissions.ActionWrite
}
