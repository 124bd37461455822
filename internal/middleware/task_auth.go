package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/team-task-tracker/internal/constants"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/repository"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// RequireTaskAccess loads the task named by the :id parameter and checks that
// the current user may see it: bosses see every task, members only the tasks
// they created or are assigned to
func RequireTaskAccess(taskService *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		username, ok := GetUsername(c)
		role, roleOK := GetRole(c)
		if !ok || !roleOK {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		task, err := taskService.GetTask(taskID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				apierrors.NotFound(c, "Task not found")
			case errors.Is(err, repository.ErrStoreUnavailable):
				log.WithError(err).WithField("task_id", taskID).Error("failed to load task")
				apierrors.StoreUnavailable(c)
			default:
				log.WithError(err).WithField("task_id", taskID).Error("failed to load task")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking task existence
		if !role.MayViewTask(task, username) {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTaskAccess
func GetTask(c *gin.Context) (*models.Task, bool) {
	value, ok := c.Get(constants.ContextKeyTask)
	if !ok {
		return nil, false
	}
	task, ok := value.(*models.Task)
	return task, ok
}
