package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/repository"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// respondError maps service errors onto API error responses. Unexpected
// failures are logged with the action that produced them.
func respondError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.DuplicateUsername(c)
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrUsernameTooLong),
		errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrNoAssignees),
		errors.Is(err, services.ErrDueDateInPast),
		errors.Is(err, services.ErrInvalidTaskAssignee),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrMessageEmpty),
		errors.Is(err, services.ErrInvalidMessageType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrNotPermitted):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		log.WithError(err).WithField("action", action).Error("task store unavailable")
		apierrors.StoreUnavailable(c)
	default:
		log.WithError(err).WithField("action", action).Error("request failed")
		apierrors.InternalError(c, "")
	}
}
