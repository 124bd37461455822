package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-tracker/internal/dto"
	"github.com/yukikurage/team-task-tracker/internal/middleware"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// TeamHandler serves the manager's team overview.
type TeamHandler struct {
	taskService *services.TaskService
}

func NewTeamHandler(taskService *services.TaskService) *TeamHandler {
	return &TeamHandler{taskService: taskService}
}

// GetMemberProfile returns the statistics and tasks of one user
func (h *TeamHandler) GetMemberProfile(c *gin.Context) {
	role, _ := middleware.GetRole(c)

	profile, err := h.taskService.MemberProfile(role, c.Param("username"))
	if err != nil {
		respondError(c, "member profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberProfileDTO(*profile))
}
