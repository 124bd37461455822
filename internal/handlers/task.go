package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/middleware"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

type TaskHandler struct {
	taskService    *services.TaskService
	messageService *services.MessageService
}

func NewTaskHandler(taskService *services.TaskService, messageService *services.MessageService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		messageService: messageService,
	}
}

// ListTasks returns the tasks dashboard of the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	role, roleOK := middleware.GetRole(c)
	if !ok || !roleOK {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasksForUser(username, role)
	if err != nil {
		respondError(c, "list tasks", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks))
}

// CreateTask creates a task assigned to one or more users
func (h *TaskHandler) CreateTask(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string   `json:"title" binding:"required,max=255"`
		Description string   `json:"description" binding:"required"`
		AssignedTo  []string `json:"assigned_to" binding:"required,min=1"`
		DueDate     string   `json:"due_date" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "due_date must be formatted as YYYY-MM-DD")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   username,
		Assignees:   req.AssignedTo,
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(c, "create task", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskViewDTO(*task))
}

// SelfAssignTask creates a task for the current user only
func (h *TaskHandler) SelfAssignTask(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SelfAssignRequest struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description" binding:"required"`
		DueDate     string `json:"due_date" binding:"required"`
	}

	var req SelfAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, "due_date must be formatted as YYYY-MM-DD")
		return
	}

	task, err := h.taskService.SelfAssignTask(services.SelfAssignInput{
		Username:    username,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(c, "self-assign task", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskViewDTO(*task))
}

// GetTask returns a task with its thread
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	messages, err := h.messageService.ListForTask(task.ID)
	if err != nil {
		respondError(c, "list messages", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*task, messages))
}

// UpdateStatus changes the status of a task and logs the change in its thread
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	username, _ := middleware.GetUsername(c)
	role, _ := middleware.GetRole(c)

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := models.ParseTaskStatus(req.Status)
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid status", gin.H{"allowed": models.TaskStatuses})
		return
	}

	updated, err := h.taskService.ChangeStatus(services.ChangeStatusInput{
		TaskID: task.ID,
		Actor:  username,
		Role:   role,
		Status: status,
	})
	if err != nil {
		respondError(c, "change status", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskViewDTO(*updated))
}
