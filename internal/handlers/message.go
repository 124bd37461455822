package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-task-tracker/internal/dto"
	apierrors "github.com/yukikurage/team-task-tracker/internal/errors"
	"github.com/yukikurage/team-task-tracker/internal/middleware"
	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// MessageHandler serves task chat threads.
type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ListMessages returns the thread of the task loaded by RequireTaskAccess
func (h *MessageHandler) ListMessages(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"messages": dto.ToMessageDTOs(messages)})
}

// PostMessage appends a chat message from the current user
func (h *MessageHandler) PostMessage(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	username, _ := middleware.GetUsername(c)

	type PostMessageRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.Append(services.AppendMessageInput{
		TaskID: task.ID,
		Sender: username,
		Text:   req.Message,
		Type:   models.MessageTypeUser,
	})
	if err != nil {
		respondError(c, "post message", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message))
}
