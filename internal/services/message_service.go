package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/repository"
)

var (
	ErrMessageEmpty       = errors.New("message cannot be empty")
	ErrInvalidMessageType = errors.New("invalid message type")
)

// MessageService handles the per-task message threads
type MessageService struct {
	messageRepo repository.MessageRepository
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// AppendMessageInput represents a message posted to a task thread
type AppendMessageInput struct {
	TaskID uint64
	Sender string
	Text   string
	Type   models.MessageType
}

// Append stores a message. System messages are stored with the sender's
// attribution prepended. The task is not checked for existence here.
func (s *MessageService) Append(input AppendMessageInput) (*models.Message, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrMessageEmpty
	}

	messageType := input.Type
	if messageType == "" {
		messageType = models.MessageTypeUser
	}

	text := input.Text
	switch messageType {
	case models.MessageTypeUser:
	case models.MessageTypeSystem:
		text = models.SystemText(input.Sender, text)
	default:
		return nil, ErrInvalidMessageType
	}

	message := &models.Message{
		TaskID:      input.TaskID,
		Sender:      input.Sender,
		Body:        text,
		MessageType: messageType,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// ListForTask returns the full thread of a task, oldest first
func (s *MessageService) ListForTask(taskID uint64) ([]models.Message, error) {
	messages, err := s.messageRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
