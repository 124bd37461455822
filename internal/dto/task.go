package dto

import (
	"time"

	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// TaskViewDTO represents a task in list responses
type TaskViewDTO struct {
	TaskID       uint64            `json:"task_id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	AssignedBy   string            `json:"assigned_by"`
	AssignedTo   []string          `json:"assigned_to"`
	DueDate      string            `json:"due_date"`
	Status       models.TaskStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	MessageCount int64             `json:"message_count"`
}

// MessageDTO represents one entry of a task thread
type MessageDTO struct {
	MessageID   uint64             `json:"message_id"`
	Sender      string             `json:"sender"`
	Message     string             `json:"message"`
	Timestamp   time.Time          `json:"timestamp"`
	MessageType models.MessageType `json:"message_type"`
}

// TaskDetailDTO represents a task with its full thread
type TaskDetailDTO struct {
	TaskViewDTO
	Messages []MessageDTO `json:"messages"`
}

// TaskListResponse represents the tasks dashboard
type TaskListResponse struct {
	Tasks []TaskViewDTO `json:"tasks"`
}

// MemberProfileDTO represents the team overview of one member
type MemberProfileDTO struct {
	Username string           `json:"username"`
	Stats    models.TaskStats `json:"stats"`
	Tasks    []TaskViewDTO    `json:"tasks"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToTaskViewDTO converts a Task model to TaskViewDTO
func ToTaskViewDTO(task models.Task) TaskViewDTO {
	return TaskViewDTO{
		TaskID:       task.ID,
		Title:        task.Title,
		Description:  task.Description,
		AssignedBy:   task.AssignedBy,
		AssignedTo:   task.Assignees(),
		DueDate:      task.DueDate.Format(time.DateOnly),
		Status:       task.Status,
		CreatedAt:    task.CreatedAt,
		MessageCount: task.MessageCount,
	}
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(message models.Message) MessageDTO {
	return MessageDTO{
		MessageID:   message.ID,
		Sender:      message.Sender,
		Message:     message.Body,
		Timestamp:   message.Timestamp,
		MessageType: message.MessageType,
	}
}

// ToMessageDTOs converts a thread
func ToMessageDTOs(messages []models.Message) []MessageDTO {
	items := make([]MessageDTO, len(messages))
	for i, m := range messages {
		items[i] = ToMessageDTO(m)
	}
	return items
}

// ToTaskDetailDTO converts a task and its thread; the message count is taken from the thread
func ToTaskDetailDTO(task models.Task, messages []models.Message) TaskDetailDTO {
	view := ToTaskViewDTO(task)
	view.MessageCount = int64(len(messages))
	return TaskDetailDTO{
		TaskViewDTO: view,
		Messages:    ToMessageDTOs(messages),
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task) TaskListResponse {
	items := make([]TaskViewDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskViewDTO(task)
	}
	return TaskListResponse{Tasks: items}
}

// ToMemberProfileDTO converts a member profile
func ToMemberProfileDTO(profile services.MemberProfile) MemberProfileDTO {
	return MemberProfileDTO{
		Username: profile.Username,
		Stats:    profile.Stats,
		Tasks:    ToTaskListResponse(profile.Tasks).Tasks,
	}
}
