package models

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending        TaskStatus = "pending"
	TaskStatusInProgress     TaskStatus = "in_progress"
	TaskStatusCompleted      TaskStatus = "completed"
	TaskStatusFollowupNeeded TaskStatus = "followup_needed"
)

// TaskStatuses lists every status in the order the status selector shows them.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusFollowupNeeded,
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseTaskStatus converts user input into a TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(value)
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q", value)
	}
	return status, nil
}

type Task struct {
	ID          uint64     `gorm:"column:task_id;primarykey" json:"task_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	AssignedBy  string     `gorm:"type:varchar(255);not null;index" json:"assigned_by"`
	DueDate     time.Time  `gorm:"type:date;not null" json:"due_date"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`

	// Filled only by listing queries that select it.
	MessageCount int64 `gorm:"->;-:migration" json:"message_count"`

	// Relations
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;references:ID" json:"assignments,omitempty"`
	Messages    []Message        `gorm:"foreignKey:TaskID;references:ID" json:"-"`
}

// Assignees returns the assigned usernames in the order they were first given.
func (t *Task) Assignees() []string {
	names := make([]string, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		names = append(names, a.AssignedTo)
	}
	return names
}

// IsAssignedTo reports whether username is among the task's assignees.
func (t *Task) IsAssignedTo(username string) bool {
	for _, a := range t.Assignments {
		if a.AssignedTo == username {
			return true
		}
	}
	return false
}

// TaskStats holds per-status counts of the tasks assigned to one user.
type TaskStats struct {
	Total          int64 `json:"total"`
	Completed      int64 `json:"completed"`
	InProgress     int64 `json:"in_progress"`
	Pending        int64 `json:"pending"`
	FollowupNeeded int64 `json:"followup_needed"`
}

// DateOnly truncates t to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
