package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/team-task-tracker/internal/models"
)

var (
	// ErrStoreUnavailable wraps every failure reported by the database engine.
	ErrStoreUnavailable = errors.New("repository: store unavailable")
	// ErrDuplicateUsername is returned when inserting a username that already exists.
	ErrDuplicateUsername = errors.New("repository: duplicate username")
	// ErrUserNotFound is returned when no user has the requested username.
	ErrUserNotFound = errors.New("repository: user not found")
	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = errors.New("repository: task not found")
	// ErrNoAssignees is returned when a task would be created without assignees.
	ErrNoAssignees = errors.New("repository: task needs at least one assignee")
)

// UserRepository defines the interface for credential data access
type UserRepository interface {
	// Create inserts a new user
	Create(user *models.User) error

	// CreateIfAbsent inserts user unless the username exists, reporting whether it inserted
	CreateIfAbsent(user *models.User) (bool, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns every user ordered by username
	List() ([]models.User, error)

	// CountExisting counts how many of the given usernames are registered
	CountExisting(usernames []string) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a pending task, its assignments and any notes in one transaction
	Create(task *models.Task, assignees []string, notes ...*models.Message) error

	// FindByID finds a task with its assignments
	FindByID(id uint64) (*models.Task, error)

	// SetStatus overwrites the status of a task
	SetStatus(id uint64, status models.TaskStatus) error

	// TransitionStatus changes the status and records the note built from the
	// previous status in the same transaction, returning the previous status
	TransitionStatus(id uint64, status models.TaskStatus, note func(from models.TaskStatus) *models.Message) (models.TaskStatus, error)

	// ListForUser lists the tasks visible to username, newest first
	ListForUser(username string, role models.Role) ([]models.Task, error)

	// StatsForUser counts the tasks assigned to username per status
	StatsForUser(username string) (*models.TaskStats, error)
}

// MessageRepository defines the interface for task thread data access
type MessageRepository interface {
	// Create inserts a message
	Create(message *models.Message) error

	// ListByTask lists the messages of a task, oldest first
	ListByTask(taskID uint64) ([]models.Message, error)
}

// storeError tags engine failures with ErrStoreUnavailable, leaving the
// repository's own sentinels untouched.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrNoAssignees):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
