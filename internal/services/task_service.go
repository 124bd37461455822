package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/repository"
	"github.com/yukikurage/team-task-tracker/internal/utils"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrNotPermitted         = errors.New("action not permitted for this role")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleTooLong         = errors.New("title must be at most 255 characters")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrNoAssignees          = errors.New("at least one assignee is required")
	ErrDueDateInPast        = errors.New("due date cannot be in the past")
	ErrInvalidTaskAssignee  = errors.New("one or more assignees are not registered users")
	ErrInvalidStatus        = errors.New("invalid task status")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	CreatedBy   string
	Assignees   []string
	DueDate     time.Time
}

// SelfAssignInput represents input for a task a user assigns to themselves
type SelfAssignInput struct {
	Username    string
	Title       string
	Description string
	DueDate     time.Time
}

// ChangeStatusInput represents a status change requested by a user
type ChangeStatusInput struct {
	TaskID uint64
	Actor  string
	Role   models.Role
	Status models.TaskStatus
}

// MemberProfile is the team overview of one user
type MemberProfile struct {
	Username string
	Stats    models.TaskStats
	Tasks    []models.Task
}

// CreateTask validates the input and stores the task with its assignees
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	assignees, err := s.validateNewTask(input.Title, input.Description, input.Assignees, input.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		AssignedBy:  input.CreatedBy,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task, assignees); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// SelfAssignTask stores a task owned and assigned by the same user and logs
// the self-assignment in its thread
func (s *TaskService) SelfAssignTask(input SelfAssignInput) (*models.Task, error) {
	assignees, err := s.validateNewTask(input.Title, input.Description, []string{input.Username}, input.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		AssignedBy:  input.Username,
		DueDate:     input.DueDate,
	}
	note := models.NewSystemMessage(0, fmt.Sprintf("Task self-assigned by %s", input.Username))

	if err := s.taskRepo.Create(task, assignees, note); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task with its assignees
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// SetStatus overwrites a task's status without permission checks or audit
func (s *TaskService) SetStatus(taskID uint64, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.taskRepo.SetStatus(taskID, status); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}

// ChangeStatus applies a status change for the actor and records it in the
// task thread in the same transaction. Choosing the current status is a no-op.
func (s *TaskService) ChangeStatus(input ChangeStatusInput) (*models.Task, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.GetTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	if !input.Role.MayUpdateStatus(task, input.Actor) {
		return nil, ErrTaskPermissionDenied
	}

	_, err = s.taskRepo.TransitionStatus(task.ID, input.Status, func(from models.TaskStatus) *models.Message {
		return models.NewSystemMessage(task.ID, fmt.Sprintf("Task status changed from %s to %s", from, input.Status))
	})
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to change status: %w", err)
	}

	task.Status = input.Status
	return task, nil
}

// ListTasksForUser returns the tasks the user may see, newest first
func (s *TaskService) ListTasksForUser(username string, role models.Role) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListForUser(username, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// StatsForUser counts the tasks assigned to the user by status.
// Tasks the user only created are not counted.
func (s *TaskService) StatsForUser(username string) (*models.TaskStats, error) {
	stats, err := s.taskRepo.StatsForUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// MemberProfile builds the team overview of username for a viewer allowed to manage users
func (s *TaskService) MemberProfile(viewer models.Role, username string) (*MemberProfile, error) {
	if !viewer.MayManageUsers() {
		return nil, ErrNotPermitted
	}

	if _, err := s.userRepo.FindByUsername(username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	stats, err := s.StatsForUser(username)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasksForUser(username, models.RoleMember)
	if err != nil {
		return nil, err
	}

	return &MemberProfile{
		Username: username,
		Stats:    *stats,
		Tasks:    tasks,
	}, nil
}

// validateNewTask checks the fields shared by every task creation path and
// returns the de-duplicated assignees
func (s *TaskService) validateNewTask(title, description string, assignees []string, dueDate time.Time) ([]string, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > models.MaxNameLength {
		return nil, ErrTitleTooLong
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	unique := utils.UniqueStrings(assignees)
	if len(unique) == 0 {
		return nil, ErrNoAssignees
	}

	if models.DateOnly(dueDate).Before(models.DateOnly(s.now().UTC())) {
		return nil, ErrDueDateInPast
	}

	count, err := s.userRepo.CountExisting(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to verify assignees: %w", err)
	}
	if int(count) != len(unique) {
		return nil, ErrInvalidTaskAssignee
	}

	return unique, nil
}
