package repository

import (
	"errors"

	"github.com/yukikurage/team-task-tracker/internal/models"
	"github.com/yukikurage/team-task-tracker/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts the task as pending together with one assignment per distinct
// assignee and the given notes. Nothing is persisted if any insert fails.
func (r *GormTaskRepository) Create(task *models.Task, assignees []string, notes ...*models.Message) error {
	assignees = utils.UniqueStrings(assignees)
	if len(assignees) == 0 {
		return ErrNoAssignees
	}

	task.Status = models.TaskStatusPending
	task.DueDate = models.DateOnly(task.DueDate)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}

		assignments := make([]models.TaskAssignment, len(assignees))
		for i, username := range assignees {
			assignments[i] = models.TaskAssignment{
				TaskID:     task.ID,
				AssignedTo: username,
				Position:   i,
			}
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}

		for _, note := range notes {
			note.TaskID = task.ID
			if err := tx.Create(note).Error; err != nil {
				return err
			}
		}

		task.Assignments = assignments
		return nil
	})
	if err != nil {
		task.ID = 0
		task.Assignments = nil
	}
	return storeError(err)
}

// FindByID finds a task with its assignments in first-seen order
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Assignments", orderByPosition).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, storeError(err)
	}
	return &task, nil
}

// SetStatus overwrites the status without looking at the current one
func (r *GormTaskRepository) SetStatus(id uint64, status models.TaskStatus) error {
	return storeError(r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Task{}).Where("task_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTaskNotFound
		}
		return tx.Model(&models.Task{}).Where("task_id = ?", id).Update("status", status).Error
	}))
}

// TransitionStatus locks the task row, applies status and stores note(previous).
// Asking for the current status writes nothing.
func (r *GormTaskRepository) TransitionStatus(id uint64, status models.TaskStatus, note func(from models.TaskStatus) *models.Message) (models.TaskStatus, error) {
	var previous models.TaskStatus

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("task_id", "status").
			First(&task, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		previous = task.Status
		if previous == status {
			return nil
		}

		if err := tx.Model(&models.Task{}).Where("task_id = ?", id).Update("status", status).Error; err != nil {
			return err
		}

		if message := note(previous); message != nil {
			message.TaskID = id
			if err := tx.Create(message).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", storeError(err)
	}

	return previous, nil
}

// ListForUser returns every task for roles that may view all tasks, otherwise
// the tasks username created or is assigned to. Each task carries its
// assignments and message count.
func (r *GormTaskRepository) ListForUser(username string, role models.Role) ([]models.Task, error) {
	query := r.db.Model(&models.Task{}).
		Select("tasks.*, (SELECT COUNT(*) FROM messages WHERE messages.task_id = tasks.task_id) AS message_count")

	if !role.MayViewAllTasks() {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.task_id").
			Where("task_assignments.assigned_to = ?", username)
		query = query.Where("tasks.assigned_by = ? OR EXISTS (?)", username, assignmentSubQuery)
	}

	var tasks []models.Task
	if err := query.
		Order("tasks.created_at DESC").
		Order("tasks.task_id DESC").
		Preload("Assignments", orderByPosition).
		Find(&tasks).Error; err != nil {
		return nil, storeError(err)
	}

	return tasks, nil
}

// StatsForUser counts the tasks username is assigned to, by status
func (r *GormTaskRepository) StatsForUser(username string) (*models.TaskStats, error) {
	var stats models.TaskStats
	err := r.db.Model(&models.Task{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN tasks.status = ? THEN 1 ELSE 0 END), 0) AS followup_needed`,
			models.TaskStatusCompleted,
			models.TaskStatusInProgress,
			models.TaskStatusPending,
			models.TaskStatusFollowupNeeded,
		).
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.task_id").
		Where("task_assignments.assigned_to = ?", username).
		Scan(&stats).Error
	if err != nil {
		return nil, storeError(err)
	}
	return &stats, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("task_assignments.position ASC")
}
