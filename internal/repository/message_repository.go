package repository

import (
	"github.com/yukikurage/team-task-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create inserts a message; the timestamp is assigned on insert
func (r *GormMessageRepository) Create(message *models.Message) error {
	return storeError(r.db.Create(message).Error)
}

// ListByTask lists the thread of a task, oldest first. Messages written within
// the same clock tick keep their insertion order.
func (r *GormMessageRepository) ListByTask(taskID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("task_id = ?", taskID).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "timestamp"}},
			{Column: clause.Column{Name: "message_id"}},
		}}).
		Find(&messages).Error
	if err != nil {
		return nil, storeError(err)
	}
	return messages, nil
}
