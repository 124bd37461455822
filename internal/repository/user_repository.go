package repository

import (
	"errors"

	"github.com/yukikurage/team-task-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user
func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return storeError(err)
	}
	return nil
}

// CreateIfAbsent inserts user unless the username is already taken
func (r *GormUserRepository) CreateIfAbsent(user *models.User) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if result.Error != nil {
		return false, storeError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError(err)
	}
	return &user, nil
}

// List returns every user ordered by username
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("username").Find(&users).Error; err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

// CountExisting counts how many of the given usernames are registered
func (r *GormUserRepository) CountExisting(usernames []string) (int64, error) {
	if len(usernames) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.Model(&models.User{}).
		Where("username IN ?", usernames).
		Count(&count).Error
	return count, storeError(err)
}
