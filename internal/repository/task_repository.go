package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByFamily lists all tasks in a family
func (r *GormTaskRepository) ListByFamily(familyID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CompleteAndCredit flips the completion flag and credits the assignee's coin
// balance. Both writes commit or roll back together so a rejected credit can
// never leave a completed task uncredited, or the reverse.
func (r *GormTaskRepository) CompleteAndCredit(taskID, memberID uint64, coins int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("id = ?", taskID).
			Update("completed", true).Error; err != nil {
			return err
		}

		if coins == 0 {
			return nil
		}

		return tx.Model(&models.FamilyMember{}).
			Where("id = ?", memberID).
			UpdateColumn("coins", gorm.Expr("coins + ?", coins)).Error
	})
}
