package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormChoreRepository is a GORM implementation of ChoreRepository
type GormChoreRepository struct {
	db *gorm.DB
}

// NewChoreRepository creates a new ChoreRepository
func NewChoreRepository(db *gorm.DB) ChoreRepository {
	return &GormChoreRepository{db: db}
}

// Create creates a new household task
func (r *GormChoreRepository) Create(chore *models.HouseholdTask) error {
	return r.db.Create(chore).Error
}

// FindByID finds a household task by ID
func (r *GormChoreRepository) FindByID(id uint64) (*models.HouseholdTask, error) {
	var chore models.HouseholdTask
	if err := r.db.First(&chore, id).Error; err != nil {
		return nil, err
	}
	return &chore, nil
}

// ListByFamily lists all household tasks in a family
func (r *GormChoreRepository) ListByFamily(familyID uint64) ([]models.HouseholdTask, error) {
	var chores []models.HouseholdTask
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("created_at DESC").Find(&chores).Error; err != nil {
		return nil, err
	}
	return chores, nil
}

// Update updates a household task
func (r *GormChoreRepository) Update(chore *models.HouseholdTask) error {
	return r.db.Save(chore).Error
}

// Delete soft deletes a household task
func (r *GormChoreRepository) Delete(id uint64) error {
	return r.db.Delete(&models.HouseholdTask{}, id).Error
}
