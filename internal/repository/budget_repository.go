package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormBudgetRepository is a GORM implementation of BudgetRepository
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &GormBudgetRepository{db: db}
}

func (r *GormBudgetRepository) CreatePot(pot *models.BudgetPot) error {
	return r.db.Create(pot).Error
}

func (r *GormBudgetRepository) FindPot(id uint64) (*models.BudgetPot, error) {
	var pot models.BudgetPot
	if err := r.db.First(&pot, id).Error; err != nil {
		return nil, err
	}
	return &pot, nil
}

func (r *GormBudgetRepository) ListPots(familyID uint64) ([]models.BudgetPot, error) {
	var pots []models.BudgetPot
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("name ASC").Find(&pots).Error; err != nil {
		return nil, err
	}
	return pots, nil
}

func (r *GormBudgetRepository) UpdatePot(pot *models.BudgetPot) error {
	return r.db.Save(pot).Error
}

func (r *GormBudgetRepository) DeletePot(id uint64) error {
	return r.db.Delete(&models.BudgetPot{}, id).Error
}

func (r *GormBudgetRepository) CreateItem(item *models.BudgetItem) error {
	return r.db.Create(item).Error
}

func (r *GormBudgetRepository) FindItem(id uint64) (*models.BudgetItem, error) {
	var item models.BudgetItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormBudgetRepository) ListItems(familyID uint64) ([]models.BudgetItem, error) {
	var items []models.BudgetItem
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormBudgetRepository) UpdateItem(item *models.BudgetItem) error {
	return r.db.Save(item).Error
}

func (r *GormBudgetRepository) DeleteItem(id uint64) error {
	return r.db.Delete(&models.BudgetItem{}, id).Error
}
