package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) CreateWork(entry *models.WorkSchedule) error {
	return r.db.Create(entry).Error
}

func (r *GormScheduleRepository) ListWorkByMember(memberID uint64) ([]models.WorkSchedule, error) {
	var entries []models.WorkSchedule
	if err := r.db.Where("member_id = ?", memberID).Order("weekday ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormScheduleRepository) UpdateWork(entry *models.WorkSchedule) error {
	return r.db.Save(entry).Error
}

func (r *GormScheduleRepository) DeleteWork(id uint64) error {
	return r.db.Delete(&models.WorkSchedule{}, id).Error
}

func (r *GormScheduleRepository) FindWork(id uint64) (*models.WorkSchedule, error) {
	var entry models.WorkSchedule
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormScheduleRepository) CreateSchool(entry *models.SchoolSchedule) error {
	return r.db.Create(entry).Error
}

func (r *GormScheduleRepository) ListSchoolByMember(memberID uint64) ([]models.SchoolSchedule, error) {
	var entries []models.SchoolSchedule
	if err := r.db.Where("member_id = ?", memberID).Order("weekday ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormScheduleRepository) UpdateSchool(entry *models.SchoolSchedule) error {
	return r.db.Save(entry).Error
}

func (r *GormScheduleRepository) DeleteSchool(id uint64) error {
	return r.db.Delete(&models.SchoolSchedule{}, id).Error
}

func (r *GormScheduleRepository) FindSchool(id uint64) (*models.SchoolSchedule, error) {
	var entry models.SchoolSchedule
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormScheduleRepository) CreateBoardItem(item *models.TaskBoardItem) error {
	return r.db.Create(item).Error
}

func (r *GormScheduleRepository) ListBoardByFamily(familyID uint64) ([]models.TaskBoardItem, error) {
	var items []models.TaskBoardItem
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormScheduleRepository) UpdateBoardItem(item *models.TaskBoardItem) error {
	return r.db.Save(item).Error
}

func (r *GormScheduleRepository) DeleteBoardItem(id uint64) error {
	return r.db.Delete(&models.TaskBoardItem{}, id).Error
}

func (r *GormScheduleRepository) FindBoardItem(id uint64) (*models.TaskBoardItem, error) {
	var item models.TaskBoardItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
