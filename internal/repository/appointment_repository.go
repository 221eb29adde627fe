package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/utils"
	"gorm.io/gorm"
)

// GormAppointmentRepository is a GORM implementation of AppointmentRepository
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

func (r *GormAppointmentRepository) FindByID(id uint64) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.db.First(&appt, id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *GormAppointmentRepository) ListByFamily(familyID uint64) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("date ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *GormAppointmentRepository) ListByFamilyPaged(familyID uint64, params utils.PaginationParams) ([]models.Appointment, int64, error) {
	var total int64
	if err := r.db.Model(&models.Appointment{}).
		Scopes(database.ForFamily(familyID)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appts []models.Appointment
	if err := r.db.Scopes(database.ForFamily(familyID), database.Paginate(params)).
		Order("date ASC").
		Find(&appts).Error; err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *GormAppointmentRepository) Update(appt *models.Appointment) error {
	return r.db.Save(appt).Error
}

func (r *GormAppointmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Appointment{}, id).Error
}
