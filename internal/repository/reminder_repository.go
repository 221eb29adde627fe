package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create creates a reminder and its assignment rows atomically
func (r *GormReminderRepository) Create(reminder *models.Reminder, memberIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reminder).Error; err != nil {
			return err
		}

		return createAssignments(tx, reminder.ID, memberIDs)
	})
}

// FindByID finds a reminder with its assignments
func (r *GormReminderRepository) FindByID(id uint64) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.Preload("Assignments").First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListByFamily lists all reminders in a family with their assignments
func (r *GormReminderRepository) ListByFamily(familyID uint64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.Preload("Assignments").
		Scopes(database.ForFamily(familyID)).
		Order("date ASC").
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// Update updates a reminder
func (r *GormReminderRepository) Update(reminder *models.Reminder) error {
	return r.db.Save(reminder).Error
}

// SetAssignees replaces the assignment list
func (r *GormReminderRepository) SetAssignees(reminderID uint64, memberIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reminder_id = ?", reminderID).
			Unscoped().
			Delete(&models.ReminderAssignment{}).Error; err != nil {
			return err
		}

		return createAssignments(tx, reminderID, memberIDs)
	})
}

// Delete soft deletes a reminder and its assignments
func (r *GormReminderRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reminder_id = ?", id).Delete(&models.ReminderAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Reminder{}, id).Error
	})
}

// ListPhotographed lists reminders that carry a photo, oldest first, capped at limit
func (r *GormReminderRepository) ListPhotographed(familyID uint64, limit int) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.Scopes(database.ForFamily(familyID)).
		Where("photo_path <> ''").
		Order("date ASC").
		Limit(limit).
		Find(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

func createAssignments(tx *gorm.DB, reminderID uint64, memberIDs []uint64) error {
	if len(memberIDs) == 0 {
		return nil
	}

	assignments := make([]models.ReminderAssignment, len(memberIDs))
	for i, memberID := range memberIDs {
		assignments[i] = models.ReminderAssignment{
			ReminderID: reminderID,
			MemberID:   memberID,
		}
	}
	return tx.Create(&assignments).Error
}
