package repository

import (
	"errors"

	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormSettingsRepository is a GORM implementation of SettingsRepository
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Upsert writes the setting row for a (member, type) pair
func (r *GormSettingsRepository) Upsert(setting *models.NotificationSetting) error {
	var existing models.NotificationSetting
	err := r.db.Where("member_id = ? AND type = ?", setting.MemberID, setting.Type).
		First(&existing).Error
	if err == nil {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
		return r.db.Save(setting).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(setting).Error
}

// ListByMember lists all notification settings for a member
func (r *GormSettingsRepository) ListByMember(memberID uint64) ([]models.NotificationSetting, error) {
	var settings []models.NotificationSetting
	if err := r.db.Where("member_id = ?", memberID).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// FindByMemberAndType finds the setting row for a (member, type) pair
func (r *GormSettingsRepository) FindByMemberAndType(memberID uint64, t models.NotificationType) (*models.NotificationSetting, error) {
	var setting models.NotificationSetting
	if err := r.db.Where("member_id = ? AND type = ?", memberID, t).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
