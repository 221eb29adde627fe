package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationDailyOverview NotificationType = "daily_overview"
	NotificationAppointment   NotificationType = "appointment"
	NotificationTask          NotificationType = "task"
	NotificationMeal          NotificationType = "meal"
)

// NotificationSetting controls one notification type for one member.
// Scheduled notifications are cancelled and re-registered by type tag when a
// setting changes, since individual schedule IDs are not retained.
type NotificationSetting struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	FamilyID  uint64           `gorm:"not null;index" json:"family_id"`
	MemberID  uint64           `gorm:"not null;index" json:"member_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Enabled   bool             `gorm:"not null;default:true" json:"enabled"`
	TimeOfDay string           `gorm:"type:varchar(10)" json:"time_of_day"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}
