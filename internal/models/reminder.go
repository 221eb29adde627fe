package models

import (
	"time"

	"gorm.io/gorm"
)

type Reminder struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	FamilyID    uint64         `gorm:"not null;index" json:"family_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Date        time.Time      `gorm:"not null" json:"date"`
	TimeOfDay   string         `gorm:"type:varchar(10)" json:"time_of_day"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
	PhotoPath   string         `gorm:"type:varchar(255)" json:"photo_path,omitempty"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignments []ReminderAssignment `gorm:"foreignKey:ReminderID" json:"assignments,omitempty"`
}

type ReminderAssignment struct {
	ReminderID uint64         `gorm:"primarykey" json:"reminder_id"`
	MemberID   uint64         `gorm:"primarykey" json:"member_id"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Member FamilyMember `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
