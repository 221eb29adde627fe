package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Location  string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	Date      time.Time      `gorm:"not null" json:"date"`
	TimeOfDay string         `gorm:"type:varchar(10)" json:"time_of_day"`
	CreatorID uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
