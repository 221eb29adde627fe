package models

import (
	"time"

	"gorm.io/gorm"
)

// HouseholdTask is a chore: same dueness rules as Task but without a coin
// reward attached.
type HouseholdTask struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	FamilyID   uint64         `gorm:"not null;index" json:"family_id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Icon       string         `gorm:"type:varchar(50)" json:"icon"`
	AssignedTo uint64         `gorm:"not null;index" json:"assigned_to"`
	Completed  bool           `gorm:"not null;default:false" json:"completed"`
	Repeat     RepeatRule     `gorm:"type:varchar(20);not null;default:'none'" json:"repeat"`
	DueDate    *time.Time     `json:"due_date"`
	TimeOfDay  string         `gorm:"type:varchar(10)" json:"time_of_day,omitempty"`
	CreatorID  *uint64        `json:"creator_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Assignee FamilyMember `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}
