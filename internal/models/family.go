package models

import (
	"time"

	"gorm.io/gorm"
)

type Family struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	JoinCode  string         `gorm:"type:varchar(10);uniqueIndex;not null" json:"join_code"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
	Tasks   []Task         `gorm:"foreignKey:FamilyID" json:"tasks,omitempty"`
}
