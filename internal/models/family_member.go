package models

import (
	"time"

	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleParent MemberRole = "parent"
	RoleChild  MemberRole = "child"
)

// FamilyMember is a person in a family. Children carry no UserID because they
// never authenticate on their own; parents are linked to a login account.
type FamilyMember struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	UserID    *uint64        `gorm:"uniqueIndex" json:"user_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Role      MemberRole     `gorm:"type:varchar(20);not null" json:"role"`
	Color     string         `gorm:"type:varchar(20)" json:"color"`
	PhotoPath string         `gorm:"type:varchar(255)" json:"photo_path,omitempty"`
	Coins     int            `gorm:"not null;default:0" json:"coins"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (m *FamilyMember) IsParent() bool {
	return m.Role == RoleParent
}
