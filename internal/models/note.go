package models

import (
	"time"

	"gorm.io/gorm"
)

// FamilyNote is visible to its creator and to the members it is shared with.
type FamilyNote struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	CreatorID uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Shares []NoteShare `gorm:"foreignKey:NoteID" json:"shares,omitempty"`
}

type NoteShare struct {
	NoteID    uint64         `gorm:"primarykey" json:"note_id"`
	MemberID  uint64         `gorm:"primarykey" json:"member_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SharedWith returns the member IDs this note is explicitly shared with.
func (n *FamilyNote) SharedWith() []uint64 {
	ids := make([]uint64, 0, len(n.Shares))
	for _, s := range n.Shares {
		ids = append(ids, s.MemberID)
	}
	return ids
}
