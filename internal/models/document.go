package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a parent-managed file with per-member permission rows. The
// uploader always has full rights regardless of explicit rows.
type Document struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	FamilyID    uint64         `gorm:"not null;index" json:"family_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	StoragePath string         `gorm:"type:varchar(255);not null" json:"storage_path"`
	UploadedBy  uint64         `gorm:"not null" json:"uploaded_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Permissions []DocumentPermission `gorm:"foreignKey:DocumentID" json:"permissions,omitempty"`
}

type DocumentPermission struct {
	DocumentID  uint64         `gorm:"primarykey" json:"document_id"`
	MemberID    uint64         `gorm:"primarykey" json:"member_id"`
	CanView     bool           `gorm:"not null;default:false" json:"can_view"`
	CanDownload bool           `gorm:"not null;default:false" json:"can_download"`
	CanEdit     bool           `gorm:"not null;default:false" json:"can_edit"`
	CanDelete   bool           `gorm:"not null;default:false" json:"can_delete"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
