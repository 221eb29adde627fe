package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkSchedule is a weekday-scoped shift for a member.
type WorkSchedule struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	MemberID  uint64         `gorm:"not null;index" json:"member_id"`
	Weekday   time.Weekday   `gorm:"not null" json:"weekday"`
	StartTime string         `gorm:"type:varchar(10)" json:"start_time"`
	EndTime   string         `gorm:"type:varchar(10)" json:"end_time"`
	Note      string         `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SchoolSchedule is a weekday-scoped school entry for a child.
type SchoolSchedule struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	MemberID  uint64         `gorm:"not null;index" json:"member_id"`
	Weekday   time.Weekday   `gorm:"not null" json:"weekday"`
	Subject   string         `gorm:"type:varchar(255)" json:"subject"`
	StartTime string         `gorm:"type:varchar(10)" json:"start_time"`
	EndTime   string         `gorm:"type:varchar(10)" json:"end_time"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type BoardStatus string

const (
	BoardStatusTodo  BoardStatus = "todo"
	BoardStatusDoing BoardStatus = "doing"
	BoardStatusDone  BoardStatus = "done"
)

// TaskBoardItem is a kanban card on the family planning board.
type TaskBoardItem struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	MemberID  uint64         `gorm:"not null;index" json:"member_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Status    BoardStatus    `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
