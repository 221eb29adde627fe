package models

import (
	"time"

	"gorm.io/gorm"
)

type BudgetPot struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Budget    float64        `gorm:"not null;default:0" json:"budget"`
	Spent     float64        `gorm:"not null;default:0" json:"spent"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type BudgetItemKind string

const (
	BudgetItemIncome       BudgetItemKind = "income"
	BudgetItemFixedExpense BudgetItemKind = "fixed_expense"
)

// BudgetItem is a recurring monthly income or fixed expense line.
type BudgetItem struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	FamilyID  uint64         `gorm:"not null;index" json:"family_id"`
	Kind      BudgetItemKind `gorm:"type:varchar(20);not null" json:"kind"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Amount    float64        `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
