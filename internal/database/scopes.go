package database

import (
	"gorm.io/gorm"

	"github.com/flowfam/family-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// ForFamily scopes a query to a single family. Every entity table carries a
// family_id column; rows must never leak across that boundary.
func ForFamily(familyID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("family_id = ?", familyID)
	}
}
