package repository

import (
	"errors"

	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormFamilyRepository is a GORM implementation of FamilyRepository
type GormFamilyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a new FamilyRepository
func NewFamilyRepository(db *gorm.DB) FamilyRepository {
	return &GormFamilyRepository{db: db}
}

// CreateWithFirstParent creates a family and its first parent member atomically
func (r *GormFamilyRepository) CreateWithFirstParent(family *models.Family, member *models.FamilyMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}

		member.FamilyID = family.ID
		return tx.Create(member).Error
	})
}

// FindByID finds a family by ID
func (r *GormFamilyRepository) FindByID(id uint64) (*models.Family, error) {
	var family models.Family
	if err := r.db.First(&family, id).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// FindByJoinCode finds a family by its join code. Codes are stored uppercase,
// so callers normalize before lookup to get case-insensitive matching.
func (r *GormFamilyRepository) FindByJoinCode(code string) (*models.Family, error) {
	var family models.Family
	if err := r.db.Where("join_code = ?", code).First(&family).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

// JoinCodeExists reports whether an active family already uses the code
func (r *GormFamilyRepository) JoinCodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Family{}).Where("join_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember inserts a family member
func (r *GormFamilyRepository) AddMember(member *models.FamilyMember) error {
	return r.db.Create(member).Error
}

// UpdateMember saves member changes
func (r *GormFamilyRepository) UpdateMember(member *models.FamilyMember) error {
	return r.db.Save(member).Error
}

// FindMember finds a member by ID
func (r *GormFamilyRepository) FindMember(id uint64) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMemberByUserID finds the membership linked to a login account.
// No membership is a valid state (onboarding), signalled by ErrRecordNotFound.
func (r *GormFamilyRepository) FindMemberByUserID(userID uint64) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a family
func (r *GormFamilyRepository) ListMembers(familyID uint64) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := r.db.Scopes(database.ForFamily(familyID)).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// DeleteMember removes a member and scrubs them from every assignment list
// in one transaction: reminder assignments, their reward tasks and chores.
func (r *GormFamilyRepository) DeleteMember(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&models.ReminderAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("assigned_to = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("assigned_to = ?", id).Delete(&models.HouseholdTask{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.FamilyMember{}, id).Error
	})
}

// CreditCoins adds coins to a member's balance
func (r *GormFamilyRepository) CreditCoins(memberID uint64, coins int) error {
	result := r.db.Model(&models.FamilyMember{}).
		Where("id = ?", memberID).
		UpdateColumn("coins", gorm.Expr("coins + ?", coins))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("family repository: member not found")
	}
	return nil
}
