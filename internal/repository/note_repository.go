package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a note and its share rows atomically
func (r *GormNoteRepository) Create(note *models.FamilyNote, sharedWith []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}

		return createShares(tx, note.ID, sharedWith)
	})
}

// FindByID finds a note with its shares
func (r *GormNoteRepository) FindByID(id uint64) (*models.FamilyNote, error) {
	var note models.FamilyNote
	if err := r.db.Preload("Shares").First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByFamily lists all notes in a family with their shares
func (r *GormNoteRepository) ListByFamily(familyID uint64) ([]models.FamilyNote, error) {
	var notes []models.FamilyNote
	if err := r.db.Preload("Shares").
		Scopes(database.ForFamily(familyID)).
		Order("created_at DESC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Update updates a note
func (r *GormNoteRepository) Update(note *models.FamilyNote) error {
	return r.db.Save(note).Error
}

// SetShares replaces the share list
func (r *GormNoteRepository) SetShares(noteID uint64, memberIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", noteID).
			Unscoped().
			Delete(&models.NoteShare{}).Error; err != nil {
			return err
		}

		return createShares(tx, noteID, memberIDs)
	})
}

// Delete soft deletes a note and its shares
func (r *GormNoteRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.NoteShare{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.FamilyNote{}, id).Error
	})
}

func createShares(tx *gorm.DB, noteID uint64, memberIDs []uint64) error {
	if len(memberIDs) == 0 {
		return nil
	}

	shares := make([]models.NoteShare, len(memberIDs))
	for i, memberID := range memberIDs {
		shares[i] = models.NoteShare{
			NoteID:   noteID,
			MemberID: memberID,
		}
	}
	return tx.Create(&shares).Error
}
