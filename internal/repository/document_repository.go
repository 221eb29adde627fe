package repository

import (
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create creates a document and its permission rows atomically
func (r *GormDocumentRepository) Create(doc *models.Document, perms []models.DocumentPermission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}

		if len(perms) == 0 {
			return nil
		}

		for i := range perms {
			perms[i].DocumentID = doc.ID
		}
		return tx.Create(&perms).Error
	})
}

// FindByID finds a document with its permission rows
func (r *GormDocumentRepository) FindByID(id uint64) (*models.Document, error) {
	var doc models.Document
	if err := r.db.Preload("Permissions").First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByFamily lists all documents in a family with permission rows
func (r *GormDocumentRepository) ListByFamily(familyID uint64) ([]models.Document, error) {
	var docs []models.Document
	if err := r.db.Preload("Permissions").
		Scopes(database.ForFamily(familyID)).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Update updates a document
func (r *GormDocumentRepository) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}

// SetPermission upserts the permission row for one member
func (r *GormDocumentRepository) SetPermission(perm *models.DocumentPermission) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "document_id"}, {Name: "member_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"can_view", "can_download", "can_edit", "can_delete",
			}),
		}).
		Create(perm).Error
}

// Delete soft deletes a document and its permission rows
func (r *GormDocumentRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.DocumentPermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Document{}, id).Error
	})
}
