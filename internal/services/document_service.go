package services

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/flowfam/family-api/internal/authz"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentTitleRequired = errors.New("document title is required")
	ErrDocumentEmpty         = errors.New("document content is empty")
	ErrDocumentForbidden     = errors.New("no permission for this document")
)

// DocumentService handles the parent-only document vault. Blobs live in the
// storage backend; the rows keep titles, paths and per-member permissions.
type DocumentService struct {
	docRepo    repository.DocumentRepository
	familyRepo repository.FamilyRepository
	store      storage.Storage
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(docRepo repository.DocumentRepository, familyRepo repository.FamilyRepository, store storage.Storage) *DocumentService {
	return &DocumentService{
		docRepo:    docRepo,
		familyRepo: familyRepo,
		store:      store,
	}
}

// PermissionInput is one member's permission tuple on a document.
type PermissionInput struct {
	MemberID    uint64 `json:"member_id"`
	CanView     bool   `json:"can_view"`
	CanDownload bool   `json:"can_download"`
	CanEdit     bool   `json:"can_edit"`
	CanDelete   bool   `json:"can_delete"`
}

// UploadDocumentInput represents input for uploading a document.
type UploadDocumentInput struct {
	Actor       models.FamilyMember
	Title       string
	Description string
	Data        []byte
	Permissions []PermissionInput
}

// UploadDocument stores the blob and creates the document with its
// permission rows. Parents only; the uploader keeps implicit full rights.
func (s *DocumentService) UploadDocument(input UploadDocumentInput) (*models.Document, error) {
	if !authz.CanManageFamily(input.Actor) {
		return nil, ErrNotParent
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrDocumentTitleRequired
	}
	if len(input.Data) == 0 {
		return nil, ErrDocumentEmpty
	}

	perms := make([]models.DocumentPermission, 0, len(input.Permissions))
	for _, p := range input.Permissions {
		if p.MemberID == input.Actor.ID {
			// Uploader rights are implicit; no row needed.
			continue
		}
		member, err := s.familyRepo.FindMember(p.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidAssignee
			}
			return nil, fmt.Errorf("failed to verify member: %w", err)
		}
		if member.FamilyID != input.Actor.FamilyID {
			return nil, ErrInvalidAssignee
		}
		perms = append(perms, models.DocumentPermission{
			MemberID:    p.MemberID,
			CanView:     p.CanView,
			CanDownload: p.CanDownload,
			CanEdit:     p.CanEdit,
			CanDelete:   p.CanDelete,
		})
	}

	storagePath := path.Join("documents", fmt.Sprintf("%d", input.Actor.FamilyID), uuid.NewString())
	if err := s.store.Upload(storagePath, input.Data); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &models.Document{
		FamilyID:    input.Actor.FamilyID,
		Title:       input.Title,
		Description: input.Description,
		StoragePath: storagePath,
		UploadedBy:  input.Actor.ID,
	}

	if err := s.docRepo.Create(doc, perms); err != nil {
		// Orphaned blob cleanup is best effort.
		_ = s.store.Remove(storagePath)
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return s.docRepo.FindByID(doc.ID)
}

// ListVisibleDocuments lists the family's documents the actor may see.
func (s *DocumentService) ListVisibleDocuments(actor models.FamilyMember) ([]models.Document, error) {
	docs, err := s.docRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	visible := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if authz.CanViewDocument(actor.ID, doc) {
			visible = append(visible, doc)
		}
	}
	return visible, nil
}

// GetDocument returns one document, hidden behind not-found when the actor
// may not view it.
func (s *DocumentService) GetDocument(actor models.FamilyMember, docID uint64) (*models.Document, error) {
	doc, err := s.documentInFamily(docID, actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewDocument(actor.ID, *doc) {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// DownloadDocument returns the blob for a document the actor may download.
func (s *DocumentService) DownloadDocument(actor models.FamilyMember, docID uint64) (*models.Document, []byte, error) {
	doc, err := s.documentInFamily(docID, actor.FamilyID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanDownloadDocument(actor.ID, *doc) {
		return nil, nil, ErrDocumentForbidden
	}

	data, err := s.store.Download(doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}

	return doc, data, nil
}

// UpdateDocumentInput represents a partial document metadata update.
type UpdateDocumentInput struct {
	Actor       models.FamilyMember
	DocumentID  uint64
	Title       *string
	Description *string
}

// UpdateDocument updates document metadata for actors with edit rights.
func (s *DocumentService) UpdateDocument(input UpdateDocumentInput) (*models.Document, error) {
	doc, err := s.documentInFamily(input.DocumentID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditDocument(input.Actor.ID, *doc) {
		return nil, ErrDocumentForbidden
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrDocumentTitleRequired
		}
		doc.Title = *input.Title
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}

	if err := s.docRepo.Update(doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	return doc, nil
}

// SetPermission upserts one member's permission tuple. Uploader only.
func (s *DocumentService) SetPermission(actor models.FamilyMember, docID uint64, perm PermissionInput) (*models.Document, error) {
	doc, err := s.documentInFamily(docID, actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if doc.UploadedBy != actor.ID {
		return nil, ErrDocumentForbidden
	}

	member, err := s.familyRepo.FindMember(perm.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidAssignee
		}
		return nil, fmt.Errorf("failed to verify member: %w", err)
	}
	if member.FamilyID != actor.FamilyID {
		return nil, ErrInvalidAssignee
	}

	row := &models.DocumentPermission{
		DocumentID:  doc.ID,
		MemberID:    perm.MemberID,
		CanView:     perm.CanView,
		CanDownload: perm.CanDownload,
		CanEdit:     perm.CanEdit,
		CanDelete:   perm.CanDelete,
	}
	if err := s.docRepo.SetPermission(row); err != nil {
		return nil, fmt.Errorf("failed to set permission: %w", err)
	}

	return s.docRepo.FindByID(doc.ID)
}

// DeleteDocument removes the row and the blob for actors with delete rights.
func (s *DocumentService) DeleteDocument(actor models.FamilyMember, docID uint64) error {
	doc, err := s.documentInFamily(docID, actor.FamilyID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteDocument(actor.ID, *doc) {
		return ErrDocumentForbidden
	}

	if err := s.docRepo.Delete(docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	// Row is gone; a leftover blob is harmless, so this is best effort.
	_ = s.store.Remove(doc.StoragePath)

	return nil
}

func (s *DocumentService) documentInFamily(docID, familyID uint64) (*models.Document, error) {
	doc, err := s.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	if doc.FamilyID != familyID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}
