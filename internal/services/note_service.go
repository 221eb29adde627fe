package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flowfam/family-api/internal/authz"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteTitleRequired = errors.New("note title is required")
	ErrNotNoteCreator    = errors.New("only the note creator can change it")
)

// NoteService handles shared-note business logic. Visibility follows the
// authz rules: the creator always sees a note, others only when shared with.
type NoteService struct {
	noteRepo   repository.NoteRepository
	familyRepo repository.FamilyRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo repository.NoteRepository, familyRepo repository.FamilyRepository) *NoteService {
	return &NoteService{
		noteRepo:   noteRepo,
		familyRepo: familyRepo,
	}
}

// CreateNoteInput represents input for creating a note.
type CreateNoteInput struct {
	Actor      models.FamilyMember
	Title      string
	Body       string
	SharedWith []uint64
}

// CreateNote creates a note shared with the given members. The creator is
// never stored in the share list; their access is implicit.
func (s *NoteService) CreateNote(input CreateNoteInput) (*models.FamilyNote, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrNoteTitleRequired
	}

	sharedWith := make([]uint64, 0, len(input.SharedWith))
	for _, id := range uniqueUint64(input.SharedWith) {
		if id == input.Actor.ID {
			continue
		}
		sharedWith = append(sharedWith, id)
	}
	if err := s.ensureFamilyMembers(sharedWith, input.Actor.FamilyID); err != nil {
		return nil, err
	}

	note := &models.FamilyNote{
		FamilyID:  input.Actor.FamilyID,
		Title:     input.Title,
		Body:      input.Body,
		CreatorID: input.Actor.ID,
	}

	if err := s.noteRepo.Create(note, sharedWith); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return s.noteRepo.FindByID(note.ID)
}

// UpdateNoteInput represents a partial note update.
type UpdateNoteInput struct {
	Actor      models.FamilyMember
	NoteID     uint64
	Title      *string
	Body       *string
	SharedWith []uint64
}

// UpdateNote applies a partial update. Only the creator may edit a note or
// change who it is shared with.
func (s *NoteService) UpdateNote(input UpdateNoteInput) (*models.FamilyNote, error) {
	note, err := s.noteInFamily(input.NoteID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if note.CreatorID != input.Actor.ID {
		return nil, ErrNotNoteCreator
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrNoteTitleRequired
		}
		note.Title = *input.Title
	}
	if input.Body != nil {
		note.Body = *input.Body
	}

	if err := s.noteRepo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	if input.SharedWith != nil {
		sharedWith := make([]uint64, 0, len(input.SharedWith))
		for _, id := range uniqueUint64(input.SharedWith) {
			if id == note.CreatorID {
				continue
			}
			sharedWith = append(sharedWith, id)
		}
		if err := s.ensureFamilyMembers(sharedWith, input.Actor.FamilyID); err != nil {
			return nil, err
		}
		if err := s.noteRepo.SetShares(note.ID, sharedWith); err != nil {
			return nil, fmt.Errorf("failed to update shares: %w", err)
		}
	}

	return s.noteRepo.FindByID(note.ID)
}

// DeleteNote removes a note. Creator only.
func (s *NoteService) DeleteNote(actor models.FamilyMember, noteID uint64) error {
	note, err := s.noteInFamily(noteID, actor.FamilyID)
	if err != nil {
		return err
	}
	if note.CreatorID != actor.ID {
		return ErrNotNoteCreator
	}

	if err := s.noteRepo.Delete(noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// ListVisibleNotes lists the family's notes the actor may see.
func (s *NoteService) ListVisibleNotes(actor models.FamilyMember) ([]models.FamilyNote, error) {
	notes, err := s.noteRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	visible := make([]models.FamilyNote, 0, len(notes))
	for _, note := range notes {
		if authz.CanViewNote(actor.ID, note) {
			visible = append(visible, note)
		}
	}
	return visible, nil
}

// GetNote returns one note, hidden behind not-found when the actor may not
// see it.
func (s *NoteService) GetNote(actor models.FamilyMember, noteID uint64) (*models.FamilyNote, error) {
	note, err := s.noteInFamily(noteID, actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewNote(actor.ID, *note) {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *NoteService) noteInFamily(noteID, familyID uint64) (*models.FamilyNote, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	if note.FamilyID != familyID {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *NoteService) ensureFamilyMembers(memberIDs []uint64, familyID uint64) error {
	for _, memberID := range memberIDs {
		member, err := s.familyRepo.FindMember(memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidAssignee
			}
			return fmt.Errorf("failed to verify member: %w", err)
		}
		if member.FamilyID != familyID {
			return ErrInvalidAssignee
		}
	}
	return nil
}
