package services

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/flowfam/family-api/internal/constants"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReminderNotFound      = errors.New("reminder not found")
	ErrReminderTitleRequired = errors.New("reminder title is required")
	ErrReminderDateRequired  = errors.New("reminder date is required")
)

// ReminderService handles reminder business logic, including the exportable
// photo book assembled from photographed reminders.
type ReminderService struct {
	reminderRepo repository.ReminderRepository
	familyRepo   repository.FamilyRepository
	store        storage.Storage
}

// NewReminderService creates a new ReminderService.
func NewReminderService(reminderRepo repository.ReminderRepository, familyRepo repository.FamilyRepository, store storage.Storage) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		familyRepo:   familyRepo,
		store:        store,
	}
}

// CreateReminderInput represents input for creating a reminder.
type CreateReminderInput struct {
	Actor       models.FamilyMember
	Title       string
	Description string
	Date        time.Time
	TimeOfDay   string
	AssignedTo  []uint64
	PhotoPath   string
}

// CreateReminder validates and creates a reminder with its assignment list.
func (s *ReminderService) CreateReminder(input CreateReminderInput) (*models.Reminder, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrReminderTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrReminderDateRequired
	}

	memberIDs := uniqueUint64(input.AssignedTo)
	if err := s.ensureFamilyMembers(memberIDs, input.Actor.FamilyID); err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		FamilyID:    input.Actor.FamilyID,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		TimeOfDay:   input.TimeOfDay,
		PhotoPath:   input.PhotoPath,
		CreatorID:   input.Actor.ID,
	}

	if err := s.reminderRepo.Create(reminder, memberIDs); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	return s.reminderRepo.FindByID(reminder.ID)
}

// UpdateReminderInput represents a partial reminder update.
type UpdateReminderInput struct {
	Actor       models.FamilyMember
	ReminderID  uint64
	Title       *string
	Description *string
	Date        *time.Time
	TimeOfDay   *string
	Completed   *bool
	PhotoPath   *string
	AssignedTo  []uint64
}

// UpdateReminder applies a partial update; a non-nil AssignedTo replaces the
// whole assignment list.
func (s *ReminderService) UpdateReminder(input UpdateReminderInput) (*models.Reminder, error) {
	reminder, err := s.reminderInFamily(input.ReminderID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrReminderTitleRequired
		}
		reminder.Title = *input.Title
	}
	if input.Description != nil {
		reminder.Description = *input.Description
	}
	if input.Date != nil {
		reminder.Date = *input.Date
	}
	if input.TimeOfDay != nil {
		reminder.TimeOfDay = *input.TimeOfDay
	}
	if input.Completed != nil {
		reminder.Completed = *input.Completed
	}
	if input.PhotoPath != nil {
		reminder.PhotoPath = *input.PhotoPath
	}

	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	if input.AssignedTo != nil {
		memberIDs := uniqueUint64(input.AssignedTo)
		if err := s.ensureFamilyMembers(memberIDs, input.Actor.FamilyID); err != nil {
			return nil, err
		}
		if err := s.reminderRepo.SetAssignees(reminder.ID, memberIDs); err != nil {
			return nil, fmt.Errorf("failed to update assignees: %w", err)
		}
	}

	return s.reminderRepo.FindByID(reminder.ID)
}

// DeleteReminder removes a reminder from the actor's family.
func (s *ReminderService) DeleteReminder(actor models.FamilyMember, reminderID uint64) error {
	if _, err := s.reminderInFamily(reminderID, actor.FamilyID); err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(reminderID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	return nil
}

// ListReminders lists the reminders of the actor's family.
func (s *ReminderService) ListReminders(actor models.FamilyMember) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// GetReminder returns one reminder of the actor's family.
func (s *ReminderService) GetReminder(actor models.FamilyMember, reminderID uint64) (*models.Reminder, error) {
	return s.reminderInFamily(reminderID, actor.FamilyID)
}

// AttachPhoto stores the photo bytes and links them to the reminder,
// replacing any previous photo.
func (s *ReminderService) AttachPhoto(actor models.FamilyMember, reminderID uint64, data []byte) (*models.Reminder, error) {
	reminder, err := s.reminderInFamily(reminderID, actor.FamilyID)
	if err != nil {
		return nil, err
	}

	key := path.Join("photos", fmt.Sprintf("%d", actor.FamilyID), uuid.NewString())
	if err := s.store.Upload(key, data); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	if reminder.PhotoPath != "" {
		_ = s.store.Remove(reminder.PhotoPath)
	}

	reminder.PhotoPath = key
	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}

	return reminder, nil
}

// DownloadPhoto returns the photo bytes linked to the reminder.
func (s *ReminderService) DownloadPhoto(actor models.FamilyMember, reminderID uint64) ([]byte, error) {
	reminder, err := s.reminderInFamily(reminderID, actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if reminder.PhotoPath == "" {
		return nil, ErrReminderNotFound
	}

	data, err := s.store.Download(reminder.PhotoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	return data, nil
}

// PhotoBook returns the photographed reminders for export, capped at 75.
func (s *ReminderService) PhotoBook(actor models.FamilyMember) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListPhotographed(actor.FamilyID, constants.MaxPhotoBookReminders)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble photo book: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) reminderInFamily(reminderID, familyID uint64) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}
	if reminder.FamilyID != familyID {
		return nil, ErrReminderNotFound
	}
	return reminder, nil
}

func (s *ReminderService) ensureFamilyMembers(memberIDs []uint64, familyID uint64) error {
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

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
