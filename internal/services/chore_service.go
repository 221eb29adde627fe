package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"gorm.io/gorm"
)

var ErrChoreNotFound = errors.New("household task not found")

// ChoreService handles household-task business logic. Chores share the
// dueness rules of reward tasks but carry no coins.
type ChoreService struct {
	choreRepo  repository.ChoreRepository
	familyRepo repository.FamilyRepository
}

// NewChoreService creates a new ChoreService.
func NewChoreService(choreRepo repository.ChoreRepository, familyRepo repository.FamilyRepository) *ChoreService {
	return &ChoreService{
		choreRepo:  choreRepo,
		familyRepo: familyRepo,
	}
}

// CreateChoreInput represents input for creating a household task.
type CreateChoreInput struct {
	Actor      models.FamilyMember
	Name       string
	Icon       string
	AssignedTo uint64
	Repeat     models.RepeatRule
	DueDate    *time.Time
	TimeOfDay  string
}

// CreateChore validates and creates a household task in the actor's family.
func (s *ChoreService) CreateChore(input CreateChoreInput) (*models.HouseholdTask, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}

	repeat := input.Repeat
	if repeat == "" {
		repeat = models.RepeatNone
	}
	if !validRepeat(repeat) {
		return nil, ErrInvalidRepeatRule
	}

	if err := s.ensureFamilyMember(input.AssignedTo, input.Actor.FamilyID); err != nil {
		return nil, err
	}

	dueDate := input.DueDate
	if repeat != models.RepeatNone {
		dueDate = nil
	}

	creatorID := input.Actor.ID
	chore := &models.HouseholdTask{
		FamilyID:   input.Actor.FamilyID,
		Name:       input.Name,
		Icon:       input.Icon,
		AssignedTo: input.AssignedTo,
		Repeat:     repeat,
		DueDate:    dueDate,
		TimeOfDay:  input.TimeOfDay,
		CreatorID:  &creatorID,
	}

	if err := s.choreRepo.Create(chore); err != nil {
		return nil, fmt.Errorf("failed to create household task: %w", err)
	}

	return chore, nil
}

// UpdateChoreInput represents a partial household-task update.
type UpdateChoreInput struct {
	Actor        models.FamilyMember
	ChoreID      uint64
	Name         *string
	Icon         *string
	AssignedTo   *uint64
	Repeat       *models.RepeatRule
	DueDate      *time.Time
	ClearDueDate bool
	TimeOfDay    *string
	Completed    *bool
}

// UpdateChore applies a partial update to a household task.
func (s *ChoreService) UpdateChore(input UpdateChoreInput) (*models.HouseholdTask, error) {
	chore, err := s.choreInFamily(input.ChoreID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTaskNameRequired
		}
		chore.Name = *input.Name
	}
	if input.Icon != nil {
		chore.Icon = *input.Icon
	}
	if input.AssignedTo != nil {
		if err := s.ensureFamilyMember(*input.AssignedTo, input.Actor.FamilyID); err != nil {
			return nil, err
		}
		chore.AssignedTo = *input.AssignedTo
	}
	if input.Repeat != nil {
		if !validRepeat(*input.Repeat) {
			return nil, ErrInvalidRepeatRule
		}
		chore.Repeat = *input.Repeat
	}
	if input.ClearDueDate {
		chore.DueDate = nil
	} else if input.DueDate != nil {
		chore.DueDate = input.DueDate
	}
	if chore.Repeat != models.RepeatNone {
		chore.DueDate = nil
	}
	if input.TimeOfDay != nil {
		chore.TimeOfDay = *input.TimeOfDay
	}
	if input.Completed != nil {
		chore.Completed = *input.Completed
	}

	if err := s.choreRepo.Update(chore); err != nil {
		return nil, fmt.Errorf("failed to update household task: %w", err)
	}

	return chore, nil
}

// DeleteChore removes a household task from the actor's family.
func (s *ChoreService) DeleteChore(actor models.FamilyMember, choreID uint64) error {
	if _, err := s.choreInFamily(choreID, actor.FamilyID); err != nil {
		return err
	}

	if err := s.choreRepo.Delete(choreID); err != nil {
		return fmt.Errorf("failed to delete household task: %w", err)
	}

	return nil
}

// ListChores lists the household tasks of the actor's family.
func (s *ChoreService) ListChores(actor models.FamilyMember) ([]models.HouseholdTask, error) {
	chores, err := s.choreRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household tasks: %w", err)
	}
	return chores, nil
}

// ChoresDueToday returns a member's open chores due on the given day.
func (s *ChoreService) ChoresDueToday(actor models.FamilyMember, memberID uint64, day time.Time) ([]models.HouseholdTask, error) {
	if err := s.ensureFamilyMember(memberID, actor.FamilyID); err != nil {
		return nil, err
	}

	chores, err := s.choreRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household tasks: %w", err)
	}

	return TodaysChoresForMember(chores, memberID, day), nil
}

func (s *ChoreService) choreInFamily(choreID, familyID uint64) (*models.HouseholdTask, error) {
	chore, err := s.choreRepo.FindByID(choreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChoreNotFound
		}
		return nil, fmt.Errorf("failed to find household task: %w", err)
	}
	if chore.FamilyID != familyID {
		return nil, ErrChoreNotFound
	}
	return chore, nil
}

func (s *ChoreService) ensureFamilyMember(memberID, familyID uint64) error {
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
	return nil
}
