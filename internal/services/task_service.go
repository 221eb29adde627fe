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

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNameRequired  = errors.New("task name is required")
	ErrNegativeCoins     = errors.New("coin reward cannot be negative")
	ErrInvalidRepeatRule = errors.New("repeat must be none, daily, weekly or monthly")
	ErrInvalidAssignee   = errors.New("assignee is not a member of this family")
)

// TaskService handles reward-task business logic.
type TaskService struct {
	taskRepo   repository.TaskRepository
	familyRepo repository.FamilyRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, familyRepo repository.FamilyRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		familyRepo: familyRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Actor      models.FamilyMember
	Name       string
	Icon       string
	Coins      int
	AssignedTo uint64
	Repeat     models.RepeatRule
	DueDate    *time.Time
	TimeOfDay  string
}

// CreateTask validates and creates a task in the actor's family. A due date
// is only meaningful for one-time tasks and is dropped for recurring ones.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTaskNameRequired
	}
	if input.Coins < 0 {
		return nil, ErrNegativeCoins
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
	task := &models.Task{
		FamilyID:   input.Actor.FamilyID,
		Name:       input.Name,
		Icon:       input.Icon,
		Coins:      input.Coins,
		AssignedTo: input.AssignedTo,
		Repeat:     repeat,
		DueDate:    dueDate,
		TimeOfDay:  input.TimeOfDay,
		CreatorID:  &creatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update.
type UpdateTaskInput struct {
	Actor        models.FamilyMember
	TaskID       uint64
	Name         *string
	Icon         *string
	Coins        *int
	AssignedTo   *uint64
	Repeat       *models.RepeatRule
	DueDate      *time.Time
	ClearDueDate bool
	TimeOfDay    *string
}

// UpdateTask applies a partial update to a task in the actor's family.
func (s *TaskService) UpdateTask(input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskInFamily(input.TaskID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = *input.Name
	}
	if input.Icon != nil {
		task.Icon = *input.Icon
	}
	if input.Coins != nil {
		if *input.Coins < 0 {
			return nil, ErrNegativeCoins
		}
		task.Coins = *input.Coins
	}
	if input.AssignedTo != nil {
		if err := s.ensureFamilyMember(*input.AssignedTo, input.Actor.FamilyID); err != nil {
			return nil, err
		}
		task.AssignedTo = *input.AssignedTo
	}
	if input.Repeat != nil {
		if !validRepeat(*input.Repeat) {
			return nil, ErrInvalidRepeatRule
		}
		task.Repeat = *input.Repeat
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if task.Repeat != models.RepeatNone {
		task.DueDate = nil
	}
	if input.TimeOfDay != nil {
		task.TimeOfDay = *input.TimeOfDay
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task from the actor's family.
func (s *TaskService) DeleteTask(actor models.FamilyMember, taskID uint64) error {
	if _, err := s.taskInFamily(taskID, actor.FamilyID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListTasks lists the tasks of the actor's family.
func (s *TaskService) ListTasks(actor models.FamilyMember) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns one task of the actor's family.
func (s *TaskService) GetTask(actor models.FamilyMember, taskID uint64) (*models.Task, error) {
	return s.taskInFamily(taskID, actor.FamilyID)
}

// CompleteTask flips the completion flag and credits the assignee's coin
// balance in one transaction. Completing an already-completed task changes
// nothing: the flag stays set and no coins are credited twice.
func (s *TaskService) CompleteTask(actor models.FamilyMember, taskID uint64) (*models.Task, error) {
	task, err := s.taskInFamily(taskID, actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if task.Completed {
		return task, nil
	}

	if err := s.taskRepo.CompleteAndCredit(task.ID, task.AssignedTo, task.Coins); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	task.Completed = true
	return task, nil
}

// TasksDueToday returns a member's open tasks due on the given day.
func (s *TaskService) TasksDueToday(actor models.FamilyMember, memberID uint64, day time.Time) ([]models.Task, error) {
	if err := s.ensureFamilyMember(memberID, actor.FamilyID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return TodaysTasksForMember(tasks, memberID, day), nil
}

// MemberDashboard returns a member's open tasks due on the given day together
// with the member row itself, so callers get the coin balance in one go.
func (s *TaskService) MemberDashboard(actor models.FamilyMember, memberID uint64, day time.Time) ([]models.Task, *models.FamilyMember, error) {
	member, err := s.familyRepo.FindMember(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.FamilyID != actor.FamilyID {
		return nil, nil, ErrMemberNotFound
	}

	tasks, err := s.taskRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return TodaysTasksForMember(tasks, member.ID, day), member, nil
}

func (s *TaskService) taskInFamily(taskID, familyID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if task.FamilyID != familyID {
		// Hide other families' tasks behind not-found.
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) ensureFamilyMember(memberID, familyID uint64) error {
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

func validRepeat(repeat models.RepeatRule) bool {
	_, ok := duenessStrategies[repeat]
	return ok
}
