package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowfam/family-api/internal/authz"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound    = errors.New("schedule entry not found")
	ErrBoardItemNotFound   = errors.New("board item not found")
	ErrInvalidWeekday      = errors.New("weekday must be between Sunday and Saturday")
	ErrInvalidBoardStatus  = errors.New("status must be todo, doing or done")
	ErrBoardTitleRequired  = errors.New("board item title is required")
	ErrScheduleNotOwnEntry = errors.New("members can only manage their own schedule")
	ErrSubjectRequired     = errors.New("subject is required")
)

// ScheduleService handles weekly work and school schedules plus the family
// planning board. Members manage their own entries; parents manage anyone's.
type ScheduleService struct {
	scheduleRepo repository.ScheduleRepository
	familyRepo   repository.FamilyRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, familyRepo repository.FamilyRepository) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		familyRepo:   familyRepo,
	}
}

func validWeekday(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday
}

func validBoardStatus(s models.BoardStatus) bool {
	switch s {
	case models.BoardStatusTodo, models.BoardStatusDoing, models.BoardStatusDone:
		return true
	}
	return false
}

// canManageEntry reports whether the actor may touch an entry owned by
// memberID. Parents manage any family entry, others only their own.
func canManageEntry(actor models.FamilyMember, memberID uint64) bool {
	return actor.ID == memberID || authz.CanManageFamily(actor)
}

// CreateWorkInput represents input for a work schedule entry.
type CreateWorkInput struct {
	Actor     models.FamilyMember
	MemberID  uint64
	Weekday   time.Weekday
	StartTime string
	EndTime   string
	Note      string
}

// CreateWork creates a work schedule entry for a member of the actor's family.
func (s *ScheduleService) CreateWork(input CreateWorkInput) (*models.WorkSchedule, error) {
	if !validWeekday(input.Weekday) {
		return nil, ErrInvalidWeekday
	}
	if !canManageEntry(input.Actor, input.MemberID) {
		return nil, ErrScheduleNotOwnEntry
	}
	if err := s.ensureFamilyMember(input.MemberID, input.Actor.FamilyID); err != nil {
		return nil, err
	}

	entry := &models.WorkSchedule{
		FamilyID:  input.Actor.FamilyID,
		MemberID:  input.MemberID,
		Weekday:   input.Weekday,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Note:      input.Note,
	}
	if err := s.scheduleRepo.CreateWork(entry); err != nil {
		return nil, fmt.Errorf("failed to create work schedule entry: %w", err)
	}
	return entry, nil
}

// UpdateWorkInput represents a partial work entry update.
type UpdateWorkInput struct {
	Actor     models.FamilyMember
	EntryID   uint64
	Weekday   *time.Weekday
	StartTime *string
	EndTime   *string
	Note      *string
}

// UpdateWork applies a partial update to a work schedule entry.
func (s *ScheduleService) UpdateWork(input UpdateWorkInput) (*models.WorkSchedule, error) {
	entry, err := s.workInFamily(input.EntryID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if !canManageEntry(input.Actor, entry.MemberID) {
		return nil, ErrScheduleNotOwnEntry
	}

	if input.Weekday != nil {
		if !validWeekday(*input.Weekday) {
			return nil, ErrInvalidWeekday
		}
		entry.Weekday = *input.Weekday
	}
	if input.StartTime != nil {
		entry.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		entry.EndTime = *input.EndTime
	}
	if input.Note != nil {
		entry.Note = *input.Note
	}

	if err := s.scheduleRepo.UpdateWork(entry); err != nil {
		return nil, fmt.Errorf("failed to update work schedule entry: %w", err)
	}
	return entry, nil
}

// DeleteWork removes a work schedule entry.
func (s *ScheduleService) DeleteWork(actor models.FamilyMember, entryID uint64) error {
	entry, err := s.workInFamily(entryID, actor.FamilyID)
	if err != nil {
		return err
	}
	if !canManageEntry(actor, entry.MemberID) {
		return ErrScheduleNotOwnEntry
	}
	if err := s.scheduleRepo.DeleteWork(entryID); err != nil {
		return fmt.Errorf("failed to delete work schedule entry: %w", err)
	}
	return nil
}

// ListWork lists one member's work schedule.
func (s *ScheduleService) ListWork(actor models.FamilyMember, memberID uint64) ([]models.WorkSchedule, error) {
	if err := s.ensureFamilyMember(memberID, actor.FamilyID); err != nil {
		return nil, err
	}
	entries, err := s.scheduleRepo.ListWorkByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedule: %w", err)
	}
	return entries, nil
}

// CreateSchoolInput represents input for a school schedule entry.
type CreateSchoolInput struct {
	Actor     models.FamilyMember
	MemberID  uint64
	Weekday   time.Weekday
	Subject   string
	StartTime string
	EndTime   string
}

// CreateSchool creates a school schedule entry for a member of the actor's
// family.
func (s *ScheduleService) CreateSchool(input CreateSchoolInput) (*models.SchoolSchedule, error) {
	if !validWeekday(input.Weekday) {
		return nil, ErrInvalidWeekday
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, ErrSubjectRequired
	}
	if !canManageEntry(input.Actor, input.MemberID) {
		return nil, ErrScheduleNotOwnEntry
	}
	if err := s.ensureFamilyMember(input.MemberID, input.Actor.FamilyID); err != nil {
		return nil, err
	}

	entry := &models.SchoolSchedule{
		FamilyID:  input.Actor.FamilyID,
		MemberID:  input.MemberID,
		Weekday:   input.Weekday,
		Subject:   input.Subject,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	if err := s.scheduleRepo.CreateSchool(entry); err != nil {
		return nil, fmt.Errorf("failed to create school schedule entry: %w", err)
	}
	return entry, nil
}

// UpdateSchoolInput represents a partial school entry update.
type UpdateSchoolInput struct {
	Actor     models.FamilyMember
	EntryID   uint64
	Weekday   *time.Weekday
	Subject   *string
	StartTime *string
	EndTime   *string
}

// UpdateSchool applies a partial update to a school schedule entry.
func (s *ScheduleService) UpdateSchool(input UpdateSchoolInput) (*models.SchoolSchedule, error) {
	entry, err := s.schoolInFamily(input.EntryID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}
	if !canManageEntry(input.Actor, entry.MemberID) {
		return nil, ErrScheduleNotOwnEntry
	}

	if input.Weekday != nil {
		if !validWeekday(*input.Weekday) {
			return nil, ErrInvalidWeekday
		}
		entry.Weekday = *input.Weekday
	}
	if input.Subject != nil {
		if strings.TrimSpace(*input.Subject) == "" {
			return nil, ErrSubjectRequired
		}
		entry.Subject = *input.Subject
	}
	if input.StartTime != nil {
		entry.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		entry.EndTime = *input.EndTime
	}

	if err := s.scheduleRepo.UpdateSchool(entry); err != nil {
		return nil, fmt.Errorf("failed to update school schedule entry: %w", err)
	}
	return entry, nil
}

// DeleteSchool removes a school schedule entry.
func (s *ScheduleService) DeleteSchool(actor models.FamilyMember, entryID uint64) error {
	entry, err := s.schoolInFamily(entryID, actor.FamilyID)
	if err != nil {
		return err
	}
	if !canManageEntry(actor, entry.MemberID) {
		return ErrScheduleNotOwnEntry
	}
	if err := s.scheduleRepo.DeleteSchool(entryID); err != nil {
		return fmt.Errorf("failed to delete school schedule entry: %w", err)
	}
	return nil
}

// ListSchool lists one member's school schedule.
func (s *ScheduleService) ListSchool(actor models.FamilyMember, memberID uint64) ([]models.SchoolSchedule, error) {
	if err := s.ensureFamilyMember(memberID, actor.FamilyID); err != nil {
		return nil, err
	}
	entries, err := s.scheduleRepo.ListSchoolByMember(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list school schedule: %w", err)
	}
	return entries, nil
}

// CreateBoardItem puts a new card on the family planning board.
func (s *ScheduleService) CreateBoardItem(actor models.FamilyMember, memberID uint64, title string, status models.BoardStatus) (*models.TaskBoardItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrBoardTitleRequired
	}
	if status == "" {
		status = models.BoardStatusTodo
	}
	if !validBoardStatus(status) {
		return nil, ErrInvalidBoardStatus
	}
	if err := s.ensureFamilyMember(memberID, actor.FamilyID); err != nil {
		return nil, err
	}

	item := &models.TaskBoardItem{
		FamilyID: actor.FamilyID,
		MemberID: memberID,
		Title:    title,
		Status:   status,
	}
	if err := s.scheduleRepo.CreateBoardItem(item); err != nil {
		return nil, fmt.Errorf("failed to create board item: %w", err)
	}
	return item, nil
}

// UpdateBoardItemInput represents a partial board card update.
type UpdateBoardItemInput struct {
	Actor    models.FamilyMember
	ItemID   uint64
	Title    *string
	Status   *models.BoardStatus
	MemberID *uint64
}

// UpdateBoardItem applies a partial update to a board card. Any family member
// may move cards; the board is a shared surface.
func (s *ScheduleService) UpdateBoardItem(input UpdateBoardItemInput) (*models.TaskBoardItem, error) {
	item, err := s.boardItemInFamily(input.ItemID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrBoardTitleRequired
		}
		item.Title = *input.Title
	}
	if input.Status != nil {
		if !validBoardStatus(*input.Status) {
			return nil, ErrInvalidBoardStatus
		}
		item.Status = *input.Status
	}
	if input.MemberID != nil {
		if err := s.ensureFamilyMember(*input.MemberID, input.Actor.FamilyID); err != nil {
			return nil, err
		}
		item.MemberID = *input.MemberID
	}

	if err := s.scheduleRepo.UpdateBoardItem(item); err != nil {
		return nil, fmt.Errorf("failed to update board item: %w", err)
	}
	return item, nil
}

// DeleteBoardItem removes a card from the board.
func (s *ScheduleService) DeleteBoardItem(actor models.FamilyMember, itemID uint64) error {
	if _, err := s.boardItemInFamily(itemID, actor.FamilyID); err != nil {
		return err
	}
	if err := s.scheduleRepo.DeleteBoardItem(itemID); err != nil {
		return fmt.Errorf("failed to delete board item: %w", err)
	}
	return nil
}

// ListBoard lists the family's board cards.
func (s *ScheduleService) ListBoard(actor models.FamilyMember) ([]models.TaskBoardItem, error) {
	items, err := s.scheduleRepo.ListBoardByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list board items: %w", err)
	}
	return items, nil
}

func (s *ScheduleService) workInFamily(entryID, familyID uint64) (*models.WorkSchedule, error) {
	entry, err := s.scheduleRepo.FindWork(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find work schedule entry: %w", err)
	}
	if entry.FamilyID != familyID {
		return nil, ErrScheduleNotFound
	}
	return entry, nil
}

func (s *ScheduleService) schoolInFamily(entryID, familyID uint64) (*models.SchoolSchedule, error) {
	entry, err := s.scheduleRepo.FindSchool(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("failed to find school schedule entry: %w", err)
	}
	if entry.FamilyID != familyID {
		return nil, ErrScheduleNotFound
	}
	return entry, nil
}

func (s *ScheduleService) boardItemInFamily(itemID, familyID uint64) (*models.TaskBoardItem, error) {
	item, err := s.scheduleRepo.FindBoardItem(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardItemNotFound
		}
		return nil, fmt.Errorf("failed to find board item: %w", err)
	}
	if item.FamilyID != familyID {
		return nil, ErrBoardItemNotFound
	}
	return item, nil
}

func (s *ScheduleService) ensureFamilyMember(memberID, familyID uint64) error {
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
