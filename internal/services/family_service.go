package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/flowfam/family-api/internal/authz"
	"github.com/flowfam/family-api/internal/constants"
	"github.com/flowfam/family-api/internal/mail"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrFamilyNotFound           = errors.New("family not found")
	ErrInvalidFamilyName        = errors.New("family name cannot be empty")
	ErrInvalidMemberName        = errors.New("member name cannot be empty")
	ErrInvalidJoinCode          = errors.New("join code must be 6 letters or digits")
	ErrJoinCodeNotFound         = errors.New("no family matches this join code")
	ErrJoinCodeGenerationFailed = errors.New("failed to generate a unique join code")
	ErrAlreadyFamilyMember      = errors.New("user already belongs to a family")
	ErrMemberNotFound           = errors.New("family member not found")
	ErrNotParent                = errors.New("only parents can manage the family directory")
	ErrRoleChangeNotSelf        = errors.New("members can only change their own role")
	ErrInvalidRole              = errors.New("role must be parent or child")
)

var joinCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// FamilyService owns the family directory: the roster of members, their
// roles, colors and coin balances.
type FamilyService struct {
	familyRepo repository.FamilyRepository
	mailer     *mail.Mailer
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(familyRepo repository.FamilyRepository, mailer *mail.Mailer) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		mailer:     mailer,
	}
}

// CreateFamilyInput represents parameters to create a family with its first parent.
type CreateFamilyInput struct {
	Name        string
	UserID      uint64
	MemberName  string
	MemberColor string
}

// CreateFamily creates a family with a fresh join code and its first parent
// member. Code generation retries on collision up to a fixed attempt cap.
func (s *FamilyService) CreateFamily(input CreateFamilyInput) (*models.Family, *models.FamilyMember, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, nil, ErrInvalidFamilyName
	}
	if strings.TrimSpace(input.MemberName) == "" {
		return nil, nil, ErrInvalidMemberName
	}

	if _, err := s.familyRepo.FindMemberByUserID(input.UserID); err == nil {
		return nil, nil, ErrAlreadyFamilyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	code, err := s.uniqueJoinCode()
	if err != nil {
		return nil, nil, err
	}

	family := &models.Family{
		Name:     input.Name,
		JoinCode: code,
	}

	userID := input.UserID
	member := &models.FamilyMember{
		UserID: &userID,
		Name:   input.MemberName,
		Role:   models.RoleParent,
		Color:  input.MemberColor,
	}

	if err := s.familyRepo.CreateWithFirstParent(family, member); err != nil {
		return nil, nil, fmt.Errorf("failed to create family: %w", err)
	}

	return family, member, nil
}

func (s *FamilyService) uniqueJoinCode() (string, error) {
	for attempt := 0; attempt < constants.JoinCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return "", ErrJoinCodeGenerationFailed
		}

		exists, err := s.familyRepo.JoinCodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrJoinCodeGenerationFailed
}

// JoinFamilyInput represents parameters to join an existing family by code.
type JoinFamilyInput struct {
	UserID      uint64
	Code        string
	MemberName  string
	MemberColor string
}

// JoinFamily adds the user as a parent member of the family matching the
// code. Codes match case-insensitively; nothing changes on a failed lookup.
func (s *FamilyService) JoinFamily(input JoinFamilyInput) (*models.Family, *models.FamilyMember, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if !joinCodePattern.MatchString(code) {
		return nil, nil, ErrInvalidJoinCode
	}
	if strings.TrimSpace(input.MemberName) == "" {
		return nil, nil, ErrInvalidMemberName
	}

	if _, err := s.familyRepo.FindMemberByUserID(input.UserID); err == nil {
		return nil, nil, ErrAlreadyFamilyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	family, err := s.familyRepo.FindByJoinCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrJoinCodeNotFound
		}
		return nil, nil, fmt.Errorf("failed to find family by join code: %w", err)
	}

	userID := input.UserID
	member := &models.FamilyMember{
		FamilyID: family.ID,
		UserID:   &userID,
		Name:     input.MemberName,
		Role:     models.RoleParent,
		Color:    input.MemberColor,
	}

	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, nil, fmt.Errorf("failed to add member: %w", err)
	}

	return family, member, nil
}

// GetFamilyWithMembers returns a family and its full roster.
func (s *FamilyService) GetFamilyWithMembers(familyID uint64) (*models.Family, []models.FamilyMember, error) {
	family, err := s.familyRepo.FindByID(familyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFamilyNotFound
		}
		return nil, nil, fmt.Errorf("failed to find family: %w", err)
	}

	members, err := s.familyRepo.ListMembers(familyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	return family, members, nil
}

// AddMemberInput represents parameters for a parent adding a member.
type AddMemberInput struct {
	Actor  models.FamilyMember
	Name   string
	Role   models.MemberRole
	Color  string
	UserID *uint64
}

// AddMember adds a member to the actor's family. Parents only; children are
// created without a linked login account.
func (s *FamilyService) AddMember(input AddMemberInput) (*models.FamilyMember, error) {
	if !authz.CanManageFamily(input.Actor) {
		return nil, ErrNotParent
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidMemberName
	}
	if input.Role != models.RoleParent && input.Role != models.RoleChild {
		return nil, ErrInvalidRole
	}

	userID := input.UserID
	if input.Role == models.RoleChild {
		// Children never authenticate on their own.
		userID = nil
	}

	member := &models.FamilyMember{
		FamilyID: input.Actor.FamilyID,
		UserID:   userID,
		Name:     input.Name,
		Role:     input.Role,
		Color:    input.Color,
	}

	if err := s.familyRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// UpdateMemberInput represents a partial member update.
type UpdateMemberInput struct {
	Actor     models.FamilyMember
	MemberID  uint64
	Name      *string
	Color     *string
	PhotoPath *string
	Role      *models.MemberRole
}

// UpdateMember applies a partial update. Directory mutations are parent-only,
// except that any member may edit themself; role changes are self-service
// only and never allowed on another member.
func (s *FamilyService) UpdateMember(input UpdateMemberInput) (*models.FamilyMember, error) {
	editingSelf := input.Actor.ID == input.MemberID
	if !editingSelf && !authz.CanManageFamily(input.Actor) {
		return nil, ErrNotParent
	}

	member, err := s.memberInFamily(input.MemberID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !authz.CanChangeRole(input.Actor.ID, member.ID) {
			return nil, ErrRoleChangeNotSelf
		}
		if *input.Role != models.RoleParent && *input.Role != models.RoleChild {
			return nil, ErrInvalidRole
		}
		member.Role = *input.Role
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidMemberName
		}
		member.Name = *input.Name
	}
	if input.Color != nil {
		member.Color = *input.Color
	}
	if input.PhotoPath != nil {
		member.PhotoPath = *input.PhotoPath
	}

	if err := s.familyRepo.UpdateMember(member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// DeleteMember removes a member from the actor's family. Parents only. The
// member disappears from every reminder assignment list and their tasks go
// with them.
func (s *FamilyService) DeleteMember(actor models.FamilyMember, memberID uint64) error {
	if !authz.CanManageFamily(actor) {
		return ErrNotParent
	}

	if _, err := s.memberInFamily(memberID, actor.FamilyID); err != nil {
		return err
	}

	if err := s.familyRepo.DeleteMember(memberID); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return nil
}

// InviteParent mails the family join code to a second parent. Parents only.
func (s *FamilyService) InviteParent(ctx context.Context, actor models.FamilyMember, email string) error {
	if !authz.CanManageFamily(actor) {
		return ErrNotParent
	}
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}

	family, err := s.familyRepo.FindByID(actor.FamilyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFamilyNotFound
		}
		return fmt.Errorf("failed to find family: %w", err)
	}

	if err := s.mailer.SendJoinInvite(ctx, email, family.Name, family.JoinCode); err != nil {
		return fmt.Errorf("failed to send invite: %w", err)
	}

	return nil
}

// memberInFamily loads a member and hides members of other families behind
// not-found.
func (s *FamilyService) memberInFamily(memberID, familyID uint64) (*models.FamilyMember, error) {
	member, err := s.familyRepo.FindMember(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member.FamilyID != familyID {
		return nil, ErrMemberNotFound
	}
	return member, nil
}
