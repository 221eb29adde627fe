package dto

import (
	"time"

	"github.com/flowfam/family-api/internal/models"
)

// UserDTO represents a login account in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// FamilyDTO represents a family in API responses
type FamilyDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	JoinCode string `json:"join_code,omitempty"`
}

// FamilyMemberDTO represents a family member in API responses
type FamilyMemberDTO struct {
	ID        uint64            `json:"id"`
	FamilyID  uint64            `json:"family_id"`
	UserID    *uint64           `json:"user_id,omitempty"`
	Name      string            `json:"name"`
	Role      models.MemberRole `json:"role"`
	Color     string            `json:"color"`
	PhotoPath string            `json:"photo_path,omitempty"`
	Coins     int               `json:"coins"`
	CreatedAt time.Time         `json:"created_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

// ToFamilyDTO converts a Family model to FamilyDTO. The join code only goes
// out to members of the family itself.
func ToFamilyDTO(family models.Family, includeJoinCode bool) FamilyDTO {
	dto := FamilyDTO{
		ID:   family.ID,
		Name: family.Name,
	}
	if includeJoinCode {
		dto.JoinCode = family.JoinCode
	}
	return dto
}

// ToFamilyMemberDTO converts a FamilyMember model to FamilyMemberDTO
func ToFamilyMemberDTO(member models.FamilyMember) FamilyMemberDTO {
	return FamilyMemberDTO{
		ID:        member.ID,
		FamilyID:  member.FamilyID,
		UserID:    member.UserID,
		Name:      member.Name,
		Role:      member.Role,
		Color:     member.Color,
		PhotoPath: member.PhotoPath,
		Coins:     member.Coins,
		CreatedAt: member.CreatedAt,
	}
}

// ToFamilyMemberDTOs converts a slice of members
func ToFamilyMemberDTOs(members []models.FamilyMember) []FamilyMemberDTO {
	dtos := make([]FamilyMemberDTO, len(members))
	for i, member := range members {
		dtos[i] = ToFamilyMemberDTO(member)
	}
	return dtos
}
