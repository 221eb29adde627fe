package handlers

import (
	"errors"
	"net/http"

	"github.com/flowfam/family-api/internal/dto"
	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/middleware"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// FamilyHandler coordinates family directory HTTP handlers.
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler.
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

// CreateFamily creates a family with the caller as its first parent.
func (h *FamilyHandler) CreateFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateFamilyRequest struct {
		Name        string `json:"name" binding:"required"`
		MemberName  string `json:"member_name" binding:"required"`
		MemberColor string `json:"member_color"`
	}

	var req CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, member, err := h.familyService.CreateFamily(services.CreateFamilyInput{
		Name:        req.Name,
		UserID:      userID,
		MemberName:  req.MemberName,
		MemberColor: req.MemberColor,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"family": dto.ToFamilyDTO(*family, true),
		"member": dto.ToFamilyMemberDTO(*member),
	})
}

// JoinFamily adds the caller to the family matching the join code.
func (h *FamilyHandler) JoinFamily(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinFamilyRequest struct {
		Code        string `json:"code" binding:"required"`
		MemberName  string `json:"member_name" binding:"required"`
		MemberColor string `json:"member_color"`
	}

	var req JoinFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	family, member, err := h.familyService.JoinFamily(services.JoinFamilyInput{
		UserID:      userID,
		Code:        req.Code,
		MemberName:  req.MemberName,
		MemberColor: req.MemberColor,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"family": dto.ToFamilyDTO(*family, true),
		"member": dto.ToFamilyMemberDTO(*member),
	})
}

// GetFamily returns the caller's family with its full roster.
func (h *FamilyHandler) GetFamily(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	family, members, err := h.familyService.GetFamilyWithMembers(member.FamilyID)
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"family":  dto.ToFamilyDTO(*family, true),
		"members": dto.ToFamilyMemberDTOs(members),
	})
}

// InviteParent mails the join code to a second parent.
func (h *FamilyHandler) InviteParent(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.familyService.InviteParent(c.Request.Context(), member, req.Email); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite sent",
	})
}

// AddMember adds a member to the caller's family. Parents only.
func (h *FamilyHandler) AddMember(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		Name  string            `json:"name" binding:"required"`
		Role  models.MemberRole `json:"role" binding:"required"`
		Color string            `json:"color"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.familyService.AddMember(services.AddMemberInput{
		Actor: member,
		Name:  req.Name,
		Role:  req.Role,
		Color: req.Color,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFamilyMemberDTO(*created))
}

// UpdateMember applies a partial update to a member.
func (h *FamilyHandler) UpdateMember(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	type UpdateMemberRequest struct {
		Name      *string            `json:"name"`
		Color     *string            `json:"color"`
		PhotoPath *string            `json:"photo_path"`
		Role      *models.MemberRole `json:"role"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.familyService.UpdateMember(services.UpdateMemberInput{
		Actor:     member,
		MemberID:  memberID,
		Name:      req.Name,
		Color:     req.Color,
		PhotoPath: req.PhotoPath,
		Role:      req.Role,
	})
	if err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFamilyMemberDTO(*updated))
}

// DeleteMember removes a member from the caller's family. Parents only.
func (h *FamilyHandler) DeleteMember(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.familyService.DeleteMember(member, memberID); err != nil {
		respondFamilyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member deleted successfully",
	})
}

func respondFamilyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidFamilyName),
		errors.Is(err, services.ErrInvalidMemberName),
		errors.Is(err, services.ErrInvalidJoinCode),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyFamilyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrJoinCodeNotFound),
		errors.Is(err, services.ErrFamilyNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotParent),
		errors.Is(err, services.ErrRoleChangeNotSelf):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrJoinCodeGenerationFailed):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
