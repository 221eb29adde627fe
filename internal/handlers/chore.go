package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/flowfam/family-api/internal/dto"
	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ChoreHandler coordinates household-task HTTP handlers.
type ChoreHandler struct {
	choreService *services.ChoreService
}

// NewChoreHandler creates a new ChoreHandler.
func NewChoreHandler(choreService *services.ChoreService) *ChoreHandler {
	return &ChoreHandler{
		choreService: choreService,
	}
}

// ListChores returns the family's household tasks.
func (h *ChoreHandler) ListChores(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	chores, err := h.choreService.ListChores(member)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chores": dto.ToChoreDTOs(chores),
	})
}

// CreateChore creates a new household task.
func (h *ChoreHandler) CreateChore(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateChoreRequest struct {
		Name       string            `json:"name" binding:"required"`
		Icon       string            `json:"icon"`
		AssignedTo uint64            `json:"assigned_to" binding:"required"`
		Repeat     models.RepeatRule `json:"repeat"`
		DueDate    *time.Time        `json:"due_date"`
		TimeOfDay  string            `json:"time_of_day"`
	}

	var req CreateChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chore, err := h.choreService.CreateChore(services.CreateChoreInput{
		Actor:      member,
		Name:       req.Name,
		Icon:       req.Icon,
		AssignedTo: req.AssignedTo,
		Repeat:     req.Repeat,
		DueDate:    req.DueDate,
		TimeOfDay:  req.TimeOfDay,
	})
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChoreDTO(*chore))
}

// UpdateChore applies a partial update to a household task.
func (h *ChoreHandler) UpdateChore(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	choreID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateChoreInput{
		Actor:   member,
		ChoreID: choreID,
	}
	if name, ok := rawReq["name"].(string); ok {
		input.Name = &name
	}
	if icon, ok := rawReq["icon"].(string); ok {
		input.Icon = &icon
	}
	if assignedTo, ok := rawReq["assigned_to"].(float64); ok {
		v := uint64(assignedTo)
		input.AssignedTo = &v
	}
	if repeat, ok := rawReq["repeat"].(string); ok {
		v := models.RepeatRule(repeat)
		input.Repeat = &v
	}
	if timeOfDay, ok := rawReq["time_of_day"].(string); ok {
		input.TimeOfDay = &timeOfDay
	}
	if completed, ok := rawReq["completed"].(bool); ok {
		input.Completed = &completed
	}
	if raw, present := rawReq["due_date"]; present {
		if raw == nil {
			input.ClearDueDate = true
		} else if s, ok := raw.(string); ok {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}

	chore, err := h.choreService.UpdateChore(input)
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChoreDTO(*chore))
}

// DeleteChore removes a household task.
func (h *ChoreHandler) DeleteChore(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	choreID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.choreService.DeleteChore(member, choreID); err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Household task deleted successfully",
	})
}

// ChoresDueToday returns a member's open chores due today.
func (h *ChoreHandler) ChoresDueToday(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}

	chores, err := h.choreService.ChoresDueToday(member, memberID, time.Now())
	if err != nil {
		respondChoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"chores": dto.ToChoreDTOs(chores),
	})
}

func respondChoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidRepeatRule),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrChoreNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
