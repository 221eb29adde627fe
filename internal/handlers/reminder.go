package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/flowfam/family-api/internal/dto"
	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// maxPhotoSize caps reminder photo uploads at 10 MB.
const maxPhotoSize = 10 << 20

// ReminderHandler coordinates reminder HTTP handlers.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// ListReminders returns the family's reminders.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminders, err := h.reminderService.ListReminders(member)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": dto.ToReminderDTOs(reminders),
	})
}

// GetReminder returns one reminder.
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	reminder, err := h.reminderService.GetReminder(member, reminderID)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderDTO(*reminder))
}

// CreateReminder creates a new reminder.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateReminderRequest struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		Date        time.Time `json:"date" binding:"required"`
		TimeOfDay   string    `json:"time_of_day"`
		AssignedTo  []uint64  `json:"assigned_to"`
		PhotoPath   string    `json:"photo_path"`
	}

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reminder, err := h.reminderService.CreateReminder(services.CreateReminderInput{
		Actor:       member,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		TimeOfDay:   req.TimeOfDay,
		AssignedTo:  req.AssignedTo,
		PhotoPath:   req.PhotoPath,
	})
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReminderDTO(*reminder))
}

// UpdateReminder applies a partial update to a reminder.
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateReminderInput{
		Actor:      member,
		ReminderID: reminderID,
	}
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if dateStr, ok := rawReq["date"].(string); ok {
		parsed, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date")
			return
		}
		input.Date = &parsed
	}
	if timeOfDay, ok := rawReq["time_of_day"].(string); ok {
		input.TimeOfDay = &timeOfDay
	}
	if completed, ok := rawReq["completed"].(bool); ok {
		input.Completed = &completed
	}
	if photoPath, ok := rawReq["photo_path"].(string); ok {
		input.PhotoPath = &photoPath
	}
	if rawAssigned, ok := rawReq["assigned_to"].([]any); ok {
		assignedTo := make([]uint64, 0, len(rawAssigned))
		for _, raw := range rawAssigned {
			id, ok := raw.(float64)
			if !ok {
				apierrors.BadRequest(c, "Invalid assigned_to")
				return
			}
			assignedTo = append(assignedTo, uint64(id))
		}
		input.AssignedTo = assignedTo
	}

	reminder, err := h.reminderService.UpdateReminder(input)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderDTO(*reminder))
}

// DeleteReminder removes a reminder.
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.reminderService.DeleteReminder(member, reminderID); err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reminder deleted successfully",
	})
}

// UploadPhoto attaches a photo to a reminder.
func (h *ReminderHandler) UploadPhoto(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		apierrors.BadRequest(c, "Photo is required")
		return
	}
	if fileHeader.Size > maxPhotoSize {
		apierrors.BadRequest(c, "Photo too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		apierrors.InternalError(c, "Failed to read upload")
		return
	}

	reminder, err := h.reminderService.AttachPhoto(member, reminderID, data)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderDTO(*reminder))
}

// DownloadPhoto streams the photo attached to a reminder.
func (h *ReminderHandler) DownloadPhoto(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminderID, ok := idParam(c, "id")
	if !ok {
		return
	}

	data, err := h.reminderService.DownloadPhoto(member, reminderID)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

// PhotoBook returns the family's photographed reminders for export.
func (h *ReminderHandler) PhotoBook(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	reminders, err := h.reminderService.PhotoBook(member)
	if err != nil {
		respondReminderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": dto.ToReminderDTOs(reminders),
	})
}

func respondReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReminderTitleRequired),
		errors.Is(err, services.ErrReminderDateRequired),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrReminderNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
