package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// NotificationHandler coordinates notification settings HTTP handlers.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListSettings returns the caller's notification settings.
func (h *NotificationHandler) ListSettings(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	settings, err := h.notificationService.ListSettings(member)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
	})
}

// UpdateSetting changes one notification setting and reconciles pending
// deliveries with the dispatcher.
func (h *NotificationHandler) UpdateSetting(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type UpdateSettingRequest struct {
		Type      models.NotificationType `json:"type" binding:"required"`
		Enabled   bool                    `json:"enabled"`
		TimeOfDay string                  `json:"time_of_day"`
	}

	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	setting, err := h.notificationService.UpdateSetting(c.Request.Context(), services.UpdateSettingInput{
		Actor:     member,
		Type:      req.Type,
		Enabled:   req.Enabled,
		TimeOfDay: req.TimeOfDay,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, setting)
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidNotificationType),
		errors.Is(err, services.ErrInvalidTimeOfDay):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
