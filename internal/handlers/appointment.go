package handlers

import (
	"errors"
	"net/http"
	"time"

	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/services"
	"github.com/flowfam/family-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// AppointmentHandler coordinates family calendar HTTP handlers.
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// ListAppointments returns the family's appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	appts, total, err := h.appointmentService.ListAppointments(member, params)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": appts,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// TodaysAgenda returns the appointments falling on the requested day sorted
// by time of day. Defaults to today; an optional "date" query (YYYY-MM-DD)
// selects another day.
func (h *AppointmentHandler) TodaysAgenda(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid date")
			return
		}
		day = parsed
	}

	agenda, err := h.appointmentService.AgendaForDay(member, day)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": agenda,
	})
}

// CreateAppointment creates a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateAppointmentRequest struct {
		Title     string    `json:"title" binding:"required"`
		Location  string    `json:"location"`
		Date      time.Time `json:"date" binding:"required"`
		TimeOfDay string    `json:"time_of_day"`
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	appt, err := h.appointmentService.CreateAppointment(services.CreateAppointmentInput{
		Actor:     member,
		Title:     req.Title,
		Location:  req.Location,
		Date:      req.Date,
		TimeOfDay: req.TimeOfDay,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointment applies a partial update to an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	apptID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateAppointmentInput{
		Actor:         member,
		AppointmentID: apptID,
	}
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if location, ok := rawReq["location"].(string); ok {
		input.Location = &location
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

	appt, err := h.appointmentService.UpdateAppointment(input)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment removes an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	apptID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.appointmentService.DeleteAppointment(member, apptID); err != nil {
		respondAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Appointment deleted successfully",
	})
}

func respondAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAppointmentTitleRequired),
		errors.Is(err, services.ErrAppointmentDateRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAppointmentNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
