package handlers

import (
	"errors"
	"net/http"
	"time"

	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ScheduleHandler coordinates weekly schedule and planning board handlers.
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

// ListWork returns a member's weekly work schedule.
func (h *ScheduleHandler) ListWork(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}

	entries, err := h.scheduleService.ListWork(member, memberID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
	})
}

// CreateWork creates a work schedule entry.
func (h *ScheduleHandler) CreateWork(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateWorkRequest struct {
		MemberID  uint64 `json:"member_id" binding:"required"`
		Weekday   int    `json:"weekday"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Note      string `json:"note"`
	}

	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.scheduleService.CreateWork(services.CreateWorkInput{
		Actor:     member,
		MemberID:  req.MemberID,
		Weekday:   time.Weekday(req.Weekday),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateWork applies a partial update to a work schedule entry.
func (h *ScheduleHandler) UpdateWork(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateWorkInput{
		Actor:   member,
		EntryID: entryID,
	}
	if weekday, ok := rawReq["weekday"].(float64); ok {
		v := time.Weekday(int(weekday))
		input.Weekday = &v
	}
	if startTime, ok := rawReq["start_time"].(string); ok {
		input.StartTime = &startTime
	}
	if endTime, ok := rawReq["end_time"].(string); ok {
		input.EndTime = &endTime
	}
	if note, ok := rawReq["note"].(string); ok {
		input.Note = &note
	}

	entry, err := h.scheduleService.UpdateWork(input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteWork removes a work schedule entry.
func (h *ScheduleHandler) DeleteWork(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteWork(member, entryID); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule entry deleted successfully",
	})
}

// ListSchool returns a member's weekly school schedule.
func (h *ScheduleHandler) ListSchool(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}

	entries, err := h.scheduleService.ListSchool(member, memberID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
	})
}

// CreateSchool creates a school schedule entry.
func (h *ScheduleHandler) CreateSchool(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateSchoolRequest struct {
		MemberID  uint64 `json:"member_id" binding:"required"`
		Weekday   int    `json:"weekday"`
		Subject   string `json:"subject" binding:"required"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}

	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.scheduleService.CreateSchool(services.CreateSchoolInput{
		Actor:     member,
		MemberID:  req.MemberID,
		Weekday:   time.Weekday(req.Weekday),
		Subject:   req.Subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateSchool applies a partial update to a school schedule entry.
func (h *ScheduleHandler) UpdateSchool(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateSchoolInput{
		Actor:   member,
		EntryID: entryID,
	}
	if weekday, ok := rawReq["weekday"].(float64); ok {
		v := time.Weekday(int(weekday))
		input.Weekday = &v
	}
	if subject, ok := rawReq["subject"].(string); ok {
		input.Subject = &subject
	}
	if startTime, ok := rawReq["start_time"].(string); ok {
		input.StartTime = &startTime
	}
	if endTime, ok := rawReq["end_time"].(string); ok {
		input.EndTime = &endTime
	}

	entry, err := h.scheduleService.UpdateSchool(input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteSchool removes a school schedule entry.
func (h *ScheduleHandler) DeleteSchool(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	entryID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSchool(member, entryID); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule entry deleted successfully",
	})
}

// ListBoard returns the family's planning board.
func (h *ScheduleHandler) ListBoard(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	items, err := h.scheduleService.ListBoard(member)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
	})
}

// CreateBoardItem puts a new card on the board.
func (h *ScheduleHandler) CreateBoardItem(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateBoardItemRequest struct {
		MemberID uint64             `json:"member_id" binding:"required"`
		Title    string             `json:"title" binding:"required"`
		Status   models.BoardStatus `json:"status"`
	}

	var req CreateBoardItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.scheduleService.CreateBoardItem(member, req.MemberID, req.Title, req.Status)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateBoardItem applies a partial update to a board card.
func (h *ScheduleHandler) UpdateBoardItem(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateBoardItemInput{
		Actor:  member,
		ItemID: itemID,
	}
	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if status, ok := rawReq["status"].(string); ok {
		v := models.BoardStatus(status)
		input.Status = &v
	}
	if memberID, ok := rawReq["member_id"].(float64); ok {
		v := uint64(memberID)
		input.MemberID = &v
	}

	item, err := h.scheduleService.UpdateBoardItem(input)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteBoardItem removes a card from the board.
func (h *ScheduleHandler) DeleteBoardItem(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteBoardItem(member, itemID); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board item deleted successfully",
	})
}

func respondScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidWeekday),
		errors.Is(err, services.ErrInvalidBoardStatus),
		errors.Is(err, services.ErrBoardTitleRequired),
		errors.Is(err, services.ErrSubjectRequired),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrScheduleNotFound),
		errors.Is(err, services.ErrBoardItemNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrScheduleNotOwnEntry):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
