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

// TaskHandler coordinates reward-task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the family's tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(member)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns one task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(member, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Name       string            `json:"name" binding:"required"`
		Icon       string            `json:"icon"`
		Coins      int               `json:"coins"`
		AssignedTo uint64            `json:"assigned_to" binding:"required"`
		Repeat     models.RepeatRule `json:"repeat"`
		DueDate    *time.Time        `json:"due_date"`
		TimeOfDay  string            `json:"time_of_day"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Actor:      member,
		Name:       req.Name,
		Icon:       req.Icon,
		Coins:      req.Coins,
		AssignedTo: req.AssignedTo,
		Repeat:     req.Repeat,
		DueDate:    req.DueDate,
		TimeOfDay:  req.TimeOfDay,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	// Parse raw JSON to tell an absent due_date from an explicit null.
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Actor:  member,
		TaskID: taskID,
	}
	if name, ok := rawReq["name"].(string); ok {
		input.Name = &name
	}
	if icon, ok := rawReq["icon"].(string); ok {
		input.Icon = &icon
	}
	if coins, ok := rawReq["coins"].(float64); ok {
		v := int(coins)
		input.Coins = &v
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

	task, err := h.taskService.UpdateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(member, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// CompleteTask marks a task completed and credits the assignee's coins.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	taskID, ok := idParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.CompleteTask(member, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// TasksDueToday returns a member's open tasks due today.
func (h *TaskHandler) TasksDueToday(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}

	tasks, err := h.taskService.TasksDueToday(member, memberID, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// MemberDashboard returns a member's tasks due today plus their coin balance.
func (h *TaskHandler) MemberDashboard(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}

	tasks, target, err := h.taskService.MemberDashboard(member, memberID, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member": dto.ToFamilyMemberDTO(*target),
		"tasks":  dto.ToTaskDTOs(tasks),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrNegativeCoins),
		errors.Is(err, services.ErrInvalidRepeatRule),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
