package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/flowfam/family-api/internal/errors"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/services"
	"github.com/gin-gonic/gin"
)

// BudgetHandler coordinates budget HTTP handlers.
type BudgetHandler struct {
	budgetService *services.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// Overview returns the pots, the recurring items and the derived summary.
func (h *BudgetHandler) Overview(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	pots, items, summary, err := h.budgetService.Overview(member)
	if err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pots":    pots,
		"items":   items,
		"summary": summary,
	})
}

// CreatePot creates a budget pot.
func (h *BudgetHandler) CreatePot(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreatePotRequest struct {
		Name   string  `json:"name" binding:"required"`
		Budget float64 `json:"budget"`
	}

	var req CreatePotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pot, err := h.budgetService.CreatePot(member, req.Name, req.Budget)
	if err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, pot)
}

// UpdatePot applies a partial update to a pot.
func (h *BudgetHandler) UpdatePot(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	potID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdatePotInput{
		Actor: member,
		PotID: potID,
	}
	if name, ok := rawReq["name"].(string); ok {
		input.Name = &name
	}
	if budget, ok := rawReq["budget"].(float64); ok {
		input.Budget = &budget
	}
	if spent, ok := rawReq["spent"].(float64); ok {
		input.Spent = &spent
	}

	pot, err := h.budgetService.UpdatePot(input)
	if err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, pot)
}

// DeletePot removes a pot.
func (h *BudgetHandler) DeletePot(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	potID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.budgetService.DeletePot(member, potID); err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pot deleted successfully",
	})
}

// CreateItem creates an income or fixed-expense line.
func (h *BudgetHandler) CreateItem(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	type CreateItemRequest struct {
		Kind   models.BudgetItemKind `json:"kind" binding:"required"`
		Name   string                `json:"name" binding:"required"`
		Amount float64               `json:"amount"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.budgetService.CreateItem(member, req.Kind, req.Name, req.Amount)
	if err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem applies a partial update to a budget item.
func (h *BudgetHandler) UpdateItem(c *gin.Context) {
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

	input := services.UpdateItemInput{
		Actor:  member,
		ItemID: itemID,
	}
	if name, ok := rawReq["name"].(string); ok {
		input.Name = &name
	}
	if amount, ok := rawReq["amount"].(float64); ok {
		input.Amount = &amount
	}

	item, err := h.budgetService.UpdateItem(input)
	if err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes a budget item.
func (h *BudgetHandler) DeleteItem(c *gin.Context) {
	member, ok := currentMember(c)
	if !ok {
		return
	}

	itemID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.budgetService.DeleteItem(member, itemID); err != nil {
		respondBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Budget item deleted successfully",
	})
}

func respondBudgetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBudgetNameRequired),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrInvalidItemKind):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPotNotFound),
		errors.Is(err, services.ErrBudgetItemNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
