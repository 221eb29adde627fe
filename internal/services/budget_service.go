package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPotNotFound        = errors.New("budget pot not found")
	ErrBudgetItemNotFound = errors.New("budget item not found")
	ErrBudgetNameRequired = errors.New("budget name is required")
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrInvalidItemKind    = errors.New("kind must be income or fixed_expense")
)

// BudgetService handles the monthly family budget: pots with spending and
// recurring income/fixed-expense lines.
type BudgetService struct {
	budgetRepo repository.BudgetRepository
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo repository.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

// CreatePot creates a budget pot in the actor's family.
func (s *BudgetService) CreatePot(actor models.FamilyMember, name string, budget float64) (*models.BudgetPot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBudgetNameRequired
	}
	if budget < 0 {
		return nil, ErrNegativeAmount
	}

	pot := &models.BudgetPot{
		FamilyID: actor.FamilyID,
		Name:     name,
		Budget:   budget,
	}
	if err := s.budgetRepo.CreatePot(pot); err != nil {
		return nil, fmt.Errorf("failed to create pot: %w", err)
	}
	return pot, nil
}

// UpdatePotInput represents a partial pot update.
type UpdatePotInput struct {
	Actor  models.FamilyMember
	PotID  uint64
	Name   *string
	Budget *float64
	Spent  *float64
}

// UpdatePot applies a partial update to a pot.
func (s *BudgetService) UpdatePot(input UpdatePotInput) (*models.BudgetPot, error) {
	pot, err := s.potInFamily(input.PotID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrBudgetNameRequired
		}
		pot.Name = *input.Name
	}
	if input.Budget != nil {
		if *input.Budget < 0 {
			return nil, ErrNegativeAmount
		}
		pot.Budget = *input.Budget
	}
	if input.Spent != nil {
		if *input.Spent < 0 {
			return nil, ErrNegativeAmount
		}
		pot.Spent = *input.Spent
	}

	if err := s.budgetRepo.UpdatePot(pot); err != nil {
		return nil, fmt.Errorf("failed to update pot: %w", err)
	}
	return pot, nil
}

// DeletePot removes a pot from the actor's family.
func (s *BudgetService) DeletePot(actor models.FamilyMember, potID uint64) error {
	if _, err := s.potInFamily(potID, actor.FamilyID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeletePot(potID); err != nil {
		return fmt.Errorf("failed to delete pot: %w", err)
	}
	return nil
}

// CreateItem creates an income or fixed-expense line in the actor's family.
func (s *BudgetService) CreateItem(actor models.FamilyMember, kind models.BudgetItemKind, name string, amount float64) (*models.BudgetItem, error) {
	if kind != models.BudgetItemIncome && kind != models.BudgetItemFixedExpense {
		return nil, ErrInvalidItemKind
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrBudgetNameRequired
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	item := &models.BudgetItem{
		FamilyID: actor.FamilyID,
		Kind:     kind,
		Name:     name,
		Amount:   amount,
	}
	if err := s.budgetRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to create budget item: %w", err)
	}
	return item, nil
}

// UpdateItemInput represents a partial budget item update.
type UpdateItemInput struct {
	Actor  models.FamilyMember
	ItemID uint64
	Name   *string
	Amount *float64
}

// UpdateItem applies a partial update to a budget item.
func (s *BudgetService) UpdateItem(input UpdateItemInput) (*models.BudgetItem, error) {
	item, err := s.itemInFamily(input.ItemID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrBudgetNameRequired
		}
		item.Name = *input.Name
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, ErrNegativeAmount
		}
		item.Amount = *input.Amount
	}

	if err := s.budgetRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to update budget item: %w", err)
	}
	return item, nil
}

// DeleteItem removes a budget item from the actor's family.
func (s *BudgetService) DeleteItem(actor models.FamilyMember, itemID uint64) error {
	if _, err := s.itemInFamily(itemID, actor.FamilyID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteItem(itemID); err != nil {
		return fmt.Errorf("failed to delete budget item: %w", err)
	}
	return nil
}

// Overview returns the pots, the items and the derived summary.
func (s *BudgetService) Overview(actor models.FamilyMember) ([]models.BudgetPot, []models.BudgetItem, BudgetSummary, error) {
	pots, err := s.budgetRepo.ListPots(actor.FamilyID)
	if err != nil {
		return nil, nil, BudgetSummary{}, fmt.Errorf("failed to list pots: %w", err)
	}

	items, err := s.budgetRepo.ListItems(actor.FamilyID)
	if err != nil {
		return nil, nil, BudgetSummary{}, fmt.Errorf("failed to list budget items: %w", err)
	}

	return pots, items, SummarizeBudget(items, pots), nil
}

func (s *BudgetService) potInFamily(potID, familyID uint64) (*models.BudgetPot, error) {
	pot, err := s.budgetRepo.FindPot(potID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPotNotFound
		}
		return nil, fmt.Errorf("failed to find pot: %w", err)
	}
	if pot.FamilyID != familyID {
		return nil, ErrPotNotFound
	}
	return pot, nil
}

func (s *BudgetService) itemInFamily(itemID, familyID uint64) (*models.BudgetItem, error) {
	item, err := s.budgetRepo.FindItem(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetItemNotFound
		}
		return nil, fmt.Errorf("failed to find budget item: %w", err)
	}
	if item.FamilyID != familyID {
		return nil, ErrBudgetItemNotFound
	}
	return item, nil
}
