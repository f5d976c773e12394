package services

import (
	"context"
	"fmt"

	"ibudget/internal/core"
	"ibudget/internal/storage"
)

// BudgetService guards the one-budget-per-category-per-month rule. The store
// itself does not enforce it, so creation goes through here.
type BudgetService struct {
	storage *storage.Store
}

func NewBudgetService(storage *storage.Store) *BudgetService {
	return &BudgetService{storage: storage}
}

// Create validates b and inserts it unless the month already has a budget for
// the same category, in which case core.ErrBudgetExists comes back and
// nothing is written.
func (s *BudgetService) Create(ctx context.Context, b *core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	existing, err := s.storage.BudgetsByMonth(ctx, b.Month)
	if err != nil {
		return 0, fmt.Errorf("check existing budgets: %w", err)
	}
	for _, other := range existing {
		if other.CategoryID == b.CategoryID && other.ID != b.ID {
			return 0, core.ErrBudgetExists
		}
	}
	id, err := s.storage.AddBudget(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("create budget: %w", err)
	}
	return id, nil
}

// Update rewrites an existing budget, rechecking the uniqueness rule in case
// the month or category moved.
func (s *BudgetService) Update(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	existing, err := s.storage.BudgetsByMonth(ctx, b.Month)
	if err != nil {
		return fmt.Errorf("check existing budgets: %w", err)
	}
	for _, other := range existing {
		if other.CategoryID == b.CategoryID && other.ID != b.ID {
			return core.ErrBudgetExists
		}
	}
	return s.storage.PutBudget(ctx, b)
}

func (s *BudgetService) List(ctx context.Context, month string) ([]core.Budget, error) {
	if month == "" {
		return s.storage.ListBudgets(ctx)
	}
	return s.storage.BudgetsByMonth(ctx, month)
}

func (s *BudgetService) Delete(ctx context.Context, id int64) error {
	return s.storage.DeleteBudget(ctx, id)
}
