package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ibudget/internal/core"
)

func (s *Store) AddBudget(ctx context.Context, b *core.Budget) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (month, category_id, amount_base) VALUES (?, ?, ?)`,
		b.Month, b.CategoryID, b.AmountBase)
	if err != nil {
		return 0, fmt.Errorf("add budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add budget id: %w", err)
	}
	b.ID = id
	return id, nil
}

func (s *Store) PutBudget(ctx context.Context, b core.Budget) error {
	if b.ID == 0 {
		_, err := s.AddBudget(ctx, &b)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, month, category_id, amount_base) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			month = excluded.month,
			category_id = excluded.category_id,
			amount_base = excluded.amount_base`,
		b.ID, b.Month, b.CategoryID, b.AmountBase)
	if err != nil {
		return fmt.Errorf("put budget %d: %w", b.ID, err)
	}
	return nil
}

func (s *Store) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	var b core.Budget
	err := s.db.QueryRowContext(ctx,
		`SELECT id, month, category_id, amount_base FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.Month, &b.CategoryID, &b.AmountBase)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget %d: %w", id, err)
	}
	return b, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id int64) error {
	err := deleted(s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id))
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete budget %d: %w", id, err)
	}
	return nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT id, month, category_id, amount_base FROM budgets ORDER BY id`)
}

// BudgetsByMonth is the indexed lookup backing the budget page and the
// duplicate check at budget creation.
func (s *Store) BudgetsByMonth(ctx context.Context, month string) ([]core.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT id, month, category_id, amount_base FROM budgets WHERE month = ? ORDER BY id`, month)
}

func (s *Store) queryBudgets(ctx context.Context, query string, args ...any) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Month, &b.CategoryID, &b.AmountBase); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return out, nil
}
