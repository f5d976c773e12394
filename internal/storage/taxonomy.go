package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ibudget/internal/core"
)

// Categories and subcategories. Deleting a category does not cascade: any
// subcategories and transactions that point at it keep their dangling
// references, and the read side resolves those to "unknown".

func (s *Store) AddCategory(ctx context.Context, c *core.Category) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, parent_id) VALUES (?, ?)`,
		c.Name, nullID(c.ParentID))
	if err != nil {
		return 0, fmt.Errorf("add category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add category id: %w", err)
	}
	c.ID = id
	return id, nil
}

func (s *Store) PutCategory(ctx context.Context, c core.Category) error {
	if c.ID == 0 {
		_, err := s.AddCategory(ctx, &c)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, parent_id) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, parent_id = excluded.parent_id`,
		c.ID, c.Name, nullID(c.ParentID))
	if err != nil {
		return fmt.Errorf("put category %d: %w", c.ID, err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var (
		c      core.Category
		parent sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, parent_id FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &parent)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	c.ParentID = fromNullID(parent)
	return c, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	err := deleted(s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id))
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, parent_id FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var (
			c      core.Category
			parent sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &parent); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = fromNullID(parent)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (s *Store) AddSubcategory(ctx context.Context, sub *core.Subcategory) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subcategories (name, category_id) VALUES (?, ?)`,
		sub.Name, sub.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("add subcategory: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add subcategory id: %w", err)
	}
	sub.ID = id
	return id, nil
}

func (s *Store) PutSubcategory(ctx context.Context, sub core.Subcategory) error {
	if sub.ID == 0 {
		_, err := s.AddSubcategory(ctx, &sub)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subcategories (id, name, category_id) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, category_id = excluded.category_id`,
		sub.ID, sub.Name, sub.CategoryID)
	if err != nil {
		return fmt.Errorf("put subcategory %d: %w", sub.ID, err)
	}
	return nil
}

func (s *Store) GetSubcategory(ctx context.Context, id int64) (core.Subcategory, error) {
	var sub core.Subcategory
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category_id FROM subcategories WHERE id = ?`, id).
		Scan(&sub.ID, &sub.Name, &sub.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Subcategory{}, ErrNotFound
	}
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("get subcategory %d: %w", id, err)
	}
	return sub, nil
}

func (s *Store) DeleteSubcategory(ctx context.Context, id int64) error {
	err := deleted(s.db.ExecContext(ctx, `DELETE FROM subcategories WHERE id = ?`, id))
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete subcategory %d: %w", id, err)
	}
	return nil
}

func (s *Store) ListSubcategories(ctx context.Context) ([]core.Subcategory, error) {
	return s.querySubcategories(ctx,
		`SELECT id, name, category_id FROM subcategories ORDER BY id`)
}

// SubcategoriesByCategory is the indexed lookup used by the entry form to
// narrow the subcategory picker to the chosen category.
func (s *Store) SubcategoriesByCategory(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	return s.querySubcategories(ctx,
		`SELECT id, name, category_id FROM subcategories WHERE category_id = ? ORDER BY id`, categoryID)
}

func (s *Store) querySubcategories(ctx context.Context, query string, args ...any) ([]core.Subcategory, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var out []core.Subcategory
	for rows.Next() {
		var sub core.Subcategory
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return out, nil
}
