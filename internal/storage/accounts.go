package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ibudget/internal/core"
)

func (s *Store) AddAccount(ctx context.Context, a *core.BankAccount) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (name, account_type, last4) VALUES (?, ?, ?)`,
		a.Name, string(a.Type), nullString(a.Last4))
	if err != nil {
		return 0, fmt.Errorf("add account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add account id: %w", err)
	}
	a.ID = id
	return id, nil
}

func (s *Store) PutAccount(ctx context.Context, a core.BankAccount) error {
	if a.ID == 0 {
		_, err := s.AddAccount(ctx, &a)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, account_type, last4) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			account_type = excluded.account_type,
			last4 = excluded.last4`,
		a.ID, a.Name, string(a.Type), nullString(a.Last4))
	if err != nil {
		return fmt.Errorf("put account %d: %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (core.BankAccount, error) {
	var (
		a      core.BankAccount
		aType  string
		last4  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, account_type, last4 FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &aType, &last4)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BankAccount{}, ErrNotFound
	}
	if err != nil {
		return core.BankAccount{}, fmt.Errorf("get account %d: %w", id, err)
	}
	a.Type = core.AccountType(aType)
	a.Last4 = fromNullString(last4)
	return a, nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	err := deleted(s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id))
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]core.BankAccount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, account_type, last4 FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.BankAccount
	for rows.Next() {
		var (
			a     core.BankAccount
			aType string
			last4 sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &aType, &last4); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Type = core.AccountType(aType)
		a.Last4 = fromNullString(last4)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}
