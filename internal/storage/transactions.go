package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"ibudget/internal/core"
	applog "ibudget/internal/log"
)

const transactionColumns = `id, date, description, amount, currency, fx_to_base, amount_base, tx_type, category_id, subcategory_id, account_id, notes`

// AddTransaction inserts a new transaction and returns its assigned id.
func (s *Store) AddTransaction(ctx context.Context, t *core.Transaction) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (date, description, amount, currency, fx_to_base, amount_base, tx_type, category_id, subcategory_id, account_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Date, t.Description, t.Amount, t.Currency, t.FxToBase, t.AmountBase, string(t.Type),
		nullID(t.CategoryID), nullID(t.SubcategoryID), nullID(t.AccountID), nullString(t.Notes))
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add transaction id: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		applog.FieldTxID, id, applog.FieldDate, t.Date,
		applog.FieldTxType, t.Type, applog.FieldAmountBase, t.AmountBase)
	return id, nil
}

// PutTransaction upserts a transaction by id: insert when absent, full replace
// when present. Records imported from a backup keep their exported ids.
func (s *Store) PutTransaction(ctx context.Context, t core.Transaction) error {
	if t.ID == 0 {
		_, err := s.AddTransaction(ctx, &t)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			date = excluded.date,
			description = excluded.description,
			amount = excluded.amount,
			currency = excluded.currency,
			fx_to_base = excluded.fx_to_base,
			amount_base = excluded.amount_base,
			tx_type = excluded.tx_type,
			category_id = excluded.category_id,
			subcategory_id = excluded.subcategory_id,
			account_id = excluded.account_id,
			notes = excluded.notes`,
		t.ID, t.Date, t.Description, t.Amount, t.Currency, t.FxToBase, t.AmountBase, string(t.Type),
		nullID(t.CategoryID), nullID(t.SubcategoryID), nullID(t.AccountID), nullString(t.Notes))
	if err != nil {
		return fmt.Errorf("put transaction %d: %w", t.ID, err)
	}
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	err := deleted(s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id))
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// ListTransactions returns every transaction in insertion order. Same-day
// ordering in views relies on this order being stable.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (core.Transaction, error) {
	var (
		t                 core.Transaction
		txType            string
		catID, subID, acc sql.NullInt64
		notes             sql.NullString
	)
	err := r.Scan(&t.ID, &t.Date, &t.Description, &t.Amount, &t.Currency,
		&t.FxToBase, &t.AmountBase, &txType, &catID, &subID, &acc, &notes)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TxType(txType)
	t.CategoryID = fromNullID(catID)
	t.SubcategoryID = fromNullID(subID)
	t.AccountID = fromNullID(acc)
	t.Notes = fromNullString(notes)
	return t, nil
}
