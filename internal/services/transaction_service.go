// Package services orchestrates domain operations across the store, the
// query layer and the reporting aggregates. Handlers stay thin; the rules
// about what a valid write looks like live here.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"ibudget/internal/core"
	applog "ibudget/internal/log"
	"ibudget/internal/query"
	"ibudget/internal/storage"
)

// TransactionService owns the transaction write path. Every save snapshots
// the base-currency amount before it reaches the store.
type TransactionService struct {
	storage *storage.Store
}

func NewTransactionService(storage *storage.Store) *TransactionService {
	return &TransactionService{storage: storage}
}

// Save finalizes and validates t, then inserts or upserts depending on
// whether t carries an id. The finalized transaction is written back to t.
func (s *TransactionService) Save(ctx context.Context, t *core.Transaction) (int64, error) {
	t.Finalize()
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if t.ID == 0 {
		id, err := s.storage.AddTransaction(ctx, t)
		if err != nil {
			return 0, fmt.Errorf("save transaction: %w", err)
		}
		return id, nil
	}
	if err := s.storage.PutTransaction(ctx, *t); err != nil {
		return 0, fmt.Errorf("save transaction %d: %w", t.ID, err)
	}
	return t.ID, nil
}

// List loads every transaction, applies the filter and orders the result
// newest first.
func (s *TransactionService) List(ctx context.Context, f query.Filter) ([]core.Transaction, error) {
	txs, err := s.storage.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := f.Apply(txs)
	query.SortByDateDesc(out)
	return out, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (core.Transaction, error) {
	return s.storage.GetTransaction(ctx, id)
}

// Delete removes one transaction. Referencing nothing else, a delete never
// cascades.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", applog.FieldTxID, id)
	return nil
}
