// Package backup serializes the whole dataset to a single JSON document and
// restores it by upserting record by record. Restores merge into existing
// data: records sharing an id overwrite, everything else survives. A restore
// is not atomic, so a write failure midway leaves the records already applied
// in place.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ibudget/internal/core"
	"ibudget/internal/storage"
)

// ErrBadDocument marks a backup that could not be parsed, as opposed to a
// restore that failed while writing.
var ErrBadDocument = errors.New("malformed backup document")

// Store is the slice of the storage layer a backup touches.
type Store interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	ListSubcategories(ctx context.Context) ([]core.Subcategory, error)
	ListAccounts(ctx context.Context) ([]core.BankAccount, error)
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	GetSettings(ctx context.Context) (core.Settings, error)

	PutTransaction(ctx context.Context, t core.Transaction) error
	PutCategory(ctx context.Context, c core.Category) error
	PutSubcategory(ctx context.Context, sub core.Subcategory) error
	PutAccount(ctx context.Context, a core.BankAccount) error
	PutBudget(ctx context.Context, b core.Budget) error
	PutSettings(ctx context.Context, set core.Settings) error
}

// Snapshot is the backup document. Exports always write the canonical long
// keys; imports additionally accept the short aliases older exports used.
type Snapshot struct {
	Transactions  []core.Transaction `json:"transactions"`
	Categories    []core.Category    `json:"categories"`
	Subcategories []core.Subcategory `json:"subcategories"`
	Accounts      []core.BankAccount `json:"accounts"`
	Budgets       []core.Budget      `json:"budgets"`
	Settings      *core.Settings     `json:"settings,omitempty"`
}

// MarshalJSON writes the canonical document shape: every collection is an
// array even when empty, and settings is a list holding at most one row.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	doc := struct {
		Transactions  []core.Transaction `json:"transactions"`
		Categories    []core.Category    `json:"categories"`
		Subcategories []core.Subcategory `json:"subcategories"`
		Accounts      []core.BankAccount `json:"accounts"`
		Budgets       []core.Budget      `json:"budgets"`
		Settings      []core.Settings    `json:"settings"`
	}{
		Transactions:  emptyIfNil(s.Transactions),
		Categories:    emptyIfNil(s.Categories),
		Subcategories: emptyIfNil(s.Subcategories),
		Accounts:      emptyIfNil(s.Accounts),
		Budgets:       emptyIfNil(s.Budgets),
		Settings:      []core.Settings{},
	}
	if s.Settings != nil {
		doc.Settings = []core.Settings{*s.Settings}
	}
	return json.Marshal(doc)
}

func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// aliases maps every accepted key to its canonical name.
var aliases = map[string]string{
	"transactions": "transactions", "txs": "transactions",
	"categories": "categories", "cats": "categories",
	"subcategories": "subcategories", "subs": "subcategories",
	"accounts": "accounts", "acs": "accounts",
	"budgets": "budgets", "bds": "budgets",
	"settings": "settings", "s": "settings",
}

// UnmarshalJSON accepts both key spellings per collection and tolerates the
// settings entry being either a bare object or a single-element array.
// Unknown top-level keys are ignored.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		canonical, ok := aliases[key]
		if !ok {
			continue
		}
		var err error
		switch canonical {
		case "transactions":
			err = json.Unmarshal(value, &s.Transactions)
		case "categories":
			err = json.Unmarshal(value, &s.Categories)
		case "subcategories":
			err = json.Unmarshal(value, &s.Subcategories)
		case "accounts":
			err = json.Unmarshal(value, &s.Accounts)
		case "budgets":
			err = json.Unmarshal(value, &s.Budgets)
		case "settings":
			err = s.unmarshalSettings(value)
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", canonical, err)
		}
	}
	return nil
}

func (s *Snapshot) unmarshalSettings(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var list []core.Settings
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			s.Settings = &list[0]
		}
		return nil
	}
	var set core.Settings
	if err := json.Unmarshal(data, &set); err != nil {
		return err
	}
	s.Settings = &set
	return nil
}

// Filename names an export created now, for download headers and backup
// files on disk.
func Filename(now time.Time) string {
	return fmt.Sprintf("ibudget-backup-%s.json", now.UTC().Format("2006-01-02"))
}

// Export reads every collection, in parallel, into a snapshot.
func Export(ctx context.Context, st Store) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Transactions, err = st.ListTransactions(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Categories, err = st.ListCategories(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Subcategories, err = st.ListSubcategories(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Accounts, err = st.ListAccounts(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Budgets, err = st.ListBudgets(ctx)
		return err
	})
	g.Go(func() error {
		set, err := st.GetSettings(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		snap.Settings = &set
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Import parses the document and upserts its records. Parse errors abort
// before any write happens. Write errors stop the restore at the failing
// record; earlier upserts stay applied.
func Import(ctx context.Context, st Store, data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if err := Restore(ctx, st, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Restore upserts an already-parsed snapshot. Taxonomy and accounts go first
// so restored transactions point at refs that already exist.
func Restore(ctx context.Context, st Store, snap *Snapshot) error {
	for _, c := range snap.Categories {
		if err := st.PutCategory(ctx, c); err != nil {
			return fmt.Errorf("restore category %d: %w", c.ID, err)
		}
	}
	for _, sub := range snap.Subcategories {
		if err := st.PutSubcategory(ctx, sub); err != nil {
			return fmt.Errorf("restore subcategory %d: %w", sub.ID, err)
		}
	}
	for _, a := range snap.Accounts {
		if err := st.PutAccount(ctx, a); err != nil {
			return fmt.Errorf("restore account %d: %w", a.ID, err)
		}
	}
	for _, tx := range snap.Transactions {
		if err := st.PutTransaction(ctx, tx); err != nil {
			return fmt.Errorf("restore transaction %d: %w", tx.ID, err)
		}
	}
	for _, b := range snap.Budgets {
		if err := st.PutBudget(ctx, b); err != nil {
			return fmt.Errorf("restore budget %d: %w", b.ID, err)
		}
	}
	if snap.Settings != nil {
		if err := st.PutSettings(ctx, *snap.Settings); err != nil {
			return fmt.Errorf("restore settings: %w", err)
		}
	}
	return nil
}
