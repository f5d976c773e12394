// Package query filters and orders in-memory transaction slices. Filtering
// happens after the store load so every criterion composes the same way
// regardless of which index served the initial read.
package query

import (
	"sort"
	"strings"

	"ibudget/internal/core"
)

// TypeAll is the sentinel meaning no type restriction.
const TypeAll = "all"

// Filter is an AND of its non-zero criteria. Zero IDs, empty strings and
// TypeAll all mean "no restriction on this axis".
type Filter struct {
	Q          string
	From       string
	To         string
	CategoryID int64
	AccountID  int64
	Type       string
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Q == "" && f.From == "" && f.To == "" &&
		f.CategoryID == 0 && f.AccountID == 0 &&
		(f.Type == "" || f.Type == TypeAll)
}

// Matches reports whether a single transaction passes every criterion.
func (f Filter) Matches(tx core.Transaction) bool {
	if f.Q != "" {
		haystack := strings.ToLower(tx.Description + " " + tx.Notes)
		if !strings.Contains(haystack, strings.ToLower(f.Q)) {
			return false
		}
	}
	if f.From != "" && tx.Date < f.From {
		return false
	}
	if f.To != "" && tx.Date > f.To {
		return false
	}
	if f.CategoryID != 0 && tx.CategoryID != f.CategoryID {
		return false
	}
	if f.AccountID != 0 && tx.AccountID != f.AccountID {
		return false
	}
	if f.Type != "" && f.Type != TypeAll && string(tx.Type) != f.Type {
		return false
	}
	return true
}

// Apply returns the transactions passing the filter, preserving input order.
// The input slice is never mutated.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	if f.IsZero() {
		out := make([]core.Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// SortByDateDesc orders newest first. The sort is stable so transactions on
// the same date keep their insertion order.
func SortByDateDesc(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})
}
