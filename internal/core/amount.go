// Package core provides the domain model for the budget tracker.
//
// This file contains amount parsing and snapshot helpers. Amounts are entered
// as free text (possibly with currency symbols or thousands separators) and
// normalized to a plain float before saving.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount extracts a decimal amount from user input. Everything except
// digits, the decimal point and a leading minus sign is stripped, so "$1,234.50"
// parses as 1234.50. Unparseable or non-finite input yields 0.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

// BaseAmount computes the base-currency magnitude recorded on a transaction:
// abs(amount) * fx. This is evaluated once at save time; the stored value is a
// snapshot and goes stale if the fx rate is later edited.
func BaseAmount(amount, fx float64) float64 {
	return math.Abs(amount) * fx
}

// Finalize fills the derived fields of a transaction before it is persisted.
// A zero fx multiplier falls back to 1, mirroring the entry form's default.
func (t *Transaction) Finalize() {
	if t.FxToBase == 0 {
		t.FxToBase = 1
	}
	t.AmountBase = BaseAmount(t.Amount, t.FxToBase)
}
