// Package report computes the dashboard aggregates. All figures are in the
// base currency: every function reads the amountBase snapshot and never
// re-converts, so reports stay consistent with what each transaction recorded
// at save time. Transfers move money between accounts and are excluded from
// every spending and income figure.
package report

import (
	"math"
	"sort"

	"ibudget/internal/core"
)

const (
	// TopCategories and TopSubcategories cap the breakdown slices before the
	// remainder collapses into Other. Account breakdowns are unbounded.
	TopCategories    = 8
	TopSubcategories = 10

	// TrendMonths is how many of the most recent active months the spending
	// trend covers.
	TrendMonths = 6

	// OtherLabel names the collapsed remainder slice.
	OtherLabel = "Other"
)

// Budget statuses, ordered by severity.
const (
	StatusOver  = "over"
	StatusNear  = "near"
	StatusUnder = "under"
)

// Totals are the headline numbers. Net is income minus expenses and goes
// negative in a deficit month.
type Totals struct {
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
	Net      float64 `json:"net"`
}

// Slice is one entry of a breakdown, either a real entity or the Other
// remainder (ID 0).
type Slice struct {
	ID    int64   `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// BudgetLine pairs a monthly budget with the spending recorded against it.
type BudgetLine struct {
	BudgetID   int64   `json:"budgetId"`
	CategoryID int64   `json:"categoryId"`
	Label      string  `json:"label"`
	Budget     float64 `json:"budget"`
	Actual     float64 `json:"actual"`
	Pct        int     `json:"pct"`
	Status     string  `json:"status"`
	Overage    float64 `json:"overage"`
}

// TrendPoint is one month of total expenses.
type TrendPoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// ComputeTotals sums expense and income transactions. Transfers are skipped.
func ComputeTotals(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case core.Expense:
			t.Expenses += tx.AmountBase
		case core.Income:
			t.Income += tx.AmountBase
		}
	}
	t.Net = t.Income - t.Expenses
	return t
}

// SpendingByCategory breaks expenses down by category, keeping the top
// TopCategories slices and collapsing the rest into Other. Transactions with
// no category are excluded entirely rather than lumped into Other.
func SpendingByCategory(txs []core.Transaction, names map[int64]string) []Slice {
	return topSlices(groupExpenses(txs, func(tx core.Transaction) int64 { return tx.CategoryID }), names, TopCategories)
}

// SpendingBySubcategory is the subcategory variant, with a wider cap.
func SpendingBySubcategory(txs []core.Transaction, names map[int64]string) []Slice {
	return topSlices(groupExpenses(txs, func(tx core.Transaction) int64 { return tx.SubcategoryID }), names, TopSubcategories)
}

// SpendingByAccount breaks expenses down by account with no cap; account
// lists are short enough to show in full.
func SpendingByAccount(txs []core.Transaction, names map[int64]string) []Slice {
	return topSlices(groupExpenses(txs, func(tx core.Transaction) int64 { return tx.AccountID }), names, 0)
}

func groupExpenses(txs []core.Transaction, key func(core.Transaction) int64) map[int64]float64 {
	byKey := make(map[int64]float64)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		k := key(tx)
		if k == 0 {
			continue
		}
		byKey[k] += tx.AmountBase
	}
	return byKey
}

// topSlices orders the grouped totals descending and collapses everything
// past the limit into a single Other slice. The Other slice appears only when
// the collapsed remainder is positive. A limit of 0 means no collapsing.
func topSlices(byKey map[int64]float64, names map[int64]string, limit int) []Slice {
	slices := make([]Slice, 0, len(byKey))
	for id, value := range byKey {
		slices = append(slices, Slice{ID: id, Label: labelFor(id, names), Value: value})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Label < slices[j].Label
	})

	if limit <= 0 || len(slices) <= limit {
		return slices
	}
	var other float64
	for _, s := range slices[limit:] {
		other += s.Value
	}
	top := slices[:limit:limit]
	if other > 0 {
		top = append(top, Slice{Label: OtherLabel, Value: other})
	}
	return top
}

func labelFor(id int64, names map[int64]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}

// BudgetVsActual reports each of the month's budgets against the expenses
// recorded in that month for its category, ordered by actual spending
// descending. Percentages are rounded to whole numbers and forced to 0 for a
// zero budget so an unset limit never reads as infinitely blown.
func BudgetVsActual(txs []core.Transaction, budgets []core.Budget, names map[int64]string, month string) []BudgetLine {
	actualByCategory := make(map[int64]float64)
	for _, tx := range txs {
		if tx.Type != core.Expense || tx.CategoryID == 0 {
			continue
		}
		if core.MonthKey(tx.Date) != month {
			continue
		}
		actualByCategory[tx.CategoryID] += tx.AmountBase
	}

	lines := make([]BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		line := BudgetLine{
			BudgetID:   b.ID,
			CategoryID: b.CategoryID,
			Label:      labelFor(b.CategoryID, names),
			Budget:     b.AmountBase,
			Actual:     actualByCategory[b.CategoryID],
		}
		if b.AmountBase > 0 {
			line.Pct = int(math.Round(line.Actual / b.AmountBase * 100))
		}
		switch {
		case line.Pct > 100:
			line.Status = StatusOver
			line.Overage = line.Actual - b.AmountBase
		case line.Pct >= 80:
			line.Status = StatusNear
		default:
			line.Status = StatusUnder
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Actual != lines[j].Actual {
			return lines[i].Actual > lines[j].Actual
		}
		return lines[i].Label < lines[j].Label
	})
	return lines
}

// MonthlyTrend returns total expenses for the last TrendMonths months that
// actually have expense activity, oldest first. Months with no expenses are
// skipped rather than padded with zeroes.
func MonthlyTrend(txs []core.Transaction) []TrendPoint {
	byMonth := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		byMonth[core.MonthKey(tx.Date)] += tx.AmountBase
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	if len(months) > TrendMonths {
		months = months[len(months)-TrendMonths:]
	}
	points := make([]TrendPoint, len(months))
	for i, m := range months {
		points[i] = TrendPoint{Month: m, Total: byMonth[m]}
	}
	return points
}
