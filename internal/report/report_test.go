package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibudget/internal/core"
)

func expense(categoryID int64, amountBase float64, date string) core.Transaction {
	return core.Transaction{
		Date:       date,
		Type:       core.Expense,
		CategoryID: categoryID,
		Amount:     -amountBase,
		AmountBase: amountBase,
	}
}

func TestComputeTotalsExcludesTransfers(t *testing.T) {
	txs := []core.Transaction{
		{Type: core.Expense, AmountBase: 120},
		{Type: core.Expense, AmountBase: 80},
		{Type: core.Income, AmountBase: 500},
		{Type: core.Transfer, AmountBase: 9999},
	}
	got := ComputeTotals(txs)

	assert.Equal(t, 200.0, got.Expenses)
	assert.Equal(t, 500.0, got.Income)
	assert.Equal(t, 300.0, got.Net)
}

func TestComputeTotalsNegativeNet(t *testing.T) {
	got := ComputeTotals([]core.Transaction{
		{Type: core.Expense, AmountBase: 700},
		{Type: core.Income, AmountBase: 500},
	})
	assert.Equal(t, -200.0, got.Net)
}

func TestSpendingByCategoryCollapsesRemainderIntoOther(t *testing.T) {
	// Ten categories spending 100, 90, ..., 10. The top eight survive and the
	// bottom two (20 + 10) collapse into Other.
	var txs []core.Transaction
	names := make(map[int64]string)
	for i := 1; i <= 10; i++ {
		txs = append(txs, expense(int64(i), float64(110-i*10), "2025-03-01"))
		names[int64(i)] = fmt.Sprintf("cat-%d", i)
	}

	got := SpendingByCategory(txs, names)

	require.Len(t, got, TopCategories+1)
	assert.Equal(t, "cat-1", got[0].Label)
	assert.Equal(t, 100.0, got[0].Value)
	last := got[len(got)-1]
	assert.Equal(t, OtherLabel, last.Label)
	assert.Equal(t, int64(0), last.ID)
	assert.Equal(t, 30.0, last.Value)
}

func TestSpendingByCategoryConservesTotal(t *testing.T) {
	var txs []core.Transaction
	var want float64
	for i := 1; i <= 13; i++ {
		amount := float64(i * 7)
		txs = append(txs, expense(int64(i), amount, "2025-03-01"))
		want += amount
	}

	var got float64
	for _, s := range SpendingByCategory(txs, nil) {
		got += s.Value
	}
	assert.InDelta(t, want, got, 1e-9, "top slices plus Other must conserve the total")
}

func TestSpendingByCategoryNoOtherSliceWhenUnderLimit(t *testing.T) {
	txs := []core.Transaction{expense(1, 50, "2025-03-01"), expense(2, 25, "2025-03-01")}
	got := SpendingByCategory(txs, map[int64]string{1: "Food", 2: "Rent"})

	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, OtherLabel, s.Label)
	}
}

func TestSpendingByCategorySkipsUncategorizedAndNonExpenses(t *testing.T) {
	txs := []core.Transaction{
		expense(1, 50, "2025-03-01"),
		expense(0, 999, "2025-03-01"),
		{Type: core.Income, CategoryID: 1, AmountBase: 500},
	}
	got := SpendingByCategory(txs, map[int64]string{1: "Food"})

	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0].Value)
}

func TestSpendingByCategoryUnknownName(t *testing.T) {
	got := SpendingByCategory([]core.Transaction{expense(99, 10, "2025-03-01")}, map[int64]string{})
	require.Len(t, got, 1)
	assert.Equal(t, "Unknown", got[0].Label)
}

func TestSpendingByAccountIsUnbounded(t *testing.T) {
	var txs []core.Transaction
	for i := 1; i <= 20; i++ {
		txs = append(txs, core.Transaction{
			Type: core.Expense, AccountID: int64(i), AmountBase: float64(i),
		})
	}
	got := SpendingByAccount(txs, nil)
	assert.Len(t, got, 20)
}

func TestBudgetVsActual(t *testing.T) {
	month := "2025-03"
	names := map[int64]string{1: "Food", 2: "Rent", 3: "Fun"}
	budgets := []core.Budget{
		{ID: 1, Month: month, CategoryID: 1, AmountBase: 100},
		{ID: 2, Month: month, CategoryID: 2, AmountBase: 800},
		{ID: 3, Month: month, CategoryID: 3, AmountBase: 0},
		{ID: 4, Month: "2025-02", CategoryID: 1, AmountBase: 50},
	}
	txs := []core.Transaction{
		expense(1, 120, "2025-03-10"),
		expense(2, 700, "2025-03-01"),
		expense(3, 40, "2025-03-05"),
		expense(1, 500, "2025-02-20"),
	}

	got := BudgetVsActual(txs, budgets, names, month)

	require.Len(t, got, 3, "other months' budgets are excluded")
	assert.Equal(t, "Rent", got[0].Label, "ordered by actual spending descending")

	byLabel := make(map[string]BudgetLine)
	for _, line := range got {
		byLabel[line.Label] = line
	}

	food := byLabel["Food"]
	assert.Equal(t, 120.0, food.Actual)
	assert.Equal(t, 120, food.Pct)
	assert.Equal(t, StatusOver, food.Status)
	assert.Equal(t, 20.0, food.Overage)

	rent := byLabel["Rent"]
	assert.Equal(t, 88, rent.Pct)
	assert.Equal(t, StatusNear, rent.Status)
	assert.Zero(t, rent.Overage)

	fun := byLabel["Fun"]
	assert.Equal(t, 0, fun.Pct, "zero budget never reads as blown")
	assert.Equal(t, StatusUnder, fun.Status)
}

func TestBudgetVsActualStatusBoundaries(t *testing.T) {
	tests := []struct {
		actual float64
		pct    int
		status string
	}{
		{79, 79, StatusUnder},
		{80, 80, StatusNear},
		{100, 100, StatusNear},
		{101, 101, StatusOver},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			budgets := []core.Budget{{ID: 1, Month: "2025-03", CategoryID: 1, AmountBase: 100}}
			got := BudgetVsActual([]core.Transaction{expense(1, tt.actual, "2025-03-15")}, budgets, nil, "2025-03")

			require.Len(t, got, 1)
			assert.Equal(t, tt.pct, got[0].Pct)
			assert.Equal(t, tt.status, got[0].Status)
		})
	}
}

func TestMonthlyTrendKeepsLastActiveMonths(t *testing.T) {
	var txs []core.Transaction
	for m := 1; m <= 8; m++ {
		txs = append(txs, expense(1, float64(m), fmt.Sprintf("2025-%02d-15", m)))
	}
	// A gap month with only income must not appear.
	txs = append(txs, core.Transaction{Type: core.Income, Date: "2025-09-01", AmountBase: 100})

	got := MonthlyTrend(txs)

	require.Len(t, got, TrendMonths)
	assert.Equal(t, "2025-03", got[0].Month, "oldest of the window comes first")
	assert.Equal(t, "2025-08", got[len(got)-1].Month)
	assert.Equal(t, 8.0, got[len(got)-1].Total)
}

func TestMonthlyTrendShorterHistory(t *testing.T) {
	got := MonthlyTrend([]core.Transaction{
		expense(1, 10, "2025-05-01"),
		expense(1, 5, "2025-07-01"),
		expense(1, 3, "2025-07-20"),
	})
	require.Len(t, got, 2)
	assert.Equal(t, TrendPoint{Month: "2025-05", Total: 10}, got[0])
	assert.Equal(t, TrendPoint{Month: "2025-07", Total: 8}, got[1])
}
