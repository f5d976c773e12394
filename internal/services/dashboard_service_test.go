package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibudget/internal/core"
	"ibudget/internal/query"
	"ibudget/internal/storage"
)

func seedDashboardData(t *testing.T, st *storage.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := st.AddCategory(ctx, &core.Category{Name: "Food"})
	require.NoError(t, err)
	_, err = st.AddCategory(ctx, &core.Category{Name: "Rent"})
	require.NoError(t, err)
	_, err = st.AddSubcategory(ctx, &core.Subcategory{Name: "Groceries", CategoryID: 1})
	require.NoError(t, err)
	_, err = st.AddAccount(ctx, &core.BankAccount{Name: "Checking", Type: core.Debit})
	require.NoError(t, err)
	_, err = st.AddBudget(ctx, &core.Budget{Month: "2025-03", CategoryID: 1, AmountBase: 100})
	require.NoError(t, err)

	txSvc := NewTransactionService(st)
	for _, tx := range []core.Transaction{
		{Date: "2025-03-05", Description: "Market", Amount: -60, Type: core.Expense, CategoryID: 1, SubcategoryID: 1, AccountID: 1},
		{Date: "2025-03-01", Description: "Rent", Amount: -800, Type: core.Expense, CategoryID: 2, AccountID: 1},
		{Date: "2025-03-15", Description: "Salary", Amount: 2000, Type: core.Income, AccountID: 1},
	} {
		tx := tx
		_, err := txSvc.Save(ctx, &tx)
		require.NoError(t, err)
	}
}

func TestDashboardLoad(t *testing.T) {
	st := openTestStore(t)
	seedDashboardData(t, st)
	svc := NewDashboardService(st, 8, time.Minute)

	d, err := svc.Load(context.Background(), query.Filter{From: "2025-03-01", To: "2025-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "2025-03", d.Month)
	assert.Equal(t, 860.0, d.Totals.Expenses)
	assert.Equal(t, 2000.0, d.Totals.Income)
	assert.Equal(t, 1140.0, d.Totals.Net)

	require.Len(t, d.ByCategory, 2)
	assert.Equal(t, "Rent", d.ByCategory[0].Label)

	require.Len(t, d.BySubcategory, 1)
	assert.Equal(t, "Groceries", d.BySubcategory[0].Label)

	require.Len(t, d.Budgets, 1)
	assert.Equal(t, "Food", d.Budgets[0].Label)
	assert.Equal(t, 60.0, d.Budgets[0].Actual)
	assert.Equal(t, 60, d.Budgets[0].Pct)

	require.Len(t, d.Trend, 1)
	assert.Equal(t, "2025-03", d.Trend[0].Month)
}

func TestDashboardCachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedDashboardData(t, st)
	svc := NewDashboardService(st, 8, time.Minute)

	f := query.Filter{From: "2025-03-01"}
	first, err := svc.Load(ctx, f)
	require.NoError(t, err)

	txSvc := NewTransactionService(st)
	_, err = txSvc.Save(ctx, &core.Transaction{
		Date: "2025-03-20", Description: "Cinema", Amount: -10, Type: core.Expense, CategoryID: 1,
	})
	require.NoError(t, err)

	cached, err := svc.Load(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, first.Totals, cached.Totals, "same filter hits the cache")

	svc.Invalidate()
	fresh, err := svc.Load(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, first.Totals.Expenses+10, fresh.Totals.Expenses)
}

func TestDashboardDefaultsToCurrentMonth(t *testing.T) {
	st := openTestStore(t)
	svc := NewDashboardService(st, 8, time.Minute)

	d, err := svc.Load(context.Background(), query.Filter{})
	require.NoError(t, err)
	assert.Equal(t, core.CurrentMonth(), d.Month)
}
