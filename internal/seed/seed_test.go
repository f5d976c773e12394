package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibudget/internal/core"
	"ibudget/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestEnsureDefaults(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, EnsureDefaults(ctx, st, true))

	set, err := st.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", set.BaseCurrency)
	assert.Equal(t, 0.055, set.FX["MXN"])

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 15)

	subs, err := st.ListSubcategories(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 30)
	// Every seeded subcategory resolved against a real category.
	catIDs := map[int64]bool{}
	for _, c := range cats {
		catIDs[c.ID] = true
	}
	for _, s := range subs {
		assert.True(t, catIDs[s.CategoryID], "subcategory %q has unknown category", s.Name)
	}

	accs, err := st.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accs, 6)

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 5)

	budgets, err := st.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Len(t, budgets, 5)
	for _, b := range budgets {
		assert.Equal(t, core.CurrentMonth(), b.Month)
	}
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, EnsureDefaults(ctx, st, true))

	before := snapshotCounts(t, ctx, st)
	require.NoError(t, EnsureDefaults(ctx, st, true))
	after := snapshotCounts(t, ctx, st)

	assert.Equal(t, before, after)
}

func TestSamplesSkippedWhenDisabled(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, EnsureDefaults(ctx, st, false))

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	budgets, err := st.ListBudgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)

	// Taxonomy still seeded.
	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 15)
}

func TestSeederDoesNotOverwriteUserData(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.AddCategory(ctx, &core.Category{Name: "My Own Category"})
	require.NoError(t, err)

	require.NoError(t, EnsureDefaults(ctx, st, false))

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "My Own Category", cats[0].Name)
}

func snapshotCounts(t *testing.T, ctx context.Context, st *storage.Store) [5]int {
	t.Helper()
	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	subs, err := st.ListSubcategories(ctx)
	require.NoError(t, err)
	accs, err := st.ListAccounts(ctx)
	require.NoError(t, err)
	bds, err := st.ListBudgets(ctx)
	require.NoError(t, err)
	return [5]int{len(txs), len(cats), len(subs), len(accs), len(bds)}
}
