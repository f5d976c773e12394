package backup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibudget/internal/core"
	"ibudget/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	st, err := storage.Open(t.TempDir() + "/backup.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedStore(t *testing.T, st *storage.Store) {
	t.Helper()
	ctx := context.Background()
	_, err := st.AddCategory(ctx, &core.Category{Name: "Food"})
	require.NoError(t, err)
	_, err = st.AddSubcategory(ctx, &core.Subcategory{Name: "Groceries", CategoryID: 1})
	require.NoError(t, err)
	_, err = st.AddAccount(ctx, &core.BankAccount{Name: "Checking", Type: core.Debit})
	require.NoError(t, err)
	_, err = st.AddTransaction(ctx, &core.Transaction{
		Date: "2025-03-01", Description: "Groceries run", Amount: -42,
		Type: core.Expense, CategoryID: 1, AccountID: 1, FxToBase: 1, AmountBase: 42,
	})
	require.NoError(t, err)
	_, err = st.AddBudget(ctx, &core.Budget{Month: "2025-03", CategoryID: 1, AmountBase: 300})
	require.NoError(t, err)
	require.NoError(t, st.PutSettings(ctx, core.Settings{
		BaseCurrency: "USD", FX: map[string]float64{"MXN": 0.055},
	}))
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := openTestStore(t)
	seedStore(t, src)

	snap, err := Export(ctx, src)
	require.NoError(t, err)
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	dst := openTestStore(t)
	_, err = Import(ctx, dst, data)
	require.NoError(t, err)

	txs, err := dst.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Groceries run", txs[0].Description)
	assert.Equal(t, 42.0, txs[0].AmountBase)

	set, err := dst.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.055, set.FX["MXN"])
}

func TestImportMergesById(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedStore(t, st)

	// Overwrites category 1, leaves transaction 1 untouched, adds category 7.
	data := []byte(`{
		"categories": [
			{"id": 1, "name": "Food & Drink"},
			{"id": 7, "name": "Travel"}
		]
	}`)
	_, err := Import(ctx, st, data)
	require.NoError(t, err)

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)

	got, err := st.GetCategory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Food & Drink", got.Name)

	txs, err := st.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "collections absent from the backup survive")
}

func TestImportShorthandKeys(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	data := []byte(`{
		"txs": [{"id": 3, "date": "2025-04-01", "description": "Cafe", "amount": -5, "type": "expense", "fxToBase": 1, "amountBase": 5}],
		"cats": [{"id": 2, "name": "Eating out"}],
		"subs": [{"id": 4, "name": "Coffee", "categoryId": 2}],
		"acs": [{"id": 5, "name": "Cash", "type": "cash"}],
		"bds": [{"id": 6, "month": "2025-04", "categoryId": 2, "amountBase": 80}],
		"s": [{"key": "settings", "baseCurrency": "USD"}]
	}`)
	snap, err := Import(ctx, st, data)
	require.NoError(t, err)

	assert.Len(t, snap.Transactions, 1)
	assert.Len(t, snap.Categories, 1)
	assert.Len(t, snap.Subcategories, 1)
	assert.Len(t, snap.Accounts, 1)
	assert.Len(t, snap.Budgets, 1)
	require.NotNil(t, snap.Settings)
	assert.Equal(t, "USD", snap.Settings.BaseCurrency)

	tx, err := st.GetTransaction(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cafe", tx.Description)
}

func TestSnapshotSettingsObjectOrArray(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{"settings": {"key": "settings", "baseCurrency": "EUR"}}`},
		{"array", `{"settings": [{"key": "settings", "baseCurrency": "EUR"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snap Snapshot
			require.NoError(t, json.Unmarshal([]byte(tt.data), &snap))
			require.NotNil(t, snap.Settings)
			assert.Equal(t, "EUR", snap.Settings.BaseCurrency)
		})
	}
}

func TestSnapshotEmptySettingsArray(t *testing.T) {
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"settings": []}`), &snap))
	assert.Nil(t, snap.Settings)
}

func TestSnapshotMarshalDocumentShape(t *testing.T) {
	data, err := json.Marshal(&Snapshot{
		Categories: []core.Category{{ID: 1, Name: "Food"}},
		Settings:   &core.Settings{Key: "settings", BaseCurrency: "USD"},
	})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	// Every collection is present as an array, populated or not.
	for _, key := range []string{"transactions", "categories", "subcategories", "accounts", "budgets", "settings"} {
		require.Contains(t, doc, key)
		assert.Equal(t, byte('['), doc[key][0], "%s must be an array", key)
	}

	var sets []core.Settings
	require.NoError(t, json.Unmarshal(doc["settings"], &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, "USD", sets[0].BaseCurrency)
}

func TestSnapshotMarshalWithoutSettings(t *testing.T) {
	data, err := json.Marshal(&Snapshot{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"settings":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestImportMalformedAbortsBeforeWrites(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	seedStore(t, st)

	_, err := Import(ctx, st, []byte(`{"categories": [{"id": "not-a-number"`))
	require.Error(t, err)

	cats, err := st.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1, "nothing written on a parse failure")
}

func TestSnapshotIgnoresUnknownKeys(t *testing.T) {
	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"version": 2, "categories": []}`), &snap))
	assert.Empty(t, snap.Categories)
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, "ibudget-backup-2025-03-09.json", Filename(now))
}
