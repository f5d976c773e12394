package query

import (
	"reflect"
	"testing"

	"ibudget/internal/core"
)

func sampleTxs() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Date: "2025-01-05", Description: "Supermercado Soriana", Amount: -45.5, Type: core.Expense, CategoryID: 1, AccountID: 1},
		{ID: 2, Date: "2025-01-12", Description: "Renta departamento", Amount: -800, Type: core.Expense, CategoryID: 2, AccountID: 2},
		{ID: 3, Date: "2025-01-15", Description: "Pago nomina", Amount: 2500, Type: core.Income, CategoryID: 3, AccountID: 2},
		{ID: 4, Date: "2025-02-01", Description: "Traspaso a ahorro", Amount: -300, Type: core.Transfer, AccountID: 2},
		{ID: 5, Date: "2025-02-03", Description: "Cena restaurante", Notes: "regalo cumpleanos", Amount: -60, Type: core.Expense, CategoryID: 1, AccountID: 3},
	}
}

func ids(txs []core.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{"empty filter keeps everything", Filter{}, []int64{1, 2, 3, 4, 5}},
		{"type all is no restriction", Filter{Type: TypeAll}, []int64{1, 2, 3, 4, 5}},
		{"text search is case insensitive", Filter{Q: "RENTA"}, []int64{2}},
		{"text search matches substrings", Filter{Q: "r"}, []int64{1, 2, 4, 5}},
		{"text search covers notes", Filter{Q: "cumpleanos"}, []int64{5}},
		{"text search spans description and notes", Filter{Q: "restaurante regalo"}, []int64{5}},
		{"from is inclusive", Filter{From: "2025-01-12"}, []int64{2, 3, 4, 5}},
		{"to is inclusive", Filter{To: "2025-01-15"}, []int64{1, 2, 3}},
		{"date range", Filter{From: "2025-01-06", To: "2025-01-31"}, []int64{2, 3}},
		{"category", Filter{CategoryID: 1}, []int64{1, 5}},
		{"account", Filter{AccountID: 2}, []int64{2, 3, 4}},
		{"type expense", Filter{Type: "expense"}, []int64{1, 2, 5}},
		{"criteria combine with and", Filter{Type: "expense", AccountID: 2, From: "2025-01-01"}, []int64{2}},
		{"no matches yields empty", Filter{Q: "zzz"}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(sampleTxs()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterApplyIsIdempotent(t *testing.T) {
	f := Filter{Type: "expense", From: "2025-01-01"}
	once := f.Apply(sampleTxs())
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second Apply changed the result: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterApplyDoesNotMutateInput(t *testing.T) {
	txs := sampleTxs()
	Filter{Q: "renta"}.Apply(txs)
	if !reflect.DeepEqual(ids(txs), []int64{1, 2, 3, 4, 5}) {
		t.Errorf("input slice mutated: %v", ids(txs))
	}
}

func TestSortByDateDescIsStable(t *testing.T) {
	txs := []core.Transaction{
		{ID: 1, Date: "2025-01-10"},
		{ID: 2, Date: "2025-01-20"},
		{ID: 3, Date: "2025-01-10"},
		{ID: 4, Date: "2025-01-20"},
	}
	SortByDateDesc(txs)
	want := []int64{2, 4, 1, 3}
	if !reflect.DeepEqual(ids(txs), want) {
		t.Errorf("SortByDateDesc order = %v, want %v", ids(txs), want)
	}
}
