// Package seed bootstraps an empty database so a first-time user lands on a
// usable app. Each step is gated on its collection being empty, which makes
// the whole pass safe to run on every startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ibudget/internal/core"
	applog "ibudget/internal/log"
	"ibudget/internal/storage"
)

var defaultCategories = []string{
	"Housing", "Groceries", "Restaurants", "Transportation",
	"Health", "Fitness", "Entertainment", "Travel",
	"Education", "Utilities", "Subscriptions", "Services",
	"Shopping", "Bills", "Income",
}

type subSeed struct {
	name     string
	category string
}

var defaultSubcategories = []subSeed{
	{"Rent/Mortgage", "Housing"}, {"Repairs", "Housing"}, {"HOA/Property Tax", "Housing"},
	{"Supermarket", "Groceries"}, {"Farmers Market", "Groceries"}, {"Organic Foods", "Groceries"},
	{"Coffee Shops", "Restaurants"}, {"Fast Food", "Restaurants"}, {"Fine Dining", "Restaurants"},
	{"Gas", "Transportation"}, {"Uber/Lyft", "Transportation"}, {"Public Transit", "Transportation"},
	{"Electricity", "Utilities"}, {"Water", "Utilities"}, {"Internet", "Utilities"},
	{"Netflix", "Subscriptions"}, {"Spotify", "Subscriptions"}, {"Apps", "Subscriptions"},
	{"Movies", "Entertainment"}, {"Concerts", "Entertainment"}, {"Games", "Entertainment"},
	{"Flights", "Travel"}, {"Hotels", "Travel"}, {"Car Rental", "Travel"},
	{"Clothing", "Shopping"}, {"Electronics", "Shopping"}, {"Home Goods", "Shopping"},
	{"Salary", "Income"}, {"Freelance", "Income"}, {"Investments", "Income"},
}

var defaultAccounts = []core.BankAccount{
	{Name: "Cash", Type: core.Cash},
	{Name: "Chase Checking", Type: core.Account},
	{Name: "Wells Fargo Savings", Type: core.Account},
	{Name: "Chase Sapphire", Type: core.Credit},
	{Name: "American Express", Type: core.Credit},
	{Name: "Debit Card", Type: core.Debit},
}

// EnsureDefaults populates the store's default settings, taxonomy and payment
// methods, and, when samples is set, a handful of example transactions and one
// month of example budgets.
func EnsureDefaults(ctx context.Context, st *storage.Store, samples bool) error {
	if err := ensureSettings(ctx, st); err != nil {
		return err
	}
	if err := ensureCategories(ctx, st); err != nil {
		return err
	}
	if err := ensureSubcategories(ctx, st); err != nil {
		return err
	}
	if err := ensureAccounts(ctx, st); err != nil {
		return err
	}
	if !samples {
		return nil
	}
	if err := ensureSampleTransactions(ctx, st); err != nil {
		return err
	}
	return ensureSampleBudgets(ctx, st)
}

func ensureSettings(ctx context.Context, st *storage.Store) error {
	_, err := st.GetSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check settings: %w", err)
	}
	err = st.PutSettings(ctx, core.Settings{
		Key:          core.SettingsKey,
		BaseCurrency: "USD",
		FX:           map[string]float64{"USD": 1, "MXN": 0.055},
	})
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	slog.InfoContext(ctx, "Seeded default settings", applog.FieldCurrency, "USD")
	return nil
}

func ensureCategories(ctx context.Context, st *storage.Store) error {
	existing, err := st.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, name := range defaultCategories {
		if _, err := st.AddCategory(ctx, &core.Category{Name: name}); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded default categories", applog.FieldCount, len(defaultCategories))
	return nil
}

func ensureSubcategories(ctx context.Context, st *storage.Store) error {
	existing, err := st.ListSubcategories(ctx)
	if err != nil {
		return fmt.Errorf("check subcategories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	byName, err := categoryIDsByName(ctx, st)
	if err != nil {
		return err
	}
	seeded := 0
	for _, s := range defaultSubcategories {
		catID, ok := byName[s.category]
		if !ok {
			// Seed rows pointing at an unknown category are silently dropped.
			continue
		}
		if _, err := st.AddSubcategory(ctx, &core.Subcategory{Name: s.name, CategoryID: catID}); err != nil {
			return fmt.Errorf("seed subcategory %q: %w", s.name, err)
		}
		seeded++
	}
	slog.InfoContext(ctx, "Seeded default subcategories", applog.FieldCount, seeded)
	return nil
}

func ensureAccounts(ctx context.Context, st *storage.Store) error {
	existing, err := st.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("check accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, a := range defaultAccounts {
		acc := a
		if _, err := st.AddAccount(ctx, &acc); err != nil {
			return fmt.Errorf("seed account %q: %w", a.Name, err)
		}
	}
	slog.InfoContext(ctx, "Seeded default payment methods", applog.FieldCount, len(defaultAccounts))
	return nil
}

type sampleTx struct {
	date        string
	description string
	amount      float64
	txType      core.TxType
	category    string
	subcategory string
	account     string
}

var sampleTransactions = []sampleTx{
	{"2024-12-15", "Grocery shopping at Whole Foods", 127.50, core.Expense, "Groceries", "Supermarket", "Chase Sapphire"},
	{"2024-12-14", "Coffee at Starbucks", 5.75, core.Expense, "Restaurants", "Coffee Shops", "Debit Card"},
	{"2024-12-13", "Monthly salary", 5000, core.Income, "Income", "Salary", "Chase Checking"},
	{"2024-12-12", "Gas station fill-up", 45.20, core.Expense, "Transportation", "Gas", "Chase Sapphire"},
	{"2024-12-11", "Netflix subscription", 15.99, core.Expense, "Subscriptions", "Netflix", "Chase Checking"},
}

func ensureSampleTransactions(ctx context.Context, st *storage.Store) error {
	existing, err := st.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("check transactions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	cats, err := categoryIDsByName(ctx, st)
	if err != nil {
		return err
	}
	subs, err := subcategoryIDsByName(ctx, st)
	if err != nil {
		return err
	}
	accs, err := accountIDsByName(ctx, st)
	if err != nil {
		return err
	}

	seeded := 0
	for _, s := range sampleTransactions {
		catID, ok := cats[s.category]
		if !ok {
			continue
		}
		tx := core.Transaction{
			Date:          s.date,
			Description:   s.description,
			Amount:        s.amount,
			Currency:      "USD",
			FxToBase:      1,
			AmountBase:    s.amount,
			Type:          s.txType,
			CategoryID:    catID,
			SubcategoryID: subs[s.subcategory],
			AccountID:     accs[s.account],
		}
		if _, err := st.AddTransaction(ctx, &tx); err != nil {
			return fmt.Errorf("seed transaction %q: %w", s.description, err)
		}
		seeded++
	}
	slog.InfoContext(ctx, "Seeded sample transactions", applog.FieldCount, seeded)
	return nil
}

var sampleBudgets = []struct {
	category string
	amount   float64
}{
	{"Groceries", 500},
	{"Restaurants", 300},
	{"Transportation", 200},
	{"Entertainment", 150},
	{"Subscriptions", 100},
}

func ensureSampleBudgets(ctx context.Context, st *storage.Store) error {
	existing, err := st.ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("check budgets: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	cats, err := categoryIDsByName(ctx, st)
	if err != nil {
		return err
	}
	month := core.CurrentMonth()
	seeded := 0
	for _, s := range sampleBudgets {
		catID, ok := cats[s.category]
		if !ok {
			continue
		}
		b := core.Budget{Month: month, CategoryID: catID, AmountBase: s.amount}
		if _, err := st.AddBudget(ctx, &b); err != nil {
			return fmt.Errorf("seed budget %q: %w", s.category, err)
		}
		seeded++
	}
	slog.InfoContext(ctx, "Seeded sample budgets", applog.FieldMonth, month, applog.FieldCount, seeded)
	return nil
}

func categoryIDsByName(ctx context.Context, st *storage.Store) (map[string]int64, error) {
	cats, err := st.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]int64, len(cats))
	for _, c := range cats {
		byName[c.Name] = c.ID
	}
	return byName, nil
}

func subcategoryIDsByName(ctx context.Context, st *storage.Store) (map[string]int64, error) {
	subs, err := st.ListSubcategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	byName := make(map[string]int64, len(subs))
	for _, s := range subs {
		byName[s.Name] = s.ID
	}
	return byName, nil
}

func accountIDsByName(ctx context.Context, st *storage.Store) (map[string]int64, error) {
	accs, err := st.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	byName := make(map[string]int64, len(accs))
	for _, a := range accs {
		byName[a.Name] = a.ID
	}
	return byName, nil
}
