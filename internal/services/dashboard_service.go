package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ibudget/internal/cache"
	"ibudget/internal/core"
	"ibudget/internal/query"
	"ibudget/internal/report"
	"ibudget/internal/storage"
)

// Dashboard bundles every aggregate the overview screen renders.
type Dashboard struct {
	Month         string              `json:"month"`
	Totals        report.Totals       `json:"totals"`
	ByCategory    []report.Slice      `json:"byCategory"`
	BySubcategory []report.Slice      `json:"bySubcategory"`
	ByAccount     []report.Slice      `json:"byAccount"`
	Budgets       []report.BudgetLine `json:"budgets"`
	Trend         []report.TrendPoint `json:"trend"`
}

// DashboardService computes dashboards and memoizes them per filter. Write
// paths call Invalidate so a stale aggregate never outlives the data it was
// computed from.
type DashboardService struct {
	storage *storage.Store
	cache   *cache.LRUCache[*Dashboard]
}

func NewDashboardService(storage *storage.Store, size int, ttl time.Duration) *DashboardService {
	return &DashboardService{
		storage: storage,
		cache:   cache.New[*Dashboard](size, ttl),
	}
}

// Invalidate drops every memoized dashboard.
func (s *DashboardService) Invalidate() {
	s.cache.Clear()
}

// StartCacheJanitor sweeps expired dashboards until ctx is cancelled.
func (s *DashboardService) StartCacheJanitor(ctx context.Context, interval time.Duration) {
	s.cache.StartJanitor(ctx, interval)
}

// Load returns the dashboard for the filter, from cache when possible. The
// budget column is anchored to the filter's From month, falling back to the
// current month for an unbounded filter.
func (s *DashboardService) Load(ctx context.Context, f query.Filter) (*Dashboard, error) {
	key := cacheKey(f)
	if d, ok := s.cache.Get(key); ok {
		return d, nil
	}

	var (
		txs           []core.Transaction
		budgets       []core.Budget
		categories    []core.Category
		subcategories []core.Subcategory
		accounts      []core.BankAccount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		txs, err = s.storage.ListTransactions(gctx)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = s.storage.ListBudgets(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.storage.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		subcategories, err = s.storage.ListSubcategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		accounts, err = s.storage.ListAccounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard data: %w", err)
	}

	month := core.CurrentMonth()
	if f.From != "" && core.ValidDate(f.From) {
		month = core.MonthKey(f.From)
	}

	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	subcategoryNames := make(map[int64]string, len(subcategories))
	for _, sub := range subcategories {
		subcategoryNames[sub.ID] = sub.Name
	}
	accountNames := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}

	filtered := f.Apply(txs)
	d := &Dashboard{
		Month:         month,
		Totals:        report.ComputeTotals(filtered),
		ByCategory:    report.SpendingByCategory(filtered, categoryNames),
		BySubcategory: report.SpendingBySubcategory(filtered, subcategoryNames),
		ByAccount:     report.SpendingByAccount(filtered, accountNames),
		Budgets:       report.BudgetVsActual(filtered, budgets, categoryNames, month),
		Trend:         report.MonthlyTrend(filtered),
	}
	s.cache.Set(key, d)
	return d, nil
}

func cacheKey(f query.Filter) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d|%s", f.Q, f.From, f.To, f.CategoryID, f.AccountID, f.Type)
}
