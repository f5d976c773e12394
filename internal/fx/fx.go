// Package fx produces the conversion multiplier from a transaction's entered
// currency into the base currency. Lookups are best-effort: an ordered list of
// public rate providers is tried once each, and when all of them fail the
// caller gets the stored (or default) rate flagged as stale instead of an
// error, so a dead network never blocks saving a transaction.
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ibudget/internal/core"
	applog "ibudget/internal/log"
)

// DefaultMXNToUSD is the last-resort multiplier when no provider responds and
// no rate was ever stored.
const DefaultMXNToUSD = 0.055

// ErrRateUnavailable is returned for currencies the normalizer has no provider
// and no stored rate for.
var ErrRateUnavailable = errors.New("no conversion rate available")

// Provider is one remote rate source. Each endpoint returns a JSON body with a
// rates map holding the USD quote for MXN; the normalizer inverts it.
type Provider struct {
	Name string
	URL  string
}

// DefaultProviders is the fixed priority order of public providers.
func DefaultProviders() []Provider {
	return []Provider{
		{Name: "exchangerate.host", URL: "https://api.exchangerate.host/latest?base=USD&symbols=MXN"},
		{Name: "frankfurter.app", URL: "https://api.frankfurter.app/latest?from=USD&to=MXN"},
		{Name: "open.er-api.com", URL: "https://open.er-api.com/v6/latest/USD"},
	}
}

// SettingsReader is the slice of the store the normalizer needs for fallback
// rates.
type SettingsReader interface {
	GetSettings(ctx context.Context) (core.Settings, error)
}

type Normalizer struct {
	providers []Provider
	client    *http.Client
	settings  SettingsReader
}

// New builds a normalizer over the given settings source. urlOverrides, when
// non-empty, replaces the default provider list (used by tests).
func New(settings SettingsReader, timeout time.Duration, urlOverrides []string) *Normalizer {
	providers := DefaultProviders()
	if len(urlOverrides) > 0 {
		providers = make([]Provider, len(urlOverrides))
		for i, u := range urlOverrides {
			providers[i] = Provider{Name: fmt.Sprintf("override-%d", i+1), URL: u}
		}
	}
	return &Normalizer{
		providers: providers,
		client:    &http.Client{Timeout: timeout},
		settings:  settings,
	}
}

// Rate returns the multiplier converting one unit of currency into the base
// currency. stale is set when the value came from a stored or default rate
// rather than a live quote; callers surface that as a warning, not an error.
// The returned multiplier is a pre-fill: whatever the user saves on the
// transaction is the snapshot that sticks.
func (n *Normalizer) Rate(ctx context.Context, currency string) (rate float64, stale bool, err error) {
	base := "USD"
	var saved map[string]float64
	if set, serr := n.settings.GetSettings(ctx); serr == nil {
		base = set.BaseCurrency
		saved = set.FX
	}

	if currency == base {
		return 1, false, nil
	}

	// Live quotes exist only for the MXN/USD pair.
	if currency == "MXN" && base == "USD" {
		for _, p := range n.providers {
			r, perr := n.fetch(ctx, p)
			if perr != nil {
				slog.WarnContext(ctx, "Rate provider failed",
					applog.FieldProvider, p.Name, applog.FieldError, perr)
				continue
			}
			return r, false, nil
		}
	}

	if r, ok := saved[currency]; ok && r > 0 {
		slog.WarnContext(ctx, "Using stale stored rate",
			applog.FieldCurrency, currency, applog.FieldRate, r)
		return r, true, nil
	}
	if currency == "MXN" && base == "USD" {
		slog.WarnContext(ctx, "Using default rate",
			applog.FieldCurrency, currency, applog.FieldRate, DefaultMXNToUSD)
		return DefaultMXNToUSD, true, nil
	}
	return 0, false, fmt.Errorf("%w: %s to %s", ErrRateUnavailable, currency, base)
}

// fetch performs one provider attempt. Transport failures, bad statuses and
// missing or non-positive quotes all normalize to a single failure outcome.
func (n *Normalizer) fetch(ctx context.Context, p Provider) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode body: %w", err)
	}
	usdToMxn := body.Rates["MXN"]
	if usdToMxn <= 0 {
		return 0, errors.New("missing or zero MXN rate")
	}
	return 1 / usdToMxn, nil
}
