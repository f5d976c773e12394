package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ibudget/internal/core"
)

// GetSettings loads the settings singleton. ErrNotFound means the store has
// never been seeded.
func (s *Store) GetSettings(ctx context.Context) (core.Settings, error) {
	var (
		set core.Settings
		fx  string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT key, base_currency, fx FROM settings WHERE key = ?`, core.SettingsKey).
		Scan(&set.Key, &set.BaseCurrency, &fx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Settings{}, ErrNotFound
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if err := json.Unmarshal([]byte(fx), &set.FX); err != nil {
		return core.Settings{}, fmt.Errorf("decode fx map: %w", err)
	}
	return set, nil
}

// PutSettings upserts a settings row by its key. Rows with an empty key get
// the fixed singleton key.
func (s *Store) PutSettings(ctx context.Context, set core.Settings) error {
	if set.Key == "" {
		set.Key = core.SettingsKey
	}
	if set.FX == nil {
		set.FX = map[string]float64{}
	}
	fx, err := json.Marshal(set.FX)
	if err != nil {
		return fmt.Errorf("encode fx map: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, base_currency, fx) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			base_currency = excluded.base_currency,
			fx = excluded.fx`,
		set.Key, set.BaseCurrency, string(fx))
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
