package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Port:         "8080",
		SQLiteDBPath: filepath.Join(t.TempDir(), "ibudget.db"),
		SeedSamples:  true,
		FxTimeout:    8 * time.Second,
		CacheSize:    64,
		CacheTTL:     30 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "fx timeout too small",
			mutate:      func(c *Config) { c.FxTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "fx provider URL without scheme",
			mutate:      func(c *Config) { c.FxProviderURLs = []string{"ftp://rates.example.com"} },
			wantErr:     true,
			errorString: "must be http(s)",
		},
		{
			name:        "cache size zero",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("default port: got %q, want 8080", cfg.Port)
	}
	if !cfg.SeedSamples {
		t.Errorf("sample seeding should default to on")
	}
	if cfg.FxTimeout != 8*time.Second {
		t.Errorf("default fx timeout: got %v", cfg.FxTimeout)
	}
	if len(cfg.FxProviderURLs) != 0 {
		t.Errorf("provider URL override should default to empty, got %v", cfg.FxProviderURLs)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEED_SAMPLES", "false")
	t.Setenv("FX_PROVIDER_URLS", "http://a.test/rate, http://b.test/rate")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("port override: got %q", cfg.Port)
	}
	if cfg.SeedSamples {
		t.Errorf("SEED_SAMPLES=false should disable sample seeding")
	}
	if len(cfg.FxProviderURLs) != 2 || cfg.FxProviderURLs[1] != "http://b.test/rate" {
		t.Errorf("provider URL list: got %v", cfg.FxProviderURLs)
	}
}
