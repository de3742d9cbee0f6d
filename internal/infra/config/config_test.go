package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing-on-purpose.yaml"))

	_, err := Load()
	require.Error(t, err, "explicit CONFIG_PATH must exist")

	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 300*time.Second, cfg.Ocean.CacheTTL)
	require.Equal(t, 1000, cfg.Ocean.CacheMaxEntries)
	require.Equal(t, 7, cfg.Forecast.MaxDays)
	require.Equal(t, 20, cfg.Chat.MaxTurns)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := []byte("http:\n  address: \":9090\"\nocean:\n  cacheTtl: 60s\nllm:\n  model: gpt-4o\n")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MODEL", "gpt-4.1-mini")
	t.Setenv("CHAT_MAX_TURNS", "10")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, time.Minute, cfg.Ocean.CacheTTL)
	require.Equal(t, "gpt-4.1-mini", cfg.LLM.Model, "env wins over file")
	require.Equal(t, 10, cfg.Chat.MaxTurns)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"zero cache entries", func(c *Config) { c.Ocean.CacheMaxEntries = 0 }},
		{"history default above max", func(c *Config) { c.Ocean.DefaultHistoryDays = c.Ocean.MaxHistoryDays + 1 }},
		{"forecast horizon too long", func(c *Config) { c.Forecast.MaxDays = 8 }},
		{"trend window below horizon", func(c *Config) { c.Forecast.TrendWindowDays = 2 }},
		{"zero max turns", func(c *Config) { c.Chat.MaxTurns = 0 }},
		{"valkey enabled without addr", func(c *Config) { c.Warehouse.Valkey.Enabled = true; c.Warehouse.Valkey.Addr = " " }},
		{"rate limit without budget", func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
