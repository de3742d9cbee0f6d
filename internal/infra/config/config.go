package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Ocean     OceanConfig     `yaml:"ocean"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	Chat      ChatConfig      `yaml:"chat"`
	LLM       LLMConfig       `yaml:"llm"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// OceanConfig controls the conditions cache and history windows.
type OceanConfig struct {
	CacheTTL           time.Duration `yaml:"cacheTtl"`
	CacheMaxEntries    int           `yaml:"cacheMaxEntries"`
	LatestWindowDays   int           `yaml:"latestWindowDays"`
	DefaultHistoryDays int           `yaml:"defaultHistoryDays"`
	MaxHistoryDays     int           `yaml:"maxHistoryDays"`
}

// ForecastConfig controls the persistence forecast model.
type ForecastConfig struct {
	MaxDays         int     `yaml:"maxDays"`
	TrendWindowDays int     `yaml:"trendWindowDays"`
	BaselineSST     float64 `yaml:"baselineSst"`
	BaselineDHW     float64 `yaml:"baselineDhw"`
}

// ChatConfig controls the assistant and its session store.
type ChatConfig struct {
	Prompt        string        `yaml:"prompt"`
	MaxTurns      int           `yaml:"maxTurns"`
	SessionMaxAge time.Duration `yaml:"sessionMaxAge"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
}

// LLMConfig contains settings for the OpenAI-compatible chat backend.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// WarehouseConfig selects the upstream observation store and cache backend.
type WarehouseConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the snapshot cache.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("OCEAN_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Ocean.CacheTTL = parsed
		}
	}
	if v := os.Getenv("OCEAN_CACHE_MAX_ENTRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ocean.CacheMaxEntries = parsed
		}
	}
	if v := os.Getenv("OCEAN_DEFAULT_HISTORY_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ocean.DefaultHistoryDays = parsed
		}
	}
	if v := os.Getenv("CHAT_PROMPT"); v != "" {
		cfg.Chat.Prompt = v
	}
	if v := os.Getenv("CHAT_MAX_TURNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.MaxTurns = parsed
		}
	}
	if v := os.Getenv("CHAT_SESSION_MAX_AGE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Chat.SessionMaxAge = parsed
		}
	}
	if v := os.Getenv("CHAT_SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Chat.SweepInterval = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
	if v := os.Getenv("WAREHOUSE_POSTGRES_DSN"); v != "" {
		cfg.Warehouse.Postgres.DSN = v
	}
	if v := os.Getenv("WAREHOUSE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Warehouse.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("WAREHOUSE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Warehouse.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("WAREHOUSE_VALKEY_ENABLED"); v != "" {
		cfg.Warehouse.Valkey.Enabled = isTruthy(v)
	}
	if v := os.Getenv("WAREHOUSE_VALKEY_ADDR"); v != "" {
		cfg.Warehouse.Valkey.Addr = v
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if clean := strings.TrimSpace(p); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			CORSOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             10,
			},
			Retry: RetryConfig{
				Enabled:     false,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/chat",
					"/api/v1/chat/stream",
				},
			},
		},
		Ocean: OceanConfig{
			CacheTTL:           300 * time.Second,
			CacheMaxEntries:    1000,
			LatestWindowDays:   7,
			DefaultHistoryDays: 30,
			MaxHistoryDays:     365,
		},
		Forecast: ForecastConfig{
			MaxDays:         7,
			TrendWindowDays: 14,
			BaselineSST:     26.0,
			BaselineDHW:     2.0,
		},
		Chat: ChatConfig{
			MaxTurns:      20,
			SessionMaxAge: 24 * time.Hour,
			SweepInterval: time.Hour,
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1024,
		},
		Warehouse: WarehouseConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Ocean.CacheTTL < 0 {
		return errors.New("ocean.cacheTtl cannot be negative")
	}
	if c.Ocean.CacheMaxEntries <= 0 {
		return errors.New("ocean.cacheMaxEntries must be positive")
	}
	if c.Ocean.LatestWindowDays <= 0 {
		return errors.New("ocean.latestWindowDays must be positive")
	}
	if c.Ocean.MaxHistoryDays <= 0 {
		return errors.New("ocean.maxHistoryDays must be positive")
	}
	if c.Ocean.DefaultHistoryDays <= 0 || c.Ocean.DefaultHistoryDays > c.Ocean.MaxHistoryDays {
		return errors.New("ocean.defaultHistoryDays must be within 1..maxHistoryDays")
	}
	if c.Forecast.MaxDays <= 0 || c.Forecast.MaxDays > 7 {
		return errors.New("forecast.maxDays must be within 1..7")
	}
	if c.Forecast.TrendWindowDays < c.Forecast.MaxDays {
		return errors.New("forecast.trendWindowDays must cover the forecast horizon")
	}
	if c.Chat.MaxTurns <= 0 {
		return errors.New("chat.maxTurns must be positive")
	}
	if c.Chat.SessionMaxAge <= 0 {
		return errors.New("chat.sessionMaxAge must be positive")
	}
	if c.Chat.SweepInterval <= 0 {
		return errors.New("chat.sweepInterval must be positive")
	}
	if c.Warehouse.Valkey.Enabled && strings.TrimSpace(c.Warehouse.Valkey.Addr) == "" {
		return errors.New("warehouse.valkey.addr cannot be empty when valkey cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
