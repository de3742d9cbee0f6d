package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/rprovine/reefwatch/internal/domain/alerts"
	"github.com/rprovine/reefwatch/internal/domain/chat"
	"github.com/rprovine/reefwatch/internal/domain/forecast"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/infra/config"
	"github.com/rprovine/reefwatch/internal/infra/llm/chatgpt"
	"github.com/rprovine/reefwatch/internal/infra/oceanstore"
	"github.com/rprovine/reefwatch/internal/infra/warehouse"
	"github.com/rprovine/reefwatch/internal/observability"
)

// warehouseBackend is satisfied by both the postgres and memory warehouses.
type warehouseBackend interface {
	ocean.Warehouse
	alerts.Source
}

// cacheBackend is satisfied by both the memory and valkey stores.
type cacheBackend interface {
	ocean.Store
	alerts.Cache
}

func provideOceanConfig(cfg *config.Config) ocean.Config {
	return ocean.Config{
		CacheTTL:         cfg.Ocean.CacheTTL,
		LatestWindowDays: cfg.Ocean.LatestWindowDays,
		MaxHistoryDays:   cfg.Ocean.MaxHistoryDays,
	}
}

func provideForecastConfig(cfg *config.Config) forecast.Config {
	return forecast.Config{
		MaxDays:         cfg.Forecast.MaxDays,
		TrendWindowDays: cfg.Forecast.TrendWindowDays,
		BaselineSST:     cfg.Forecast.BaselineSST,
		BaselineDHW:     cfg.Forecast.BaselineDHW,
	}
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		Prompt:        cfg.Chat.Prompt,
		SessionMaxAge: cfg.Chat.SessionMaxAge,
	}
}

func provideSessionStore(cfg *config.Config) *chat.SessionStore {
	return chat.NewSessionStore(cfg.Chat.MaxTurns)
}

func provideWarehouse(cfg *config.Config, logger *slog.Logger) warehouseBackend {
	fallback := warehouse.NewMemory()
	dsn := strings.TrimSpace(cfg.Warehouse.Postgres.DSN)
	if dsn == "" {
		logger.Info("warehouse postgres dsn not set, using synthetic memory warehouse")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using synthetic memory warehouse", "error", err)
		return fallback
	}
	if cfg.Warehouse.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Warehouse.Postgres.MaxConns
	}
	if cfg.Warehouse.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Warehouse.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using synthetic memory warehouse", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using synthetic memory warehouse", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres warehouse enabled")
	return warehouse.NewPostgres(pool)
}

func provideStore(cfg *config.Config, logger *slog.Logger) cacheBackend {
	if cfg.Warehouse.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return oceanstore.NewMemory(cfg.Ocean.CacheMaxEntries)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return oceanstore.NewMemory(cfg.Ocean.CacheMaxEntries)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("valkey store enabled", "addr", cfg.Warehouse.Valkey.Addr)
			return oceanstore.NewValkeyStore(client, "reef")
		}
	}
	return oceanstore.NewMemory(cfg.Ocean.CacheMaxEntries)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Warehouse.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Warehouse.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Warehouse.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideChatLLM(cfg *config.Config, logger *slog.Logger) chat.LLM {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, chat will answer with fallback responses")
		return unavailableLLM{}
	}
	client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	if err != nil {
		logger.Error("failed to create chat backend, chat will answer with fallback responses", "error", err)
		return unavailableLLM{}
	}
	return chatgpt.NewChatBackend(client, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
}

// unavailableLLM always errors so the chat service degrades to its
// canned fallback responses instead of failing requests.
type unavailableLLM struct{}

var errLLMUnavailable = errors.New("llm backend not configured")

func (unavailableLLM) Complete(ctx context.Context, system string, history []chat.Message) (chat.Completion, error) {
	return chat.Completion{}, errLLMUnavailable
}

func (unavailableLLM) Stream(ctx context.Context, system string, history []chat.Message) (chat.TokenStream, error) {
	return nil, errLLMUnavailable
}

func provideAlertsService(cfg *config.Config, source alerts.Source, cache alerts.Cache, conditions alerts.ConditionsProvider, metrics *observability.Metrics, logger *slog.Logger) alerts.Service {
	return alerts.NewService(cfg.Ocean.CacheTTL, source, cache, conditions, metrics, logger)
}

func provideOceanWarehouse(w warehouseBackend) ocean.Warehouse { return w }

func provideAlertSource(w warehouseBackend) alerts.Source { return w }

func provideOceanStore(s cacheBackend) ocean.Store { return s }

func provideAlertCache(s cacheBackend) alerts.Cache { return s }

func provideConditionsProvider(svc ocean.Service) alerts.ConditionsProvider { return svc }

func provideHistoryProvider(svc ocean.Service) forecast.HistoryProvider { return svc }

func provideSummaryProvider(svc ocean.Service) chat.SummaryProvider { return svc }
