//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/rprovine/reefwatch/internal/bootstrap"
	"github.com/rprovine/reefwatch/internal/domain/chat"
	"github.com/rprovine/reefwatch/internal/domain/forecast"
	"github.com/rprovine/reefwatch/internal/domain/ocean"
	"github.com/rprovine/reefwatch/internal/infra/config"
	httpiface "github.com/rprovine/reefwatch/internal/interface/http"
	"github.com/rprovine/reefwatch/internal/observability"
	"github.com/rprovine/reefwatch/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		observability.NewMetrics,
		provideOceanConfig,
		provideForecastConfig,
		provideChatConfig,
		provideSessionStore,
		provideWarehouse,
		provideStore,
		provideOceanWarehouse,
		provideAlertSource,
		provideOceanStore,
		provideAlertCache,
		provideChatLLM,
		ocean.NewService,
		provideConditionsProvider,
		provideHistoryProvider,
		provideSummaryProvider,
		provideAlertsService,
		forecast.NewService,
		chat.NewService,
		httpiface.NewHandler,
		httpiface.NewChatHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
