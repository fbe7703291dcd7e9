//go:build wireinject
// +build wireinject

package di

import (
	"MarketMCP/pkg/config"
	"MarketMCP/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideEndpointMetrics,

		// Analytics core
		ProvideForecaster,
		ProvideRiskAnalyzer,
		ProvideQuoteEngine,

		// Infrastructure clients
		ProvideLanguageModel,
		ProvideRedisClient,
		ProvideModelCache,
		ProvideRateLimiter,

		// Use cases
		ProvideAnalytics,
		ProvideNarrative,

		// Transport
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil, nil
}
