//go:build wireinject
// +build wireinject

package di

import (
	"MacroDash/pkg/config"
	"MacroDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideCollector,
		ProvideLogger,
		ProvideMetrics,

		// Upstream clients
		ProvideLimiter,
		ProvideMacroSource,
		ProvideMarketSource,
		ProvidePayloadCache,

		// Use cases
		ProvideMarketData,
		ProvideSnapshotProvider,
		ProvideDashboardUseCase,

		// Delivery
		ProvideHub,
		ProvideRefresher,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
