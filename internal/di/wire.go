//go:build wireinject
// +build wireinject

package di

import (
	"TAEngine/pkg/config"
	"TAEngine/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCacheService,

		// Repositories and services
		ProvideCandleSource,
		ProvideResultStore,
		ProvideStatsSink,

		// Use cases
		ProvideDispatcher,
		ProvideEngine,

		// HTTP surface and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
