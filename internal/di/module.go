package di

import (
	"go.uber.org/fx"

	"github.com/nebulaeats/nebula/internal/adapter/realtime"
	"github.com/nebulaeats/nebula/internal/app"
	"github.com/nebulaeats/nebula/internal/config"
	"github.com/nebulaeats/nebula/internal/logger"
	"github.com/nebulaeats/nebula/internal/pkg/auth"
	"github.com/nebulaeats/nebula/internal/server/http/handlers"
	"github.com/nebulaeats/nebula/internal/server/http/router"
	"github.com/nebulaeats/nebula/internal/storage/cartdb"
	"github.com/nebulaeats/nebula/internal/storage/postgres"
	"github.com/nebulaeats/nebula/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cartdb.Module,
		realtime.Module,
		usecase.Module,
		fx.Provide(
			func(s *cartdb.Store) usecase.CartStore { return s },
			func(b *realtime.Broker) usecase.StatusPublisher { return b },
			func(b *realtime.Broker) usecase.StatusFeed { return b },
			func(f *app.OrderingFacade) handlers.OrderingFacade { return f },
			func(s *postgres.Storage) router.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
