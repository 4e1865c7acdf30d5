package cartdb

import (
	"context"

	"go.uber.org/fx"

	"github.com/nebulaeats/nebula/internal/config"
)

// Module wires the local cart store.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newStore(p storeParams) (*Store, error) {
	return Open(p.Config.CartStorePath)
}

func registerLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
