package realtime

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/nebulaeats/nebula/internal/config"
)

// Module wires the AMQP status feed broker.
var Module = fx.Options(
	fx.Provide(newBroker),
	fx.Invoke(registerLifecycle),
)

type brokerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newBroker(p brokerParams) (*Broker, error) {
	return Dial(p.Config.AMQPURL, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, broker *Broker) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return broker.Close()
		},
	})
}
