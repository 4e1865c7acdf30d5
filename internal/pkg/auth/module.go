package auth

import (
	"go.uber.org/fx"

	"github.com/nebulaeats/nebula/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newCodeHasher),
	fx.Provide(newTokenStrategy),
)

func newCodeHasher() CodeHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.AuthSecret, Options{TTL: p.Config.SessionTTL})
}
