package access

import (
	"bybit_monitor/internal/modules/access/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("access",
		fx.Provide(
			service.NewGate,
		),
	)
}
