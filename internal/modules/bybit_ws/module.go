package bybit_ws

import (
	"context"

	"bybit_monitor/internal/modules/bybit_ws/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bybit_ws",
		fx.Provide(
			service.NewClient,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, c *service.Client) {
				runCtx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go c.Run(runCtx)
						return nil
					},
					OnStop: func(ctx context.Context) error {
						cancel()
						return nil
					},
				})
			},
		),
	)
}
