package telegram

import (
	"context"

	"bybit_monitor/internal/modules/telegram_bot/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		fx.Provide(
			service.NewTelegram,
		),
		// Запуск основного цикла через Lifecycle
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go func() {
							_ = t.Start(context.Background())
						}()
						return nil
					},
					OnStop: func(ctx context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
