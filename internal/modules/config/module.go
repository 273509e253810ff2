package config

import "go.uber.org/fx"

// Module регистрирует конфиг и тексты ответов как fx-провайдеры.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
			NewReplies,
		),
	)
}
