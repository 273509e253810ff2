package main

import (
	"context"
	"log"

	"bybit_monitor/internal/modules/access"
	"bybit_monitor/internal/modules/bybit_client"
	"bybit_monitor/internal/modules/bybit_ws"
	"bybit_monitor/internal/modules/config"
	"bybit_monitor/internal/modules/health"
	telegram "bybit_monitor/internal/modules/telegram_bot"
	"bybit_monitor/pkg/logger"
	"bybit_monitor/pkg/tracing"

	"go.uber.org/fx"
)

const serviceName = "bybit-monitor"

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	app := fx.New(
		config.Module(),
		bybit_client.Module(),
		access.Module(),
		health.Module(),
		bybit_ws.Module(),
		telegram.Module(),
		fx.Invoke(initTracing),
	)
	app.Run()
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if !cfg.Tracing.Enabled {
		return nil
	}

	_, closeTracer, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Tracing.Host,
		Port: cfg.Tracing.Port,
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeTracer()
			return nil
		},
	})
	return nil
}
