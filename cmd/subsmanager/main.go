// Package main SubsManager CLI
//
// Клиент бэкенда SubsManager: каталог сервисов, оформление и история
// подписок, кошелёк и методы оплаты, панель администратора.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/subsmanager/subsmanager-cli/internal/app/subsmanager"
	"github.com/subsmanager/subsmanager-cli/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Env)}))

	logger.Debug("starting subsmanager", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := subsmanager.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logLevel(env string) slog.Level {
	if env == "local" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
