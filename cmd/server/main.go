package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skill-passport/internal/app"
	"skill-passport/internal/config"
	"skill-passport/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "json").Error(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.LogFormat).With("app", cfg.App.AppName)

	bootstrap, cleanup, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to bootstrap app", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn(ctx, "cleanup error", "error", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		logger.Error(ctx, "invalid HTTP port", "error", err)
		return
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "http server listening", "addr", addr, "env", cfg.App.Environment)
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error(ctx, "server error", "error", err)
		}
	case sig := <-sigCh:
		logger.Info(ctx, "shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn(ctx, "shutdown error", "error", err)
		}
	}
}
