package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/electroshop/internal/app"
	"github.com/Skotchmaster/electroshop/internal/httpserver"
	"github.com/Skotchmaster/electroshop/pkg/config"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.MustValid()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := app.Build(logging.IntoContext(initCtx, logger), cfg, logger)
	cancel()
	if err != nil {
		logger.Error("init_failed", "error", err)
		os.Exit(1)
	}

	e := httpserver.New(logger, a.HTTPDeps())

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	go func() {
		logger.Info("http_listen", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Warn("force_exit")
		os.Exit(1)
	}()

	logger.Info("shutting_down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := a.Close(); err != nil {
		logger.Error("close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}
