package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/craftable/logx"

	"multiauth-service/internal/app"
	"multiauth-service/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logx.Fatal("failed to initialize app: %v", err)
	}

	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			logx.Fatal("http server failed: %v", err)
		}
	}()

	logx.Info("multiauth-service started on port %s", cfg.AppPort)

	<-ctx.Done() // wait for Ctrl+C

	logx.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logx.Fatal("graceful shutdown failed: %v", err)
	}

	logx.Info("multiauth-service stopped cleanly")
}
