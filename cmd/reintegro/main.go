// Package main запускает HTTP-сервер формы возмещения расходов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/reintegro-form/internal/config"
	"github.com/mmeshcher/reintegro-form/internal/form"
	"github.com/mmeshcher/reintegro-form/internal/handler"
	"github.com/mmeshcher/reintegro-form/internal/logging"
	"github.com/mmeshcher/reintegro-form/internal/webhook"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization error: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	if cfg.EndpointURL == "" {
		sugar.Warnw("endpoint url is not configured", "require_endpoint", cfg.RequireEndpoint)
	}

	client := webhook.NewClient(cfg.WebhookOptions(), nil)

	h := handler.NewHandler(func() handler.Submitter {
		return form.NewController(cfg.FormOptions(), client, logger)
	}, logger)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting reintegro form server",
			"addr", cfg.RunAddress,
			"secret_delivery", cfg.SecretDelivery)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка сервера)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
