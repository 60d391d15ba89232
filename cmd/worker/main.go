package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"storefront-api/config"
	"storefront-api/internal/database"
	"storefront-api/internal/jobs"
	"storefront-api/internal/logging"
	"storefront-api/internal/mail"
	"storefront-api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()
	cfg := config.Load()

	serviceName := cfg.OTelConfig.ServiceName + "-worker"
	tel, err := telemetry.Init(ctx, serviceName, cfg.OTelConfig.OTLPEndpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize telemetry: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logging.Error(ctx, "failed to shutdown telemetry", "error", err)
		}
	}()

	logging.Init(serviceName, cfg.Environment)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Error(ctx, "failed to create pgxpool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunRiverMigrations(ctx, pool); err != nil {
		logging.Error(ctx, "failed to run river migrations", "error", err)
		os.Exit(1)
	}

	mailer, err := mail.NewMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		logging.Error(ctx, "failed to create mailer", "error", err)
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(ctx, pool, mailer)
	if err != nil {
		logging.Error(ctx, "failed to create worker", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := worker.Start(ctx); err != nil {
			logging.Error(ctx, "worker error", "error", err)
		}
	}()

	logging.Info(ctx, "worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info(ctx, "shutting down worker")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := worker.Stop(shutdownCtx); err != nil {
		logging.Error(ctx, "failed to stop worker", "error", err)
	}
}
