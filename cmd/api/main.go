// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adiadia/callback-store/internal/backup"
	"github.com/adiadia/callback-store/internal/config"
	"github.com/adiadia/callback-store/internal/logging"
	"github.com/adiadia/callback-store/internal/persistence/postgres"
	"github.com/adiadia/callback-store/internal/persistence/sqlite"
	"github.com/adiadia/callback-store/internal/repository"
	"github.com/adiadia/callback-store/internal/service"
	httptransport "github.com/adiadia/callback-store/internal/transport/http"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := logging.NewLogger(cfg.Env)

	var (
		store  service.CallbackStore
		health httptransport.HealthChecker
	)

	switch cfg.StorageDriver {
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("sqlite open failed: %v", err)
		}
		defer db.Close()

		store = repository.NewSQLiteCallbackRepository(db, logger)
		health = sqlite.NewHealthChecker(db)
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect failed: %v", err)
		}
		defer pool.Close()

		if cfg.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool, logger); err != nil {
				log.Fatalf("schema migration failed: %v", err)
			}
		}

		store = repository.NewCallbackRepository(pool, logger)
		health = postgres.NewSchemaHealthChecker(pool)
	default:
		log.Fatalf("unknown storage driver %q", cfg.StorageDriver)
	}

	appender, err := backup.NewAppender(cfg.BackupPath, logger)
	if err != nil {
		log.Fatalf("backup open failed: %v", err)
	}
	defer appender.Close()

	ingest := service.NewIngestService(store, appender, logger)
	query := service.NewQueryService(store, logger)

	handler := httptransport.NewRouter(httptransport.Deps{
		Ingestor:      ingest,
		Querier:       query,
		Health:        health,
		Logger:        logger,
		CallbackToken: cfg.CallbackToken,
		Version:       Version,
		Commit:        Commit,
		BuildDate:     BuildDate,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api listening",
			"addr", cfg.HTTPAddr,
			"storage_driver", cfg.StorageDriver,
			"version", Version,
			"commit", Commit,
			"build_date", BuildDate,
		)

		if err := srv.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
}
