package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rent-kart/internal/admin"
	"rent-kart/internal/auth"
	"rent-kart/internal/catalog"
	"rent-kart/internal/config"
	"rent-kart/internal/database"
	"rent-kart/internal/handler"
	"rent-kart/internal/invoice"
	"rent-kart/internal/kyc"
	"rent-kart/internal/notify"
	"rent-kart/internal/order"
	"rent-kart/internal/router"
	"rent-kart/internal/session"
	"rent-kart/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env when present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting rent-kart API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connections
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	rdb, err := database.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer rdb.Close()

	// Catalogue mirror
	catalogRepo := catalog.NewRepository(pool, logger)
	cache, err := catalog.NewCache(ctx, catalogRepo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalogue: %w", err)
	}

	// Record store (authoritative documents + change channel)
	recordStore := store.New(pool, rdb, logger)

	// Artifact generation: S3-backed when enabled, otherwise artifacts
	// are skipped and orders simply lack the reference until a retry.
	var artifacts invoice.ArtifactStore
	if cfg.S3.Enabled {
		artifacts, err = invoice.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialise S3 artifact store, continuing without artifacts")
			artifacts = invoice.NewNullStore(logger)
		}
	} else {
		artifacts = invoice.NewNullStore(logger)
		logger.Info().Msg("artifact uploads disabled (S3 disabled)")
	}
	invoices := invoice.NewService(invoice.NewTextRenderer(), artifacts, logger)

	notifier := notify.New(notify.NewTemplateDrafter(), logger)

	// Customer side: auth provider + session lifecycle
	provider := auth.NewMemoryProvider(logger)
	manager := session.NewManager(recordStore, cache, invoices, notifier, logger)
	manager.Bind(provider)

	// Admin side: order engine, KYC review, collection view
	engine := order.NewEngine(recordStore, invoices, notifier, logger)
	reviewer := kyc.NewReviewer(recordStore, invoices, notifier, logger)
	console, err := admin.NewConsole(ctx, recordStore, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize admin console: %w", err)
	}
	defer console.Close()

	// HTTP surface
	catalogHandler := handler.NewCatalogHandler(cache, logger)
	authHandler := handler.NewAuthHandler(provider, logger)
	sessionHandler := handler.NewSessionHandler(manager, logger)
	adminHandler := handler.NewAdminHandler(engine, reviewer, console, logger)

	mux := router.New(catalogHandler, authHandler, sessionHandler, adminHandler, cfg.Auth.AdminAPIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
