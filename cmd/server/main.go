// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

// Package main is the entry point for the OOH Planner server.
//
// OOH Planner is the recommendation and pricing engine behind MediaForge's
// out-of-home campaign builder. Customers answer a short questionnaire
// (objective, audience, locations, in-charge periods, budget) and the
// engine ranks media formats, splits the budget across the top formats and
// prices a full media plan against the Postgres rate-card data.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from config file and environment (Koanf v2)
//  2. Logging: Global zerolog setup from the loaded configuration
//  3. Store: Postgres connection pool (pgx) behind a circuit breaker
//  4. Engine: The recommendation engine with its in-memory result cache
//  5. HTTP Server: Chi router exposing the planning API and /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (OOHPLANNER_ prefixed or well-known names)
//   - Config file (config.yaml, or the path in OOHPLANNER_CONFIG)
//   - Built-in defaults
//
// DATABASE_URL is the only required setting.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests up to the
// configured shutdown timeout, then closes the database pool.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediaforge/oohplanner/internal/api"
	"github.com/mediaforge/oohplanner/internal/config"
	"github.com/mediaforge/oohplanner/internal/logging"
	"github.com/mediaforge/oohplanner/internal/planner"
	"github.com/mediaforge/oohplanner/internal/store"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Float64("min_budget", cfg.Planner.MinBudget).
		Bool("cache_enabled", cfg.Planner.Cache.Enabled).
		Msg("Starting OOH Planner")

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	db, err := store.New(connectCtx, cfg.Database.URL, cfg.Database.MaxConns, logging.Logger())
	cancelConnect()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	logging.Info().Msg("Database pool established")

	// All planner and API reads go through the circuit breaker; health
	// checks stay on the raw pool so /healthz reports the true database
	// state while the breaker is open.
	guarded := store.NewBreakerStore(db, store.DefaultBreakerConfig("postgres"), logging.Logger())

	engine, err := planner.NewEngine(&cfg.Planner, guarded, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create planner engine")
	}

	handler := api.NewHandler(engine, guarded, db)
	router := api.NewRouter(cfg, handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown incomplete")
	}

	logging.Info().Msg("Application stopped gracefully")
}
