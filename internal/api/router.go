// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mediaforge/oohplanner/internal/config"
	"github.com/mediaforge/oohplanner/internal/middleware"
)

// NewRouter assembles the HTTP routes and middleware chain.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)

	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if cfg.Server.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.Server.RateLimit, time.Minute))
	}

	r.Get("/healthz", handler.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/questions", handler.HandleQuestions)
		r.Get("/formats", handler.HandleFormats)
		r.Get("/periods", handler.HandlePeriods)
		r.Get("/status", handler.HandleStatus)
		r.Post("/recommendations", handler.HandleRecommendations)
		r.Post("/plan", handler.HandlePlan)
	})

	return r
}
