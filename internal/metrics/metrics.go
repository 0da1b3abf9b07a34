// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

// Package metrics registers and records the service's Prometheus
// metrics. All collectors are registered on the default registry and
// exposed via promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oohplanner_api_requests_total",
		Help: "Total API requests by method, path and status.",
	}, []string{"method", "path", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oohplanner_api_request_duration_seconds",
		Help:    "API request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "oohplanner_api_active_requests",
		Help: "Number of in-flight API requests.",
	})

	recommendationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oohplanner_recommendations_total",
		Help: "Quick-view recommendation requests served.",
	})

	plansGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oohplanner_plans_generated_total",
		Help: "Full media plans generated.",
	})

	budgetRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oohplanner_budget_rejections_total",
		Help: "Requests rejected for a budget below the minimum.",
	})
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, path, status string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, path, status).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		activeRequests.Inc()
	} else {
		activeRequests.Dec()
	}
}

// RecordRecommendation counts a served quick-view recommendation.
func RecordRecommendation() {
	recommendationsTotal.Inc()
}

// RecordPlanGenerated counts a generated media plan.
func RecordPlanGenerated() {
	plansGeneratedTotal.Inc()
}

// RecordBudgetRejection counts a below-minimum budget rejection.
func RecordBudgetRejection() {
	budgetRejectedTotal.Inc()
}
