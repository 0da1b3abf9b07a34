// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mediaforge/oohplanner/internal/metrics"
	"github.com/mediaforge/oohplanner/internal/models"
	"github.com/mediaforge/oohplanner/internal/planner"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler owns the planner endpoints and their dependencies.
type Handler struct {
	engine *planner.Engine
	store  planner.Store
	health HealthChecker
}

// NewHandler creates the API handler.
func NewHandler(engine *planner.Engine, store planner.Store, health HealthChecker) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
		health: health,
	}
}

// RecommendationResponse is the payload of the quick recommendation view.
type RecommendationResponse struct {
	Recommendations []models.RecommendationLine `json:"recommendations"`
}

// HandleRecommendations handles POST /api/v1/recommendations. It returns
// the quick budget-split view for the submitted answers.
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	answers, ok := decodePlanRequest(rw, r)
	if !ok {
		return
	}

	lines, err := h.engine.Recommend(r.Context(), answers)
	if err != nil {
		h.writePlannerError(rw, err)
		return
	}

	metrics.RecordRecommendation()
	rw.Success(RecommendationResponse{Recommendations: lines})
}

// HandlePlan handles POST /api/v1/plan. It returns the full itemized
// media plan with dates, reach and VAT.
func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	answers, ok := decodePlanRequest(rw, r)
	if !ok {
		return
	}

	plan, err := h.engine.GeneratePlan(r.Context(), answers)
	if err != nil {
		h.writePlannerError(rw, err)
		return
	}

	metrics.RecordPlanGenerated()
	rw.Success(plan)
}

// HandleQuestions handles GET /api/v1/questions. The catalogue is
// static, so no store access is needed.
func (h *Handler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"questions": planner.Questions(),
	})
}

// HandleFormats handles GET /api/v1/formats.
func (h *Handler) HandleFormats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	formats, err := h.store.ActiveMediaFormats(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(map[string]interface{}{
		"formats": formats,
	})
}

// HandlePeriods handles GET /api/v1/periods.
func (h *Handler) HandlePeriods(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	periods, err := h.store.InchargePeriods(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(map[string]interface{}{
		"periods": periods,
	})
}

// HandleStatus handles GET /api/v1/status with engine counters.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(h.engine.GetMetrics())
}

// HandleHealth handles GET /healthz. It pings the store with a short
// deadline so a stuck database cannot wedge the probe.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeUnavailable, "database unreachable")
		return
	}
	rw.Success(map[string]string{"status": "ok"})
}

// writePlannerError maps engine errors to API responses. Budget
// rejections are client errors; everything else is internal.
func (h *Handler) writePlannerError(rw *ResponseWriter, err error) {
	if errors.Is(err, planner.ErrBudgetBelowMinimum) {
		metrics.RecordBudgetRejection()
		rw.UnprocessableEntity(ErrCodeBudgetTooLow, err.Error())
		return
	}
	rw.InternalError(err)
}
