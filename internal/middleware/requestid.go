// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

// Package middleware provides the HTTP middleware used by the planner
// API: request ID propagation, request logging and Prometheus
// instrumentation.
package middleware

import (
	"net/http"

	"github.com/mediaforge/oohplanner/internal/logging"
)

// RequestID assigns each request a unique ID, honoring an upstream
// X-Request-ID header when present, and exposes it in the response
// header and request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
