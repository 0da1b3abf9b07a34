// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/mediaforge/oohplanner/internal/models"
	"github.com/mediaforge/oohplanner/internal/planner"
)

// BreakerConfig tunes the circuit breaker guarding store reads.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Consecutive failures before opening
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// BreakerStore wraps a planner.Store with a shared circuit breaker.
// Once the database fails FailureThreshold times in a row, calls fail
// fast with gobreaker.ErrOpenState instead of piling timeouts onto a
// sick pool, and the planner degrades to its assumed-rate fallbacks.
type BreakerStore struct {
	inner  planner.Store
	cb     *gobreaker.CircuitBreaker[interface{}]
	logger zerolog.Logger
}

// NewBreakerStore wraps inner with a circuit breaker. All six read
// methods share one breaker: they hit the same pool, so they fail and
// recover together.
func NewBreakerStore(inner planner.Store, cfg BreakerConfig, logger zerolog.Logger) *BreakerStore {
	log := logger.With().Str("component", "store_breaker").Logger()
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Store circuit breaker state changed")
		},
	}

	return &BreakerStore{
		inner:  inner,
		cb:     gobreaker.NewCircuitBreaker[interface{}](settings),
		logger: log,
	}
}

// State returns the breaker state as a string, for monitoring.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

func (b *BreakerStore) ActiveMediaFormats(ctx context.Context) ([]models.MediaFormat, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ActiveMediaFormats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.MediaFormat), nil
}

func (b *BreakerStore) ActiveRateCard(ctx context.Context, formatSlug string) (*models.RateCard, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ActiveRateCard(ctx, formatSlug)
	})
	if err != nil {
		return nil, err
	}
	// A nil rate card (no row) travels as a typed nil inside interface{}.
	return out.(*models.RateCard), nil
}

func (b *BreakerStore) ActiveDiscountTiers(ctx context.Context, formatSlug string, periodCount int) ([]models.DiscountTier, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ActiveDiscountTiers(ctx, formatSlug, periodCount)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.DiscountTier), nil
}

func (b *BreakerStore) ActiveProductionTiers(ctx context.Context, formatSlug string, quantity int) ([]models.ProductionCostTier, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ActiveProductionTiers(ctx, formatSlug, quantity)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.ProductionCostTier), nil
}

func (b *BreakerStore) ActiveCreativeTiers(ctx context.Context, formatSlug string, quantity int) ([]models.CreativeCostTier, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ActiveCreativeTiers(ctx, formatSlug, quantity)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.CreativeCostTier), nil
}

func (b *BreakerStore) InchargePeriods(ctx context.Context) ([]models.InchargePeriod, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.InchargePeriods(ctx)
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.InchargePeriod), nil
}
