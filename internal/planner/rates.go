// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"context"
	"math"
)

// QuantityResolution is the outcome of resolving a media sub-budget
// against a format's rate card.
type QuantityResolution struct {
	// Quantity is the number of units the budget affords, minimum 1.
	Quantity int

	// CostPerUnit is the whole-campaign cost of a single unit across
	// all booked periods, after any discount.
	CostPerUnit float64

	// MediaCost is the actual media spend, min(budget, CostPerUnit×Quantity).
	MediaCost float64

	// DiscountPercent is the applied discount tier percentage, 0 when
	// no tier matched.
	DiscountPercent float64

	// UsedFallback is true when no active rate card existed and the
	// default cost-per-unit was assumed.
	UsedFallback bool
}

// RateResolver turns budgets into quantities and costs using the
// store's rate cards and tiered cost tables. It performs pure lookup
// and arithmetic; it knows nothing about scoring or allocation shares.
// Every method degrades to a documented fallback instead of failing:
// missing data produces a best-effort figure, never an error.
type RateResolver struct {
	store Store
	cfg   *Config
}

// NewRateResolver creates a resolver over the given store.
func NewRateResolver(store Store, cfg *Config) *RateResolver {
	return &RateResolver{store: store, cfg: cfg}
}

// ResolveQuantity computes how many units of a format the budget buys
// for a campaign of periodCount in-charge periods. The effective
// per-period rate is the rate card's sale override, then reduced
// override, then base rate; the best matching discount tier (highest
// percentage) reduces it; cost-per-unit is the discounted rate times
// periodCount. A missing or unreadable rate card falls back to the
// configured default cost-per-unit.
func (r *RateResolver) ResolveQuantity(ctx context.Context, formatSlug string, budget float64, periodCount int) QuantityResolution {
	if periodCount < 1 {
		periodCount = 1
	}

	rc, err := r.store.ActiveRateCard(ctx, formatSlug)
	if err != nil || rc == nil {
		return r.fallbackQuantity(budget)
	}

	rate := rc.EffectiveRate()
	discount := r.bestDiscount(ctx, formatSlug, periodCount)
	costPerUnit := rate * (1 - discount/100) * float64(periodCount)
	if costPerUnit <= 0 {
		return r.fallbackQuantity(budget)
	}

	quantity := int(math.Floor(budget / costPerUnit))
	if quantity < 1 {
		quantity = 1
	}

	return QuantityResolution{
		Quantity:        quantity,
		CostPerUnit:     costPerUnit,
		MediaCost:       math.Min(budget, costPerUnit*float64(quantity)),
		DiscountPercent: discount,
	}
}

// bestDiscount returns the highest discount percentage among the tiers
// the store considers applicable. The max-percentage rule is applied to
// whatever set comes back, so a tier stored with a bad range still
// resolves deterministically.
func (r *RateResolver) bestDiscount(ctx context.Context, formatSlug string, periodCount int) float64 {
	tiers, err := r.store.ActiveDiscountTiers(ctx, formatSlug, periodCount)
	if err != nil {
		return 0
	}
	best := 0.0
	for _, t := range tiers {
		if t.Percentage > best {
			best = t.Percentage
		}
	}
	return best
}

func (r *RateResolver) fallbackQuantity(budget float64) QuantityResolution {
	costPerUnit := r.cfg.DefaultCostPerUnit
	quantity := int(math.Floor(budget / costPerUnit))
	if quantity < 1 {
		quantity = 1
	}
	return QuantityResolution{
		Quantity:     quantity,
		CostPerUnit:  costPerUnit,
		MediaCost:    math.Min(budget, costPerUnit*float64(quantity)),
		UsedFallback: true,
	}
}

// ResolveProductionCost prices the physical production of quantity
// units. The cheapest matching tier's unit cost times quantity wins,
// capped at the caller's budget cap; with no matching tier the cost is
// assumed to be half the cap.
func (r *RateResolver) ResolveProductionCost(ctx context.Context, formatSlug string, quantity int, cap float64) float64 {
	tiers, err := r.store.ActiveProductionTiers(ctx, formatSlug, quantity)
	if err != nil || len(tiers) == 0 {
		return cap * r.cfg.FallbackCostShare
	}
	unit := tiers[0].UnitCost
	for _, t := range tiers[1:] {
		if t.UnitCost < unit {
			unit = t.UnitCost
		}
	}
	return math.Min(unit*float64(quantity), cap)
}

// ResolveCreativeCost prices creative design for quantity units with
// the same tier selection and fallback rules as production.
func (r *RateResolver) ResolveCreativeCost(ctx context.Context, formatSlug string, quantity int, cap float64) float64 {
	tiers, err := r.store.ActiveCreativeTiers(ctx, formatSlug, quantity)
	if err != nil || len(tiers) == 0 {
		return cap * r.cfg.FallbackCostShare
	}
	unit := tiers[0].UnitCost
	for _, t := range tiers[1:] {
		if t.UnitCost < unit {
			unit = t.UnitCost
		}
	}
	return math.Min(unit*float64(quantity), cap)
}
