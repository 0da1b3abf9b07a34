// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package models

import "time"

// MediaFormat describes one advertising format offered by the brokerage
// (48-sheet billboards, bus rears, digital screens, and so on).
type MediaFormat struct {
	// ID is the database identifier.
	ID string `json:"id"`

	// Slug is the stable format identifier used throughout the planner.
	Slug string `json:"slug"`

	// Name is the display name shown to customers.
	Name string `json:"name"`

	// Description is free-text marketing copy for the format.
	Description string `json:"description,omitempty"`

	// Active controls whether the format participates in recommendations.
	Active bool `json:"active"`

	// SortOrder is the registration order. Score ties between formats are
	// broken by ascending SortOrder, so it must be stable.
	SortOrder int `json:"sort_order"`
}

// RateCard holds the base price per in-charge period for a format.
// Exactly one active rate card is expected per format; the planner takes
// the first match if the store returns several.
type RateCard struct {
	// ID is the database identifier.
	ID string `json:"id"`

	// FormatSlug links the card to a MediaFormat.
	FormatSlug string `json:"format_slug"`

	// BaseRate is the undiscounted price per in-charge period, in GBP.
	BaseRate float64 `json:"base_rate"`

	// SaleRate, when set, overrides BaseRate during promotions.
	SaleRate *float64 `json:"sale_rate,omitempty"`

	// ReducedRate, when set, overrides BaseRate for negotiated pricing.
	// SaleRate takes precedence over ReducedRate.
	ReducedRate *float64 `json:"reduced_rate,omitempty"`

	// Active controls whether the card is considered at all.
	Active bool `json:"active"`
}

// EffectiveRate returns the per-period rate after applying overrides:
// sale rate first, then reduced rate, then the base rate.
func (rc *RateCard) EffectiveRate() float64 {
	if rc.SaleRate != nil {
		return *rc.SaleRate
	}
	if rc.ReducedRate != nil {
		return *rc.ReducedRate
	}
	return rc.BaseRate
}

// DiscountTier is a volume discount keyed by the number of in-charge
// periods booked. Tiers are range-partitioned by period count; when more
// than one tier matches, the highest percentage wins.
type DiscountTier struct {
	// ID is the database identifier.
	ID string `json:"id"`

	// FormatSlug links the tier to a MediaFormat.
	FormatSlug string `json:"format_slug"`

	// MinPeriods is the inclusive lower bound of the tier's range.
	MinPeriods int `json:"min_periods"`

	// MaxPeriods is the inclusive upper bound; nil means unbounded.
	MaxPeriods *int `json:"max_periods,omitempty"`

	// Percentage is the discount in percent (0-100).
	Percentage float64 `json:"percentage"`

	// Active controls whether the tier is considered.
	Active bool `json:"active"`
}

// Contains reports whether periodCount falls inside the tier's range.
func (t *DiscountTier) Contains(periodCount int) bool {
	if periodCount < t.MinPeriods {
		return false
	}
	return t.MaxPeriods == nil || periodCount <= *t.MaxPeriods
}

// ProductionCostTier prices physical production (printing, mounting) per
// unit, banded by quantity. When more than one tier matches a quantity,
// the cheapest unit cost wins.
type ProductionCostTier struct {
	// ID is the database identifier.
	ID string `json:"id"`

	// FormatSlug links the tier to a MediaFormat.
	FormatSlug string `json:"format_slug"`

	// MinQuantity is the inclusive lower bound of the band.
	MinQuantity int `json:"min_quantity"`

	// MaxQuantity is the inclusive upper bound; nil means unbounded.
	MaxQuantity *int `json:"max_quantity,omitempty"`

	// UnitCost is the production cost per unit, in GBP.
	UnitCost float64 `json:"unit_cost"`

	// Active controls whether the tier is considered.
	Active bool `json:"active"`
}

// Contains reports whether quantity falls inside the tier's band.
func (t *ProductionCostTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}

// CreativeCostTier prices creative design work per unit, banded by
// quantity. Same selection semantics as ProductionCostTier.
type CreativeCostTier struct {
	// ID is the database identifier.
	ID string `json:"id"`

	// FormatSlug links the tier to a MediaFormat.
	FormatSlug string `json:"format_slug"`

	// MinQuantity is the inclusive lower bound of the band.
	MinQuantity int `json:"min_quantity"`

	// MaxQuantity is the inclusive upper bound; nil means unbounded.
	MaxQuantity *int `json:"max_quantity,omitempty"`

	// UnitCost is the design cost per unit, in GBP.
	UnitCost float64 `json:"unit_cost"`

	// Active controls whether the tier is considered.
	Active bool `json:"active"`
}

// Contains reports whether quantity falls inside the tier's band.
func (t *CreativeCostTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}

// InchargePeriod is one two-week billing block of the OOH calendar.
// Periods are contiguous, non-overlapping, and numbered sequentially in
// ascending date order; the planner relies on that ordering.
type InchargePeriod struct {
	// Number is the sequential period number.
	Number int `json:"number"`

	// StartDate is the first day of the period.
	StartDate time.Time `json:"start_date"`

	// EndDate is the last day of the period.
	EndDate time.Time `json:"end_date"`
}
