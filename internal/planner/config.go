// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"fmt"
	"time"
)

// Config contains all configuration for the planning engine.
type Config struct {
	// MinBudget is the minimum campaign budget in GBP. Requests below it
	// are rejected before any scoring or allocation happens.
	// Default: 500.
	MinBudget float64 `json:"min_budget" koanf:"min_budget"`

	// VATRate is the VAT fraction applied once to the final subtotal.
	// Default: 0.20.
	VATRate float64 `json:"vat_rate" koanf:"vat_rate"`

	// TopFormats is how many ranked formats receive budget: 1 or 2.
	// Capped at 2 on purpose to avoid over-fragmenting small budgets;
	// the allocator's share table only covers a primary and a runner-up.
	// Default: 2.
	TopFormats int `json:"top_formats" koanf:"top_formats"`

	// PrimaryShare is the fraction of the total budget given to the
	// top-ranked format; the runner-up receives the remainder.
	// Default: 0.65.
	PrimaryShare float64 `json:"primary_share" koanf:"primary_share"`

	// MediaShare is the fraction of a line's sub-budget spent on media.
	// Default: 0.70.
	MediaShare float64 `json:"media_share" koanf:"media_share"`

	// ProductionShare is the fraction of a line's sub-budget reserved for
	// production. Default: 0.15.
	ProductionShare float64 `json:"production_share" koanf:"production_share"`

	// CreativeShare is the fraction of a line's sub-budget reserved for
	// creative design. Zeroed entirely (not redistributed) when the
	// customer already has artwork. Default: 0.15.
	CreativeShare float64 `json:"creative_share" koanf:"creative_share"`

	// DefaultCostPerUnit is the assumed campaign cost of one unit when a
	// format has no active rate card. Default: 850.
	DefaultCostPerUnit float64 `json:"default_cost_per_unit" koanf:"default_cost_per_unit"`

	// FallbackCostShare is the fraction of the budget cap assumed for
	// production or creative cost when no cost tier matches.
	// Default: 0.5.
	FallbackCostShare float64 `json:"fallback_cost_share" koanf:"fallback_cost_share"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// CacheConfig contains caching parameters for the quick-recommendation view.
type CacheConfig struct {
	// Enabled controls whether caching is active. Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live. Default: 5m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries is the maximum number of cached entries. Default: 1000.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		MinBudget:          500,
		VATRate:            0.20,
		TopFormats:         2,
		PrimaryShare:       0.65,
		MediaShare:         0.70,
		ProductionShare:    0.15,
		CreativeShare:      0.15,
		DefaultCostPerUnit: 850,
		FallbackCostShare:  0.5,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MinBudget <= 0 {
		return fmt.Errorf("min_budget must be positive, got %f", c.MinBudget)
	}
	if c.VATRate < 0 || c.VATRate > 1 {
		return fmt.Errorf("vat_rate must be in [0, 1], got %f", c.VATRate)
	}
	if c.TopFormats < 1 || c.TopFormats > 2 {
		return fmt.Errorf("top_formats must be 1 or 2, got %d", c.TopFormats)
	}
	if c.PrimaryShare <= 0 || c.PrimaryShare > 1 {
		return fmt.Errorf("primary_share must be in (0, 1], got %f", c.PrimaryShare)
	}
	if c.MediaShare <= 0 || c.MediaShare > 1 {
		return fmt.Errorf("media_share must be in (0, 1], got %f", c.MediaShare)
	}
	if c.ProductionShare < 0 || c.CreativeShare < 0 {
		return fmt.Errorf("production_share and creative_share must be non-negative")
	}
	if sum := c.MediaShare + c.ProductionShare + c.CreativeShare; sum > 1.0001 {
		return fmt.Errorf("media/production/creative shares must not exceed 1.0, got %f", sum)
	}
	if c.DefaultCostPerUnit <= 0 {
		return fmt.Errorf("default_cost_per_unit must be positive, got %f", c.DefaultCostPerUnit)
	}
	if c.FallbackCostShare < 0 || c.FallbackCostShare > 1 {
		return fmt.Errorf("fallback_cost_share must be in [0, 1], got %f", c.FallbackCostShare)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested fields are value types.
	cp := *c
	return &cp
}
