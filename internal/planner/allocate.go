// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"context"
	"fmt"

	"github.com/mediaforge/oohplanner/internal/models"
)

// BudgetAllocator splits a campaign budget across the top-ranked
// formats and prices each resulting line through the rate resolver.
type BudgetAllocator struct {
	resolver *RateResolver
	cfg      *Config
}

// NewBudgetAllocator creates an allocator over the given resolver.
func NewBudgetAllocator(resolver *RateResolver, cfg *Config) *BudgetAllocator {
	return &BudgetAllocator{resolver: resolver, cfg: cfg}
}

// Allocate distributes totalBudget across the ranked formats and
// returns one recommendation line per format. The top format takes the
// primary share (65%) and the runner-up the remainder; a single ranked
// format takes everything. Within a line the sub-budget splits into
// media, production and creative purposes; the creative reserve is
// zeroed, not redistributed, when the customer already has artwork.
//
// Each line's TotalCost is forced to equal its full sub-budget even
// when the itemized media, production and creative figures sum lower.
// The quick view always presents 100% budget utilization; the itemized
// truth appears only in the full plan.
//
// Allocation never fails: an unpriceable format falls back to the
// default rate inside the resolver and still yields a line.
func (b *BudgetAllocator) Allocate(ctx context.Context, ranked []RankedFormat, totalBudget float64, needsCreative bool, periodCount int) []models.RecommendationLine {
	if len(ranked) == 0 {
		return nil
	}

	shares := b.shares(len(ranked))
	lines := make([]models.RecommendationLine, 0, len(ranked))
	for i, rf := range ranked {
		subBudget := totalBudget * shares[i]
		lines = append(lines, b.buildLine(ctx, rf, i+1, subBudget, needsCreative, periodCount))
	}
	return lines
}

// shares returns the budget fraction per rank. Two or more formats use
// the configured primary/secondary split.
func (b *BudgetAllocator) shares(n int) []float64 {
	if n == 1 {
		return []float64{1}
	}
	return []float64{b.cfg.PrimaryShare, 1 - b.cfg.PrimaryShare}
}

func (b *BudgetAllocator) buildLine(ctx context.Context, rf RankedFormat, rank int, subBudget float64, needsCreative bool, periodCount int) models.RecommendationLine {
	mediaBudget := subBudget * b.cfg.MediaShare
	productionBudget := subBudget * b.cfg.ProductionShare
	creativeBudget := subBudget * b.cfg.CreativeShare

	qr := b.resolver.ResolveQuantity(ctx, rf.Slug, mediaBudget, periodCount)
	productionCost := b.resolver.ResolveProductionCost(ctx, rf.Slug, qr.Quantity, productionBudget)

	creativeCost := 0.0
	if needsCreative {
		creativeCost = b.resolver.ResolveCreativeCost(ctx, rf.Slug, qr.Quantity, creativeBudget)
	}

	return models.RecommendationLine{
		FormatSlug:     rf.Slug,
		FormatName:     rf.Name,
		Score:          rf.Score,
		Quantity:       qr.Quantity,
		Budget:         subBudget,
		CostPerUnit:    qr.CostPerUnit,
		MediaCost:      qr.MediaCost,
		ProductionCost: productionCost,
		CreativeCost:   creativeCost,
		// Forced full-spend policy: the displayed total is the whole
		// sub-budget regardless of the itemized sum.
		TotalCost: subBudget,
		Reasons:   lineReasons(rf, rank, qr, needsCreative),
	}
}

// lineReasons builds up to three short justification strings for the
// customer-facing view.
func lineReasons(rf RankedFormat, rank int, qr QuantityResolution, needsCreative bool) []string {
	reasons := make([]string, 0, 3)
	reasons = append(reasons, fmt.Sprintf("Ranked #%d for your campaign (score %d)", rank, rf.Score))
	if qr.DiscountPercent > 0 {
		reasons = append(reasons, fmt.Sprintf("%s volume discount applied", FormatPercent(qr.DiscountPercent)))
	} else if qr.UsedFallback {
		reasons = append(reasons, "Priced at the standard assumed rate")
	}
	if needsCreative && len(reasons) < 3 {
		reasons = append(reasons, "Includes creative design")
	}
	return reasons
}
