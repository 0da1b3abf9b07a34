// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mediaforge/oohplanner/internal/models"
)

// CampaignMeta carries the campaign-level answers the assembler needs
// beyond the priced lines themselves.
type CampaignMeta struct {
	Objective      string
	TargetAudience string
	Areas          []string
	PeriodNumbers  []int
	TotalBudget    float64
}

// reachPerUnit is a display heuristic: estimated fortnightly impacts of
// one unit of each format. Unknown formats contribute nothing.
var reachPerUnit = map[string]int{
	FormatBillboard48: 120000,
	FormatDigital:     95000,
	FormatBus:         60000,
	FormatPoster6:     45000,
	FormatTaxi:        30000,
	FormatLamppost:    12000,
}

// PlanAssembler expands recommendation lines into a full media plan
// with itemized totals, campaign dates and VAT.
type PlanAssembler struct {
	store Store
	cfg   *Config
}

// NewPlanAssembler creates an assembler over the given store.
func NewPlanAssembler(store Store, cfg *Config) *PlanAssembler {
	return &PlanAssembler{store: store, cfg: cfg}
}

// Assemble turns priced recommendation lines into a GeneratedMediaPlan.
// Unlike the quick view's forced totals, each plan item's total is the
// true itemized sum: media cost plus production cost (multiplied by the
// number of print runs, since a non-contiguous booking needs a fresh
// run per contiguous block) plus creative cost. Lines whose format slug
// is not in knownSlugs are skipped; the rest of the plan assembles
// normally. VAT is applied exactly once, to the campaign subtotal,
// never per line.
func (p *PlanAssembler) Assemble(ctx context.Context, lines []models.RecommendationLine, meta CampaignMeta, knownSlugs map[string]struct{}) models.GeneratedMediaPlan {
	breakdown := AnalyzePeriods(meta.PeriodNumbers)
	printRuns := breakdown.PrintRuns
	if printRuns < 1 {
		printRuns = 1
	}

	selected := uniqueSortedPeriods(meta.PeriodNumbers)

	items := make([]models.PlanItem, 0, len(lines))
	subtotal := 0.0
	reach := 0
	for _, line := range lines {
		if _, ok := knownSlugs[line.FormatSlug]; !ok {
			continue
		}
		production := line.ProductionCost * float64(printRuns)
		total := line.MediaCost + production + line.CreativeCost
		items = append(items, models.PlanItem{
			FormatSlug:     line.FormatSlug,
			FormatName:     line.FormatName,
			Quantity:       line.Quantity,
			Areas:          meta.Areas,
			PeriodNumbers:  selected,
			PrintRuns:      printRuns,
			BaseCost:       line.MediaCost,
			ProductionCost: production,
			CreativeCost:   line.CreativeCost,
			TotalCost:      total,
		})
		subtotal += total
		reach += reachPerUnit[line.FormatSlug] * line.Quantity
	}

	start, end := p.campaignDates(ctx, selected)
	vat := subtotal * p.cfg.VATRate

	return models.GeneratedMediaPlan{
		QuoteRef:        uuid.NewString(),
		Objective:       meta.Objective,
		TargetAudience:  meta.TargetAudience,
		StartDate:       start,
		EndDate:         end,
		DurationLabel:   DurationLabel(breakdown.UniqueCount),
		EstimatedReach:  reach,
		Items:           items,
		TotalBudget:     meta.TotalBudget,
		AllocatedBudget: subtotal,
		RemainingBudget: meta.TotalBudget - subtotal,
		SubtotalExVAT:   subtotal,
		VATAmount:       vat,
		TotalIncVAT:     subtotal + vat,
		GeneratedAt:     time.Now().UTC(),
	}
}

// campaignDates resolves the selected period numbers to calendar dates
// using the in-charge calendar. Missing calendar data leaves the dates
// zero; the plan is still usable.
func (p *PlanAssembler) campaignDates(ctx context.Context, selected []int) (time.Time, time.Time) {
	if len(selected) == 0 {
		return time.Time{}, time.Time{}
	}
	periods, err := p.store.InchargePeriods(ctx)
	if err != nil || len(periods) == 0 {
		return time.Time{}, time.Time{}
	}

	byNumber := make(map[int]models.InchargePeriod, len(periods))
	for _, ip := range periods {
		byNumber[ip.Number] = ip
	}

	var start, end time.Time
	if first, ok := byNumber[selected[0]]; ok {
		start = first.StartDate
	}
	if last, ok := byNumber[selected[len(selected)-1]]; ok {
		end = last.EndDate
	}
	return start, end
}

func uniqueSortedPeriods(periodNumbers []int) []int {
	seen := make(map[int]struct{}, len(periodNumbers))
	out := make([]int, 0, len(periodNumbers))
	for _, n := range periodNumbers {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
