// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package models

import "time"

// RecommendationLine is one ranked format with its allocated budget and
// resolved costs, as shown in the quick-recommendation view.
//
// TotalCost is deliberately forced to equal the line's full sub-budget
// even when the itemized media/production/creative costs sum to less
// (the "always show full spend" policy). The itemized fields carry the
// true resolved costs and feed the full media plan.
type RecommendationLine struct {
	// FormatSlug identifies the recommended format.
	FormatSlug string `json:"format_slug"`

	// FormatName is the display name of the format.
	FormatName string `json:"format_name"`

	// Score is the raw affinity score accumulated from the answers.
	Score int `json:"score"`

	// Quantity is the number of units the media budget buys.
	Quantity int `json:"quantity"`

	// Budget is the sub-budget allocated to this line.
	Budget float64 `json:"budget"`

	// CostPerUnit is the campaign-length cost of one unit (per-period
	// rate after discount, multiplied by the booked period count).
	CostPerUnit float64 `json:"cost_per_unit"`

	// MediaCost is the actual media spend (min of budget share and
	// quantity x cost per unit).
	MediaCost float64 `json:"media_cost"`

	// ProductionCost is the resolved production cost for one print run.
	ProductionCost float64 `json:"production_cost"`

	// CreativeCost is the resolved creative design cost. Zero when the
	// customer already has artwork.
	CreativeCost float64 `json:"creative_cost"`

	// TotalCost equals Budget (forced full spend; see type comment).
	TotalCost float64 `json:"total_cost"`

	// Reasons holds at most three human-readable justifications.
	Reasons []string `json:"reasons,omitempty"`
}

// PlanItem is one line of the full media plan with true itemized costs.
type PlanItem struct {
	// FormatSlug identifies the format.
	FormatSlug string `json:"format_slug"`

	// FormatName is the display name of the format.
	FormatName string `json:"format_name"`

	// Quantity is the number of units booked.
	Quantity int `json:"quantity"`

	// Areas lists the customer's selected locations.
	Areas []string `json:"areas,omitempty"`

	// PeriodNumbers lists the booked in-charge periods, deduplicated and
	// ascending.
	PeriodNumbers []int `json:"period_numbers,omitempty"`

	// PrintRuns is the number of production print runs. Non-contiguous
	// period selections require one run per contiguous block.
	PrintRuns int `json:"print_runs"`

	// BaseCost is the media cost.
	BaseCost float64 `json:"base_cost"`

	// ProductionCost is the production cost across all print runs.
	ProductionCost float64 `json:"production_cost"`

	// CreativeCost is the creative design cost.
	CreativeCost float64 `json:"creative_cost"`

	// TotalCost is BaseCost + ProductionCost + CreativeCost.
	TotalCost float64 `json:"total_cost"`
}

// GeneratedMediaPlan is the complete priced plan for the "generate full
// media plan" view, with campaign-level totals and VAT applied once to
// the final subtotal.
type GeneratedMediaPlan struct {
	// QuoteRef is a unique reference for downstream persistence.
	QuoteRef string `json:"quote_ref"`

	// Objective is the campaign objective the customer selected.
	Objective string `json:"objective,omitempty"`

	// TargetAudience is the audience the customer selected.
	TargetAudience string `json:"target_audience,omitempty"`

	// StartDate is the first day of the earliest booked period.
	StartDate time.Time `json:"start_date"`

	// EndDate is the last day of the latest booked period.
	EndDate time.Time `json:"end_date"`

	// DurationLabel is a display label such as "6 weeks".
	DurationLabel string `json:"duration_label,omitempty"`

	// EstimatedReach is a display-only audience estimate.
	EstimatedReach int `json:"estimated_reach"`

	// Items are the plan lines.
	Items []PlanItem `json:"items"`

	// TotalBudget is the budget the customer stated.
	TotalBudget float64 `json:"total_budget"`

	// AllocatedBudget is the sum of all item totals.
	AllocatedBudget float64 `json:"allocated_budget"`

	// RemainingBudget is TotalBudget - AllocatedBudget.
	RemainingBudget float64 `json:"remaining_budget"`

	// SubtotalExVAT equals AllocatedBudget (costs are stored ex VAT).
	SubtotalExVAT float64 `json:"subtotal_ex_vat"`

	// VATAmount is exactly 20% of SubtotalExVAT.
	VATAmount float64 `json:"vat_amount"`

	// TotalIncVAT is SubtotalExVAT x 1.2.
	TotalIncVAT float64 `json:"total_inc_vat"`

	// GeneratedAt is when the plan was assembled.
	GeneratedAt time.Time `json:"generated_at"`
}
