// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

// Package planner implements the campaign recommendation and pricing engine.
//
// Given the answers collected by the questionnaire, the engine scores and
// ranks advertising formats, splits the campaign budget across the top-ranked
// formats, resolves per-format costs through tiered rate cards and
// production/creative cost tables, reconciles the selected in-charge periods
// into billable periods and production print runs, and assembles a VAT-aware
// price breakdown.
//
// The package has no dependency on the data-store implementation; the Store
// interface decouples it from the database package and avoids circular
// imports. All lookups are read-only and every failure degrades to a
// best-effort numeric result: missing rate cards fall back to a default unit
// cost and missing cost tiers fall back to a share of the budget cap, so a
// usable recommendation is always produced.
//
// Two views are produced from the same inputs. Recommend returns quick
// recommendation lines whose totals are forced to the full sub-budget (the
// "always show full spend" policy), while GeneratePlan assembles the full
// media plan with true itemized totals. The discrepancy between the two is a
// product decision and is preserved on purpose.
package planner
