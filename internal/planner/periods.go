// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import "sort"

// AnalyzePeriods reduces a raw selection of in-charge period numbers to
// the two figures the pricing math needs: the deduplicated period count
// (discount-tier eligibility and media cost) and the number of maximal
// contiguous runs (production print-runs). A run continues only while
// consecutive period numbers are present, so periods [3,4,7,8,9] yield
// two runs. Non-contiguity affects production cost only; media cost is
// driven by the unique count alone.
func AnalyzePeriods(periodNumbers []int) PeriodBreakdown {
	if len(periodNumbers) == 0 {
		return PeriodBreakdown{}
	}

	seen := make(map[int]struct{}, len(periodNumbers))
	unique := make([]int, 0, len(periodNumbers))
	for _, n := range periodNumbers {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	sort.Ints(unique)

	runs := 1
	for i := 1; i < len(unique); i++ {
		if unique[i] != unique[i-1]+1 {
			runs++
		}
	}

	return PeriodBreakdown{
		UniqueCount: len(unique),
		PrintRuns:   runs,
	}
}
