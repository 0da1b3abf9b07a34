// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"sort"

	"github.com/mediaforge/oohplanner/internal/models"
)

// ScoreAnswers accumulates per-format affinity scores across every
// answer in the set. Each answer's score map merges by summation, so
// formats absent from one answer are unaffected by it. Location and
// period answers carry pre-derived scores (see ResolveAnswer), making
// this a pure fold.
func ScoreAnswers(set AnswerSet) map[string]int {
	totals := make(map[string]int)
	for _, a := range set.All() {
		mergeScores(totals, a.Scores)
	}
	return totals
}

// RankFormats orders the given formats by accumulated score,
// descending. Ties keep the formats' registration order, which the
// store delivers as the catalogue sort order; the sort is stable so a
// zero-score answer set simply yields the catalogue ordering. Formats
// not present in the score map rank with a score of zero rather than
// being dropped.
func RankFormats(scores map[string]int, formats []models.MediaFormat) []RankedFormat {
	ranked := make([]RankedFormat, 0, len(formats))
	for _, f := range formats {
		ranked = append(ranked, RankedFormat{
			Slug:  f.Slug,
			Name:  f.Name,
			Score: scores[f.Slug],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// TopFormats returns the first n ranked formats, fewer when fewer
// exist.
func TopFormats(ranked []RankedFormat, n int) []RankedFormat {
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
