// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAnswers_Summation(t *testing.T) {
	// Two answers touching the same format must sum, not overwrite.
	set := answersWith(t,
		answerPair(QuestionObjective, TextValue("brand-awareness")),
		answerPair(QuestionAudience, TextListValue("commuters")),
	)

	scores := ScoreAnswers(set)
	// brand-awareness gives billboards 5, commuters add 3.
	assert.Equal(t, 8, scores[FormatBillboard48])
	// digital: 4 from objective, 2 from commuters.
	assert.Equal(t, 6, scores[FormatDigital])
}

func TestScoreAnswers_ReanswerReplaces(t *testing.T) {
	first, err := ResolveAnswer(QuestionObjective, TextValue("brand-awareness"))
	require.NoError(t, err)
	second, err := ResolveAnswer(QuestionObjective, TextValue("local-footfall"))
	require.NoError(t, err)

	var set AnswerSet
	set = set.With(first)
	set = set.With(second)

	require.Equal(t, 1, set.Len())
	scores := ScoreAnswers(set)
	assert.Equal(t, 4, scores[FormatPoster6], "only the replacement answer should count")
	assert.Zero(t, scores[FormatBillboard48])
}

func TestRankFormats(t *testing.T) {
	formats := testFormats()

	t.Run("descending by score", func(t *testing.T) {
		ranked := RankFormats(map[string]int{
			FormatBus:     4,
			FormatDigital: 9,
			FormatPoster6: 6,
		}, formats)

		require.Len(t, ranked, len(formats))
		assert.Equal(t, FormatDigital, ranked[0].Slug)
		assert.Equal(t, FormatPoster6, ranked[1].Slug)
		assert.Equal(t, FormatBus, ranked[2].Slug)
	})

	t.Run("ties keep catalogue order", func(t *testing.T) {
		ranked := RankFormats(map[string]int{
			FormatBus:     5,
			FormatPoster6: 5,
			FormatTaxi:    5,
		}, formats)

		assert.Equal(t, FormatPoster6, ranked[0].Slug)
		assert.Equal(t, FormatBus, ranked[1].Slug)
		assert.Equal(t, FormatTaxi, ranked[2].Slug)
	})

	t.Run("empty scores yield catalogue order", func(t *testing.T) {
		ranked := RankFormats(nil, formats)

		require.Len(t, ranked, len(formats))
		for i, f := range formats {
			assert.Equal(t, f.Slug, ranked[i].Slug)
			assert.Zero(t, ranked[i].Score)
		}
	})
}

func TestRankFormats_Deterministic(t *testing.T) {
	// Scores live in a map, so ranking has to impose its own total
	// order. Repeated runs over the same answers must produce the same
	// ranking every time, ties included.
	set := answersWith(t,
		answerPair(QuestionObjective, TextValue("brand-awareness")),
		answerPair(QuestionAudience, TextListValue("commuters", "tourists", "families")),
		answerPair(QuestionLocations, TextListValue("city centre", "suburbs")),
	)
	formats := testFormats()

	first := RankFormats(ScoreAnswers(set), formats)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, RankFormats(ScoreAnswers(set), formats))
	}
}

func TestTopFormats(t *testing.T) {
	ranked := []RankedFormat{
		{Slug: FormatDigital, Score: 9},
		{Slug: FormatBus, Score: 4},
		{Slug: FormatTaxi, Score: 1},
	}

	assert.Len(t, TopFormats(ranked, 2), 2)
	assert.Len(t, TopFormats(ranked, 5), 3)
	assert.Empty(t, TopFormats(nil, 2))
}
