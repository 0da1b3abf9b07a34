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

func TestClassifyArea(t *testing.T) {
	tests := []struct {
		area string
		want LocationTier
	}{
		{"city centre", TierCentral},
		{"City Centre", TierCentral},
		{"  high street  ", TierCentral},
		{"financial quarter", TierBusiness},
		{"housing estate", TierResidential},
		{"Northgate Shopping Centre", TierCentral},
		{"Riverside Business Park", TierBusiness},
		{"Oakwood residential area", TierResidential},
		{"retail park", TierOther},
		{"", TierOther},
	}

	for _, tt := range tests {
		t.Run(tt.area, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyArea(tt.area))
		})
	}
}

func TestClassifyArea_TierPriority(t *testing.T) {
	// An area matching both central and business keywords classifies
	// central; central outranks business outranks residential.
	assert.Equal(t, TierCentral, ClassifyArea("central business district"))
	assert.Equal(t, TierBusiness, ClassifyArea("business village"))
}

func TestResolveAnswer_Single(t *testing.T) {
	a, err := ResolveAnswer(QuestionObjective, TextValue("event-promotion"))
	require.NoError(t, err)
	assert.Equal(t, 5, a.Scores[FormatLamppost])
	assert.Equal(t, 3, a.Scores[FormatPoster6])
}

func TestResolveAnswer_UnknownOption(t *testing.T) {
	// Unrecognized option values contribute nothing rather than failing.
	a, err := ResolveAnswer(QuestionObjective, TextValue("world-domination"))
	require.NoError(t, err)
	assert.Empty(t, a.Scores)
}

func TestResolveAnswer_Multiple(t *testing.T) {
	a, err := ResolveAnswer(QuestionAudience, TextListValue("shoppers", "families"))
	require.NoError(t, err)
	// Poster scores from both selections sum.
	assert.Equal(t, 7, a.Scores[FormatPoster6])
	assert.Equal(t, 3, a.Scores[FormatBus])
}

func TestResolveAnswer_Location(t *testing.T) {
	a, err := ResolveAnswer(QuestionLocations, TextListValue("city centre", "suburbs"))
	require.NoError(t, err)
	// Central gives billboards 4, residential adds 2.
	assert.Equal(t, 6, a.Scores[FormatBillboard48])
	// Lamppost: 1 central + 4 residential.
	assert.Equal(t, 5, a.Scores[FormatLamppost])
}

func TestResolveAnswer_Periods(t *testing.T) {
	t.Run("high band at six periods", func(t *testing.T) {
		a, err := ResolveAnswer(QuestionPeriods, NumberListValue(1, 2, 3, 4, 5, 6))
		require.NoError(t, err)
		assert.Equal(t, 4, a.Scores[FormatBillboard48])
	})

	t.Run("mid band at three periods", func(t *testing.T) {
		a, err := ResolveAnswer(QuestionPeriods, NumberListValue(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, 3, a.Scores[FormatBillboard48])
	})

	t.Run("duplicates do not promote the band", func(t *testing.T) {
		a, err := ResolveAnswer(QuestionPeriods, NumberListValue(1, 1, 1, 2, 2, 2))
		require.NoError(t, err)
		assert.Equal(t, 2, a.Scores[FormatDigital], "two unique periods stay in the low band")
	})
}

func TestResolveAnswer_KindMismatch(t *testing.T) {
	tests := []struct {
		name       string
		questionID string
		value      AnswerValue
	}{
		{"text for periods", QuestionPeriods, TextValue("1,2,3")},
		{"list for single", QuestionObjective, TextListValue("brand-awareness")},
		{"text for budget", QuestionBudget, TextValue("lots")},
		{"number for location", QuestionLocations, NumberValue(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAnswer(tt.questionID, tt.value)
			assert.Error(t, err)
		})
	}
}

func TestResolveAnswer_UnknownQuestion(t *testing.T) {
	_, err := ResolveAnswer("favourite-colour", TextValue("blue"))
	assert.Error(t, err)
}

func TestQuestions_Catalog(t *testing.T) {
	qs := Questions()
	require.NotEmpty(t, qs)

	ids := make(map[string]bool, len(qs))
	for _, q := range qs {
		ids[q.ID] = true
	}
	for _, want := range []string{
		QuestionObjective, QuestionAudience, QuestionLocations,
		QuestionPeriods, QuestionBudget, QuestionCreativeReady,
	} {
		assert.True(t, ids[want], "catalog missing %s", want)
	}
}

func TestQuestions_VisibilityPredicate(t *testing.T) {
	q, ok := QuestionByID(QuestionPeriods)
	require.True(t, ok)
	require.NotNil(t, q.VisibleWhen)

	var empty AnswerSet
	assert.False(t, q.VisibleWhen(empty))

	set := answersWith(t, answerPair(QuestionObjective, TextValue("brand-awareness")))
	assert.True(t, q.VisibleWhen(set))
}

func TestNeedsCreative(t *testing.T) {
	var empty AnswerSet
	assert.True(t, NeedsCreative(empty), "unanswered defaults to needing creative")

	ready := answersWith(t, answerPair(QuestionCreativeReady, TextValue("yes")))
	assert.False(t, NeedsCreative(ready))

	notReady := answersWith(t, answerPair(QuestionCreativeReady, TextValue("no")))
	assert.True(t, NeedsCreative(notReady))
}

func TestBudgetFrom(t *testing.T) {
	var empty AnswerSet
	_, ok := BudgetFrom(empty)
	assert.False(t, ok)

	set := answersWith(t, answerPair(QuestionBudget, NumberValue(7500)))
	got, ok := BudgetFrom(set)
	require.True(t, ok)
	assert.InDelta(t, 7500, got, 1e-9)
}

func TestPeriodNumbersFrom(t *testing.T) {
	set := answersWith(t, answerPair(QuestionPeriods, NumberListValue(3, 1, 3)))
	assert.Equal(t, []int{3, 1, 3}, PeriodNumbersFrom(set), "selection order and duplicates preserved")

	var empty AnswerSet
	assert.Nil(t, PeriodNumbersFrom(empty))
}
