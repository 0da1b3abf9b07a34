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

func TestAnswerValue_Kinds(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		v := TextValue("brand-awareness")
		assert.Equal(t, ValueText, v.Kind())
		got, ok := v.Text()
		require.True(t, ok)
		assert.Equal(t, "brand-awareness", got)
		_, ok = v.Number()
		assert.False(t, ok)
	})

	t.Run("number", func(t *testing.T) {
		v := NumberValue(7500)
		got, ok := v.Number()
		require.True(t, ok)
		assert.InDelta(t, 7500, got, 1e-9)
		_, ok = v.TextList()
		assert.False(t, ok)
	})

	t.Run("text list", func(t *testing.T) {
		v := TextListValue("a", "b")
		got, ok := v.TextList()
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("number list", func(t *testing.T) {
		v := NumberListValue(1, 2, 5)
		got, ok := v.NumberList()
		require.True(t, ok)
		assert.Equal(t, []int{1, 2, 5}, got)
	})
}

func TestAnswerValue_ListsAreCopied(t *testing.T) {
	src := []string{"city centre"}
	v := TextListValue(src...)
	src[0] = "mutated"

	got, ok := v.TextList()
	require.True(t, ok)
	assert.Equal(t, "city centre", got[0])

	// Mutating the accessor result must not leak back either.
	got[0] = "mutated again"
	again, _ := v.TextList()
	assert.Equal(t, "city centre", again[0])
}

func TestAnswerSet_Immutable(t *testing.T) {
	a1, err := ResolveAnswer(QuestionObjective, TextValue("brand-awareness"))
	require.NoError(t, err)
	a2, err := ResolveAnswer(QuestionBudget, NumberValue(5000))
	require.NoError(t, err)

	var empty AnswerSet
	one := empty.With(a1)
	two := one.With(a2)

	assert.Zero(t, empty.Len())
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, 2, two.Len())

	_, ok := one.Get(QuestionBudget)
	assert.False(t, ok, "earlier snapshot must not see later answers")
}

func TestAnswerSet_Without(t *testing.T) {
	a, err := ResolveAnswer(QuestionObjective, TextValue("brand-awareness"))
	require.NoError(t, err)

	var set AnswerSet
	set = set.With(a)
	removed := set.Without(QuestionObjective)

	assert.Zero(t, removed.Len())
	assert.Equal(t, 1, set.Len(), "original set unchanged")
}

func TestAnswerSet_AllSorted(t *testing.T) {
	set := answersWith(t,
		answerPair(QuestionPeriods, NumberListValue(1)),
		answerPair(QuestionObjective, TextValue("brand-awareness")),
		answerPair(QuestionBudget, NumberValue(5000)),
	)

	all := set.All()
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].QuestionID, all[i].QuestionID)
	}
}
