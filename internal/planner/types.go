// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"context"
	"sort"

	"github.com/mediaforge/oohplanner/internal/models"
)

// Store defines the read operations the engine needs from the external data
// store. It is typically implemented by the store package; tests supply
// in-memory fakes. All methods return the described records or empty results,
// never partial errors per record.
type Store interface {
	// ActiveMediaFormats returns the active formats in registration order.
	ActiveMediaFormats(ctx context.Context) ([]models.MediaFormat, error)

	// ActiveRateCard returns the first active rate card for a format, or
	// nil when the format has none.
	ActiveRateCard(ctx context.Context, formatSlug string) (*models.RateCard, error)

	// ActiveDiscountTiers returns the active discount tiers whose period
	// range contains periodCount.
	ActiveDiscountTiers(ctx context.Context, formatSlug string, periodCount int) ([]models.DiscountTier, error)

	// ActiveProductionTiers returns the active production cost tiers whose
	// quantity band contains quantity.
	ActiveProductionTiers(ctx context.Context, formatSlug string, quantity int) ([]models.ProductionCostTier, error)

	// ActiveCreativeTiers returns the active creative cost tiers whose
	// quantity band contains quantity.
	ActiveCreativeTiers(ctx context.Context, formatSlug string, quantity int) ([]models.CreativeCostTier, error)

	// InchargePeriods returns the period calendar ascending by number.
	InchargePeriods(ctx context.Context) ([]models.InchargePeriod, error)
}

// ValueKind discriminates the representations an AnswerValue can take.
type ValueKind int

const (
	// ValueText is a single free-text or option value.
	ValueText ValueKind = iota
	// ValueNumber is a single numeric value (e.g. the budget).
	ValueNumber
	// ValueTextList is an ordered list of strings (e.g. locations).
	ValueTextList
	// ValueNumberList is an ordered list of integers (e.g. period numbers).
	ValueNumberList
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueNumber:
		return "number"
	case ValueTextList:
		return "text_list"
	case ValueNumberList:
		return "number_list"
	default:
		return "unknown"
	}
}

// AnswerValue is a tagged union over the value shapes an answer can carry.
// Consumers switch on Kind and use the matching accessor; accessors for the
// wrong kind report ok=false rather than coercing.
type AnswerValue struct {
	kind       ValueKind
	text       string
	number     float64
	textList   []string
	numberList []int
}

// TextValue wraps a single string value.
func TextValue(s string) AnswerValue {
	return AnswerValue{kind: ValueText, text: s}
}

// NumberValue wraps a single numeric value.
func NumberValue(n float64) AnswerValue {
	return AnswerValue{kind: ValueNumber, number: n}
}

// TextListValue wraps an ordered list of strings. The slice is copied.
func TextListValue(items ...string) AnswerValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AnswerValue{kind: ValueTextList, textList: cp}
}

// NumberListValue wraps an ordered list of integers. The slice is copied.
func NumberListValue(items ...int) AnswerValue {
	cp := make([]int, len(items))
	copy(cp, items)
	return AnswerValue{kind: ValueNumberList, numberList: cp}
}

// Kind returns the value discriminator.
func (v AnswerValue) Kind() ValueKind { return v.kind }

// Text returns the string value when Kind is ValueText.
func (v AnswerValue) Text() (string, bool) {
	return v.text, v.kind == ValueText
}

// Number returns the numeric value when Kind is ValueNumber.
func (v AnswerValue) Number() (float64, bool) {
	return v.number, v.kind == ValueNumber
}

// TextList returns a copy of the list when Kind is ValueTextList.
func (v AnswerValue) TextList() ([]string, bool) {
	if v.kind != ValueTextList {
		return nil, false
	}
	cp := make([]string, len(v.textList))
	copy(cp, v.textList)
	return cp, true
}

// NumberList returns a copy of the list when Kind is ValueNumberList.
func (v AnswerValue) NumberList() ([]int, bool) {
	if v.kind != ValueNumberList {
		return nil, false
	}
	cp := make([]int, len(v.numberList))
	copy(cp, v.numberList)
	return cp, true
}

// Answer is one answered question together with the score deltas that were
// resolved when the answer was given. Formats absent from Scores are
// unaffected by the answer.
type Answer struct {
	// QuestionID identifies the question this answers.
	QuestionID string `json:"question_id"`

	// Value is the selected value(s).
	Value AnswerValue `json:"-"`

	// Scores maps format slug to the score delta this answer contributes.
	Scores map[string]int `json:"scores,omitempty"`
}

// AnswerSet is an immutable collection of answers keyed by question ID.
// At most one answer exists per question: With replaces any prior answer
// for the same question and returns a new set, leaving the receiver
// untouched. The zero value is an empty set ready for use.
type AnswerSet struct {
	answers map[string]Answer
}

// With returns a new set containing a, replacing any existing answer for
// the same question.
func (s AnswerSet) With(a Answer) AnswerSet {
	next := make(map[string]Answer, len(s.answers)+1)
	for id, existing := range s.answers {
		next[id] = existing
	}
	next[a.QuestionID] = a
	return AnswerSet{answers: next}
}

// Without returns a new set with the answer for questionID removed.
func (s AnswerSet) Without(questionID string) AnswerSet {
	if _, ok := s.answers[questionID]; !ok {
		return s
	}
	next := make(map[string]Answer, len(s.answers))
	for id, existing := range s.answers {
		if id != questionID {
			next[id] = existing
		}
	}
	return AnswerSet{answers: next}
}

// Get returns the answer for questionID.
func (s AnswerSet) Get(questionID string) (Answer, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// Len returns the number of answered questions.
func (s AnswerSet) Len() int { return len(s.answers) }

// All returns the answers ordered by question ID for determinism.
func (s AnswerSet) All() []Answer {
	ids := make([]string, 0, len(s.answers))
	for id := range s.answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Answer, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.answers[id])
	}
	return out
}

// RankedFormat is one format with its accumulated affinity score.
type RankedFormat struct {
	// Slug is the format identifier.
	Slug string `json:"slug"`

	// Name is the display name.
	Name string `json:"name"`

	// Score is the accumulated score across all answers.
	Score int `json:"score"`
}

// PeriodBreakdown is the result of analyzing a period selection.
type PeriodBreakdown struct {
	// UniqueCount is the number of distinct periods selected. It drives
	// discount-tier eligibility and per-period media cost.
	UniqueCount int `json:"unique_count"`

	// PrintRuns is the number of maximal contiguous runs. Each run beyond
	// the first adds a production print run; media cost is unaffected.
	PrintRuns int `json:"print_runs"`
}
