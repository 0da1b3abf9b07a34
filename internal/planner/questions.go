// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"fmt"
	"strings"
)

// Well-known question identifiers. Handlers and the engine extract the
// budget and creative-readiness answers by these IDs.
const (
	QuestionObjective     = "objective"
	QuestionAudience      = "audience"
	QuestionLocations     = "locations"
	QuestionPeriods       = "campaign-periods"
	QuestionBudget        = "budget"
	QuestionCreativeReady = "creative-ready"
)

// Media format slugs referenced by the built-in score tables. The store
// is the source of truth for which formats are active; slugs here that
// have no active counterpart simply never surface in recommendations.
const (
	FormatBillboard48 = "48-sheet-billboard"
	FormatPoster6     = "6-sheet-poster"
	FormatBus         = "bus-advertising"
	FormatTaxi        = "taxi-advertising"
	FormatDigital     = "digital-screen"
	FormatLamppost    = "lamppost-banner"
)

// QuestionKind determines how an answer value is interpreted and how
// format scores are derived from it.
type QuestionKind int

const (
	// KindSingle is a single choice from the question's options.
	KindSingle QuestionKind = iota
	// KindMultiple is any number of choices from the question's options.
	KindMultiple
	// KindRange is a single choice from ordered banded options.
	KindRange
	// KindLocation is a free list of area names, scored by tier
	// classification rather than by option lookup.
	KindLocation
	// KindPeriods is a list of in-charge period numbers, scored by
	// count thresholds rather than per-period accumulation.
	KindPeriods
	// KindBudget is a free numeric budget with no score contribution.
	KindBudget
)

// String returns the kind's wire name.
func (k QuestionKind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMultiple:
		return "multiple"
	case KindRange:
		return "range"
	case KindLocation:
		return "location"
	case KindPeriods:
		return "periods"
	case KindBudget:
		return "free-budget"
	default:
		return "unknown"
	}
}

// Option is one selectable answer with its per-format score deltas.
type Option struct {
	Value  string         `json:"value"`
	Label  string         `json:"label"`
	Scores map[string]int `json:"-"`
}

// Question is one questionnaire entry. VisibleWhen, when non-nil, gates
// the question on prior answers.
type Question struct {
	ID          string               `json:"id"`
	Prompt      string               `json:"prompt"`
	Kind        QuestionKind         `json:"-"`
	KindName    string               `json:"kind"`
	Options     []Option             `json:"options,omitempty"`
	VisibleWhen func(AnswerSet) bool `json:"-"`
}

// LocationTier classifies a selected area for scoring purposes.
type LocationTier int

const (
	// TierOther is any area matching no tier keyword list.
	TierOther LocationTier = iota
	// TierCentral covers city-centre and other premium footfall areas.
	TierCentral
	// TierBusiness covers business districts and commercial parks.
	TierBusiness
	// TierResidential covers suburban and residential areas.
	TierResidential
)

// String returns the tier's display name.
func (t LocationTier) String() string {
	switch t {
	case TierCentral:
		return "central"
	case TierBusiness:
		return "business-district"
	case TierResidential:
		return "residential"
	default:
		return "other"
	}
}

// areaTiers maps known area names (lower-cased) directly to a tier.
// Consulted before the keyword fallback so geographic data stays out of
// control flow.
var areaTiers = map[string]LocationTier{
	"city centre":       TierCentral,
	"high street":       TierCentral,
	"old town":          TierCentral,
	"waterfront":        TierCentral,
	"financial quarter": TierBusiness,
	"business park":     TierBusiness,
	"enterprise zone":   TierBusiness,
	"tech campus":       TierBusiness,
	"suburbs":           TierResidential,
	"housing estate":    TierResidential,
	"garden village":    TierResidential,
}

// tierKeywords is the substring fallback, checked in tier-priority
// order: central > business > residential. First match wins.
var tierKeywords = []struct {
	tier     LocationTier
	keywords []string
}{
	{TierCentral, []string{"centre", "center", "central", "downtown", "high street"}},
	{TierBusiness, []string{"business", "commercial", "office", "industrial", "financial"}},
	{TierResidential, []string{"residential", "suburb", "estate", "village"}},
}

// tierScores holds the fixed per-format score vector for each tier.
var tierScores = map[LocationTier]map[string]int{
	TierCentral: {
		FormatDigital:     5,
		FormatBillboard48: 4,
		FormatPoster6:     3,
		FormatBus:         2,
		FormatTaxi:        2,
		FormatLamppost:    1,
	},
	TierBusiness: {
		FormatDigital:     4,
		FormatTaxi:        3,
		FormatPoster6:     3,
		FormatBillboard48: 2,
		FormatBus:         2,
	},
	TierResidential: {
		FormatLamppost:    4,
		FormatBus:         3,
		FormatPoster6:     3,
		FormatBillboard48: 2,
	},
	TierOther: {
		FormatBus:      2,
		FormatLamppost: 2,
		FormatPoster6:  1,
	},
}

// periodScoreBands maps the number of distinct selected periods to a
// score vector. Bands are checked top-down; the first band whose
// minimum is satisfied wins.
var periodScoreBands = []struct {
	minPeriods int
	scores     map[string]int
}{
	{6, map[string]int{FormatBillboard48: 4, FormatPoster6: 3, FormatLamppost: 2}},
	{3, map[string]int{FormatBillboard48: 3, FormatPoster6: 2, FormatBus: 2}},
	{1, map[string]int{FormatDigital: 2, FormatPoster6: 1}},
}

// questionCatalog is the fixed questionnaire, in presentation order.
var questionCatalog = []Question{
	{
		ID:       QuestionObjective,
		Prompt:   "What is the main objective of your campaign?",
		Kind:     KindSingle,
		KindName: KindSingle.String(),
		Options: []Option{
			{Value: "brand-awareness", Label: "Build brand awareness", Scores: map[string]int{
				FormatBillboard48: 5, FormatDigital: 4, FormatBus: 3, FormatPoster6: 2,
			}},
			{Value: "local-footfall", Label: "Drive local footfall", Scores: map[string]int{
				FormatPoster6: 4, FormatLamppost: 4, FormatBus: 3, FormatTaxi: 2,
			}},
			{Value: "product-launch", Label: "Launch a product", Scores: map[string]int{
				FormatDigital: 5, FormatBillboard48: 3, FormatTaxi: 2, FormatPoster6: 2,
			}},
			{Value: "event-promotion", Label: "Promote an event", Scores: map[string]int{
				FormatLamppost: 5, FormatPoster6: 3, FormatBus: 2, FormatDigital: 2,
			}},
		},
	},
	{
		ID:       QuestionAudience,
		Prompt:   "Who are you trying to reach?",
		Kind:     KindMultiple,
		KindName: KindMultiple.String(),
		Options: []Option{
			{Value: "commuters", Label: "Commuters", Scores: map[string]int{
				FormatBus: 4, FormatTaxi: 3, FormatBillboard48: 3, FormatDigital: 2,
			}},
			{Value: "shoppers", Label: "Shoppers", Scores: map[string]int{
				FormatPoster6: 4, FormatDigital: 3, FormatLamppost: 2,
			}},
			{Value: "families", Label: "Families", Scores: map[string]int{
				FormatBus: 3, FormatPoster6: 3, FormatLamppost: 2,
			}},
			{Value: "young-professionals", Label: "Young professionals", Scores: map[string]int{
				FormatDigital: 4, FormatTaxi: 3, FormatPoster6: 2,
			}},
			{Value: "tourists", Label: "Tourists", Scores: map[string]int{
				FormatTaxi: 4, FormatDigital: 3, FormatBillboard48: 2,
			}},
		},
	},
	{
		ID:       QuestionLocations,
		Prompt:   "Which areas should the campaign cover?",
		Kind:     KindLocation,
		KindName: KindLocation.String(),
	},
	{
		ID:       QuestionPeriods,
		Prompt:   "Which in-charge periods do you want to book?",
		Kind:     KindPeriods,
		KindName: KindPeriods.String(),
		VisibleWhen: func(set AnswerSet) bool {
			_, ok := set.Get(QuestionObjective)
			return ok
		},
	},
	{
		ID:       QuestionBudget,
		Prompt:   "What is your total campaign budget?",
		Kind:     KindBudget,
		KindName: KindBudget.String(),
	},
	{
		ID:       QuestionCreativeReady,
		Prompt:   "Do you already have campaign artwork?",
		Kind:     KindSingle,
		KindName: KindSingle.String(),
		Options: []Option{
			{Value: "yes", Label: "Yes, artwork is ready"},
			{Value: "no", Label: "No, I need creative design"},
		},
	},
}

// Questions returns the questionnaire catalog. The returned slice is a
// copy; Options and Scores are shared and must not be mutated.
func Questions() []Question {
	out := make([]Question, len(questionCatalog))
	copy(out, questionCatalog)
	return out
}

// QuestionByID returns the catalog entry for the given identifier.
func QuestionByID(id string) (Question, bool) {
	for _, q := range questionCatalog {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// ClassifyArea resolves an area name to its scoring tier. Known areas
// resolve through the lookup table; anything else falls back to keyword
// matching in tier-priority order, then to TierOther.
func ClassifyArea(area string) LocationTier {
	norm := strings.ToLower(strings.TrimSpace(area))
	if tier, ok := areaTiers[norm]; ok {
		return tier
	}
	for _, tk := range tierKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(norm, kw) {
				return tk.tier
			}
		}
	}
	return TierOther
}

// ResolveAnswer validates a raw answer value against the question's
// kind and derives its per-format score contribution. Unknown option
// values contribute nothing; a value of the wrong kind is an error.
func ResolveAnswer(questionID string, value AnswerValue) (Answer, error) {
	q, ok := QuestionByID(questionID)
	if !ok {
		return Answer{}, fmt.Errorf("unknown question %q", questionID)
	}

	scores := make(map[string]int)
	switch q.Kind {
	case KindSingle, KindRange:
		v, ok := value.Text()
		if !ok {
			return Answer{}, fmt.Errorf("question %q expects a single text value, got %s", questionID, value.Kind())
		}
		mergeScores(scores, optionScores(q, v))

	case KindMultiple:
		vs, ok := value.TextList()
		if !ok {
			return Answer{}, fmt.Errorf("question %q expects a text list, got %s", questionID, value.Kind())
		}
		for _, v := range vs {
			mergeScores(scores, optionScores(q, v))
		}

	case KindLocation:
		areas, ok := value.TextList()
		if !ok {
			return Answer{}, fmt.Errorf("question %q expects a text list, got %s", questionID, value.Kind())
		}
		for _, area := range areas {
			mergeScores(scores, tierScores[ClassifyArea(area)])
		}

	case KindPeriods:
		nums, ok := value.NumberList()
		if !ok {
			return Answer{}, fmt.Errorf("question %q expects a number list, got %s", questionID, value.Kind())
		}
		mergeScores(scores, periodScores(uniquePeriodCount(nums)))

	case KindBudget:
		if _, ok := value.Number(); !ok {
			return Answer{}, fmt.Errorf("question %q expects a number, got %s", questionID, value.Kind())
		}

	default:
		return Answer{}, fmt.Errorf("question %q has unsupported kind %s", questionID, q.Kind)
	}

	return Answer{QuestionID: questionID, Value: value, Scores: scores}, nil
}

func optionScores(q Question, value string) map[string]int {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Scores
		}
	}
	return nil
}

func periodScores(count int) map[string]int {
	for _, band := range periodScoreBands {
		if count >= band.minPeriods {
			return band.scores
		}
	}
	return nil
}

func uniquePeriodCount(nums []int) int {
	seen := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		seen[n] = struct{}{}
	}
	return len(seen)
}

func mergeScores(dst map[string]int, src map[string]int) {
	for slug, delta := range src {
		dst[slug] += delta
	}
}

// BudgetFrom extracts the budget answer from the set.
func BudgetFrom(set AnswerSet) (float64, bool) {
	a, ok := set.Get(QuestionBudget)
	if !ok {
		return 0, false
	}
	return a.Value.Number()
}

// NeedsCreative reports whether the plan should reserve creative-design
// budget. Absent or non-"yes" answers count as needing creative, so the
// conservative default reserves the money.
func NeedsCreative(set AnswerSet) bool {
	a, ok := set.Get(QuestionCreativeReady)
	if !ok {
		return true
	}
	v, ok := a.Value.Text()
	return !ok || v != "yes"
}

// PeriodNumbersFrom extracts the selected in-charge period numbers, in
// selection order and without deduplication.
func PeriodNumbersFrom(set AnswerSet) []int {
	a, ok := set.Get(QuestionPeriods)
	if !ok {
		return nil
	}
	nums, ok := a.Value.NumberList()
	if !ok {
		return nil
	}
	return nums
}
