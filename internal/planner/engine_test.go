// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/oohplanner/internal/models"
)

// mockStore implements Store for testing. Tier lookups emulate the
// store contract of filtering server-side by range.
type mockStore struct {
	formats         []models.MediaFormat
	formatsErr      error
	rateCards       map[string]*models.RateCard
	rateCardErr     error
	discountTiers   map[string][]models.DiscountTier
	discountErr     error
	productionTiers map[string][]models.ProductionCostTier
	productionErr   error
	creativeTiers   map[string][]models.CreativeCostTier
	creativeErr     error
	periods         []models.InchargePeriod
	periodsErr      error
	formatCalls     int32
}

func (m *mockStore) ActiveMediaFormats(ctx context.Context) ([]models.MediaFormat, error) {
	atomic.AddInt32(&m.formatCalls, 1)
	if m.formatsErr != nil {
		return nil, m.formatsErr
	}
	return m.formats, nil
}

func (m *mockStore) ActiveRateCard(ctx context.Context, formatSlug string) (*models.RateCard, error) {
	if m.rateCardErr != nil {
		return nil, m.rateCardErr
	}
	return m.rateCards[formatSlug], nil
}

func (m *mockStore) ActiveDiscountTiers(ctx context.Context, formatSlug string, periodCount int) ([]models.DiscountTier, error) {
	if m.discountErr != nil {
		return nil, m.discountErr
	}
	var out []models.DiscountTier
	for _, t := range m.discountTiers[formatSlug] {
		if t.Contains(periodCount) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) ActiveProductionTiers(ctx context.Context, formatSlug string, quantity int) ([]models.ProductionCostTier, error) {
	if m.productionErr != nil {
		return nil, m.productionErr
	}
	var out []models.ProductionCostTier
	for _, t := range m.productionTiers[formatSlug] {
		if t.Contains(quantity) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) ActiveCreativeTiers(ctx context.Context, formatSlug string, quantity int) ([]models.CreativeCostTier, error) {
	if m.creativeErr != nil {
		return nil, m.creativeErr
	}
	var out []models.CreativeCostTier
	for _, t := range m.creativeTiers[formatSlug] {
		if t.Contains(quantity) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) InchargePeriods(ctx context.Context) ([]models.InchargePeriod, error) {
	if m.periodsErr != nil {
		return nil, m.periodsErr
	}
	return m.periods, nil
}

func testFormats() []models.MediaFormat {
	return []models.MediaFormat{
		{ID: "f1", Slug: FormatBillboard48, Name: "48-Sheet Billboard", Active: true, SortOrder: 1},
		{ID: "f2", Slug: FormatPoster6, Name: "6-Sheet Poster", Active: true, SortOrder: 2},
		{ID: "f3", Slug: FormatBus, Name: "Bus Advertising", Active: true, SortOrder: 3},
		{ID: "f4", Slug: FormatTaxi, Name: "Taxi Advertising", Active: true, SortOrder: 4},
		{ID: "f5", Slug: FormatDigital, Name: "Digital Screen", Active: true, SortOrder: 5},
		{ID: "f6", Slug: FormatLamppost, Name: "Lamppost Banner", Active: true, SortOrder: 6},
	}
}

func newTestEngine(t *testing.T, store Store, cfg *Config) *Engine {
	t.Helper()
	eng, err := NewEngine(cfg, store, zerolog.Nop())
	require.NoError(t, err)
	return eng
}

// answersWith builds an answer set from resolved answers, failing the
// test on any resolution error.
func answersWith(t *testing.T, pairs ...struct {
	id    string
	value AnswerValue
}) AnswerSet {
	t.Helper()
	var set AnswerSet
	for _, p := range pairs {
		a, err := ResolveAnswer(p.id, p.value)
		require.NoError(t, err)
		set = set.With(a)
	}
	return set
}

func answerPair(id string, value AnswerValue) struct {
	id    string
	value AnswerValue
} {
	return struct {
		id    string
		value AnswerValue
	}{id, value}
}

func TestNewEngine(t *testing.T) {
	store := &mockStore{}

	t.Run("nil config uses defaults", func(t *testing.T) {
		eng, err := NewEngine(nil, store, zerolog.Nop())
		require.NoError(t, err)
		assert.InDelta(t, 0.20, eng.GetConfig().VATRate, 1e-9)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.VATRate = 1.5
		_, err := NewEngine(cfg, store, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("top formats above the split cap rejected", func(t *testing.T) {
		// The allocator's share table covers a primary and a runner-up;
		// a third rank must be refused here, not discovered at
		// allocation time.
		cfg := DefaultConfig()
		cfg.TopFormats = 3
		_, err := NewEngine(cfg, store, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("nil store rejected", func(t *testing.T) {
		_, err := NewEngine(nil, nil, zerolog.Nop())
		assert.Error(t, err)
	})
}

func TestEngine_Recommend_BudgetValidation(t *testing.T) {
	eng := newTestEngine(t, &mockStore{formats: testFormats()}, nil)
	ctx := context.Background()

	t.Run("missing budget", func(t *testing.T) {
		set := answersWith(t, answerPair(QuestionObjective, TextValue("brand-awareness")))
		_, err := eng.Recommend(ctx, set)
		assert.ErrorIs(t, err, ErrBudgetBelowMinimum)
	})

	t.Run("budget below minimum", func(t *testing.T) {
		set := answersWith(t, answerPair(QuestionBudget, NumberValue(100)))
		_, err := eng.Recommend(ctx, set)
		assert.ErrorIs(t, err, ErrBudgetBelowMinimum)
	})

	t.Run("budget at minimum passes", func(t *testing.T) {
		set := answersWith(t, answerPair(QuestionBudget, NumberValue(500)))
		lines, err := eng.Recommend(ctx, set)
		require.NoError(t, err)
		assert.NotEmpty(t, lines)
	})
}

func TestEngine_Recommend_BudgetConservation(t *testing.T) {
	// With two ranked formats and the forced full-spend policy, line
	// totals must sum to the campaign budget exactly.
	eng := newTestEngine(t, &mockStore{formats: testFormats()}, nil)

	set := answersWith(t,
		answerPair(QuestionObjective, TextValue("brand-awareness")),
		answerPair(QuestionAudience, TextListValue("commuters")),
		answerPair(QuestionBudget, NumberValue(10000)),
		answerPair(QuestionCreativeReady, TextValue("yes")),
	)

	lines, err := eng.Recommend(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.InDelta(t, 6500, lines[0].TotalCost, 1e-9)
	assert.InDelta(t, 3500, lines[1].TotalCost, 1e-9)
	assert.InDelta(t, 10000, lines[0].TotalCost+lines[1].TotalCost, 1e-9)

	for _, line := range lines {
		assert.InDelta(t, line.Budget, line.TotalCost, 1e-9)
		assert.Zero(t, line.CreativeCost, "creative reserved but artwork is ready")
	}
}

func TestEngine_Recommend_CacheHit(t *testing.T) {
	store := &mockStore{formats: testFormats()}
	eng := newTestEngine(t, store, nil)
	ctx := context.Background()

	set := answersWith(t,
		answerPair(QuestionObjective, TextValue("local-footfall")),
		answerPair(QuestionBudget, NumberValue(5000)),
	)

	first, err := eng.Recommend(ctx, set)
	require.NoError(t, err)
	second, err := eng.Recommend(ctx, set)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&store.formatCalls), "second request should be served from cache")

	m := eng.GetMetrics()
	assert.Equal(t, int64(2), m.RequestCount)
	assert.Equal(t, int64(1), m.CacheHits)
	assert.Equal(t, int64(1), m.CacheMisses)
}

func TestEngine_Recommend_CacheIsolation(t *testing.T) {
	// Cached entries must not alias slices handed to callers: a caller
	// mutating its result must not poison later cache hits.
	store := &mockStore{formats: testFormats()}
	eng := newTestEngine(t, store, nil)
	ctx := context.Background()

	set := answersWith(t,
		answerPair(QuestionObjective, TextValue("product-launch")),
		answerPair(QuestionBudget, NumberValue(8000)),
	)

	first, err := eng.Recommend(ctx, set)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	wantName := first[0].FormatName
	wantTotal := first[0].TotalCost
	first[0].FormatName = "mutated"
	first[0].TotalCost = -1

	second, err := eng.Recommend(ctx, set)
	require.NoError(t, err)
	require.NotEmpty(t, second)

	assert.Equal(t, wantName, second[0].FormatName)
	assert.InDelta(t, wantTotal, second[0].TotalCost, 1e-9)
	assert.Equal(t, int64(1), eng.GetMetrics().CacheHits, "second request should still be a cache hit")
}

func TestEngine_Recommend_CacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	store := &mockStore{formats: testFormats()}
	eng := newTestEngine(t, store, cfg)
	ctx := context.Background()

	set := answersWith(t, answerPair(QuestionBudget, NumberValue(5000)))

	first, err := eng.Recommend(ctx, set)
	require.NoError(t, err)
	second, err := eng.Recommend(ctx, set)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&store.formatCalls))
	assert.Zero(t, eng.GetMetrics().CacheHits)
	assert.Equal(t, first, second, "recomputed recommendations must match")
}

func TestEngine_Recommend_StoreFailure(t *testing.T) {
	store := &mockStore{formatsErr: errors.New("connection refused")}
	eng := newTestEngine(t, store, nil)

	set := answersWith(t, answerPair(QuestionBudget, NumberValue(5000)))
	_, err := eng.Recommend(context.Background(), set)
	require.Error(t, err)
	assert.Equal(t, int64(1), eng.GetMetrics().ErrorCount)
}

func TestEngine_GeneratePlan(t *testing.T) {
	store := &mockStore{
		formats: testFormats(),
		rateCards: map[string]*models.RateCard{
			FormatBillboard48: {ID: "f1", FormatSlug: FormatBillboard48, BaseRate: 1000, Active: true},
		},
		discountTiers: map[string][]models.DiscountTier{
			FormatBillboard48: {
				{FormatSlug: FormatBillboard48, MinPeriods: 3, MaxPeriods: intPtr(6), Percentage: 10, Active: true},
			},
		},
		periods: []models.InchargePeriod{
			{Number: 1, StartDate: date(2026, 1, 5), EndDate: date(2026, 1, 18)},
			{Number: 2, StartDate: date(2026, 1, 19), EndDate: date(2026, 2, 1)},
			{Number: 5, StartDate: date(2026, 3, 2), EndDate: date(2026, 3, 15)},
			{Number: 6, StartDate: date(2026, 3, 16), EndDate: date(2026, 3, 29)},
			{Number: 7, StartDate: date(2026, 3, 30), EndDate: date(2026, 4, 12)},
		},
	}
	eng := newTestEngine(t, store, nil)

	set := answersWith(t,
		answerPair(QuestionObjective, TextValue("brand-awareness")),
		answerPair(QuestionAudience, TextListValue("commuters", "tourists")),
		answerPair(QuestionLocations, TextListValue("city centre")),
		answerPair(QuestionPeriods, NumberListValue(1, 2, 5, 6, 7)),
		answerPair(QuestionBudget, NumberValue(20000)),
		answerPair(QuestionCreativeReady, TextValue("yes")),
	)

	plan, err := eng.GeneratePlan(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, plan.Items, 2)

	assert.NotEmpty(t, plan.QuoteRef)
	assert.Equal(t, "brand-awareness", plan.Objective)
	assert.Equal(t, "commuters, tourists", plan.TargetAudience)
	assert.Equal(t, date(2026, 1, 5), plan.StartDate)
	assert.Equal(t, date(2026, 4, 12), plan.EndDate)
	assert.Equal(t, "10 weeks", plan.DurationLabel)
	assert.Positive(t, plan.EstimatedReach)

	// Periods [1,2,5,6,7] form two contiguous runs, so production is
	// doubled per item and itemized totals are the true sums.
	for _, item := range plan.Items {
		assert.Equal(t, 2, item.PrintRuns)
		assert.Equal(t, []int{1, 2, 5, 6, 7}, item.PeriodNumbers)
		assert.InDelta(t, item.BaseCost+item.ProductionCost+item.CreativeCost, item.TotalCost, 1e-9)
		assert.Zero(t, item.CreativeCost)
	}

	subtotal := 0.0
	for _, item := range plan.Items {
		subtotal += item.TotalCost
	}
	assert.InDelta(t, subtotal, plan.SubtotalExVAT, 1e-9)
	assert.InDelta(t, subtotal*0.20, plan.VATAmount, 1e-9)
	assert.InDelta(t, subtotal*1.20, plan.TotalIncVAT, 1e-9)
	assert.InDelta(t, subtotal, plan.AllocatedBudget, 1e-9)
	assert.InDelta(t, 20000-subtotal, plan.RemainingBudget, 1e-9)
}

func TestEngine_GeneratePlan_BudgetValidation(t *testing.T) {
	eng := newTestEngine(t, &mockStore{formats: testFormats()}, nil)

	set := answersWith(t, answerPair(QuestionBudget, NumberValue(499)))
	_, err := eng.GeneratePlan(context.Background(), set)
	assert.ErrorIs(t, err, ErrBudgetBelowMinimum)
}

func intPtr(v int) *int { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
