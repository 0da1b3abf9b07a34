// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediaforge/oohplanner/internal/models"
)

// ErrBudgetBelowMinimum is returned when the campaign budget is absent
// or below the configured minimum. It blocks scoring and allocation
// until the caller corrects the budget answer.
var ErrBudgetBelowMinimum = errors.New("campaign budget below minimum")

// Metrics is a snapshot of engine counters.
type Metrics struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	ErrorCount   int64 `json:"error_count"`
}

// Engine coordinates scoring, allocation and plan assembly. It is safe
// for concurrent use; each request operates on its own AnswerSet and
// the store is read-only.
type Engine struct {
	config *Config
	logger zerolog.Logger

	store     Store
	resolver  *RateResolver
	allocator *BudgetAllocator
	assembler *PlanAssembler

	// Metrics
	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64

	// Quick-view response cache
	cache   map[string]cacheEntry
	cacheMu sync.RWMutex
}

// cacheEntry holds a cached quick-view recommendation.
type cacheEntry struct {
	lines     []models.RecommendationLine
	expiresAt time.Time
}

// NewEngine creates a planning engine over the given store.
func NewEngine(cfg *Config, store Store, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("store is required")
	}

	resolver := NewRateResolver(store, cfg)
	return &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "planner").Logger(),
		store:     store,
		resolver:  resolver,
		allocator: NewBudgetAllocator(resolver, cfg),
		assembler: NewPlanAssembler(store, cfg),
		cache:     make(map[string]cacheEntry),
	}, nil
}

// Recommend produces the quick-view recommendation lines for the given
// answers: the top-ranked formats with budget split across them and the
// forced full-spend totals. Results for identical answer sets are
// cached briefly since the questionnaire UI re-requests on every
// answer change.
func (e *Engine) Recommend(ctx context.Context, answers AnswerSet) ([]models.RecommendationLine, error) {
	start := time.Now()
	e.requestCount.Add(1)

	budget, err := e.validateBudget(answers)
	if err != nil {
		return nil, err
	}

	key := e.cacheKey(answers)
	if lines := e.checkCache(key); lines != nil {
		e.cacheHits.Add(1)
		return lines, nil
	}
	e.cacheMisses.Add(1)

	lines, err := e.buildLines(ctx, answers, budget)
	if err != nil {
		return nil, err
	}

	e.storeCache(key, lines)
	e.logger.Debug().
		Int("lines", len(lines)).
		Float64("budget", budget).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("recommendations generated")

	return lines, nil
}

// GeneratePlan produces the full media plan: the same allocation as the
// quick view expanded with print-run-aware production costs, itemized
// line totals, campaign dates, estimated reach and VAT. Plans are never
// cached; each carries a fresh quote reference and timestamp.
func (e *Engine) GeneratePlan(ctx context.Context, answers AnswerSet) (*models.GeneratedMediaPlan, error) {
	start := time.Now()
	e.requestCount.Add(1)

	budget, err := e.validateBudget(answers)
	if err != nil {
		return nil, err
	}

	formats, err := e.activeFormats(ctx)
	if err != nil {
		return nil, err
	}

	lines := e.allocateLines(ctx, answers, budget, formats)

	knownSlugs := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		knownSlugs[f.Slug] = struct{}{}
	}

	plan := e.assembler.Assemble(ctx, lines, e.campaignMeta(answers, budget), knownSlugs)
	e.logger.Debug().
		Str("quote_ref", plan.QuoteRef).
		Int("items", len(plan.Items)).
		Float64("subtotal", plan.SubtotalExVAT).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("media plan generated")

	return &plan, nil
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

func (e *Engine) validateBudget(answers AnswerSet) (float64, error) {
	budget, ok := BudgetFrom(answers)
	if !ok {
		return 0, fmt.Errorf("%w: no budget provided", ErrBudgetBelowMinimum)
	}
	if budget < e.config.MinBudget {
		return 0, fmt.Errorf("%w: %s is below the %s minimum",
			ErrBudgetBelowMinimum, FormatGBP(budget), FormatGBP(e.config.MinBudget))
	}
	return budget, nil
}

func (e *Engine) buildLines(ctx context.Context, answers AnswerSet, budget float64) ([]models.RecommendationLine, error) {
	formats, err := e.activeFormats(ctx)
	if err != nil {
		return nil, err
	}
	return e.allocateLines(ctx, answers, budget, formats), nil
}

// activeFormats is the one store call the engine cannot degrade around:
// with no format catalogue there is nothing to rank.
func (e *Engine) activeFormats(ctx context.Context) ([]models.MediaFormat, error) {
	formats, err := e.store.ActiveMediaFormats(ctx)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("load media formats: %w", err)
	}
	return formats, nil
}

func (e *Engine) allocateLines(ctx context.Context, answers AnswerSet, budget float64, formats []models.MediaFormat) []models.RecommendationLine {
	scores := ScoreAnswers(answers)
	ranked := RankFormats(scores, formats)
	top := TopFormats(ranked, e.config.TopFormats)

	periodCount := AnalyzePeriods(PeriodNumbersFrom(answers)).UniqueCount
	return e.allocator.Allocate(ctx, top, budget, NeedsCreative(answers), periodCount)
}

func (e *Engine) campaignMeta(answers AnswerSet, budget float64) CampaignMeta {
	meta := CampaignMeta{
		TotalBudget:   budget,
		PeriodNumbers: PeriodNumbersFrom(answers),
	}
	if a, ok := answers.Get(QuestionObjective); ok {
		meta.Objective, _ = a.Value.Text()
	}
	if a, ok := answers.Get(QuestionAudience); ok {
		if vs, ok := a.Value.TextList(); ok {
			meta.TargetAudience = strings.Join(vs, ", ")
		}
	}
	if a, ok := answers.Get(QuestionLocations); ok {
		meta.Areas, _ = a.Value.TextList()
	}
	return meta
}

// cacheKey derives a stable key from the answer set. AnswerSet.All
// returns answers sorted by question ID, so identical sets always
// produce identical keys.
func (e *Engine) cacheKey(answers AnswerSet) string {
	var sb strings.Builder
	sb.WriteString("rec")
	for _, a := range answers.All() {
		sb.WriteByte('|')
		sb.WriteString(a.QuestionID)
		sb.WriteByte('=')
		sb.WriteString(answerValueKey(a.Value))
	}
	return sb.String()
}

func answerValueKey(v AnswerValue) string {
	switch v.Kind() {
	case ValueText:
		t, _ := v.Text()
		return t
	case ValueNumber:
		n, _ := v.Number()
		return fmt.Sprintf("%g", n)
	case ValueTextList:
		vs, _ := v.TextList()
		return strings.Join(vs, ",")
	case ValueNumberList:
		ns, _ := v.NumberList()
		sort.Ints(ns)
		parts := make([]string, len(ns))
		for i, n := range ns {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func (e *Engine) checkCache(key string) []models.RecommendationLine {
	if !e.config.Cache.Enabled {
		return nil
	}

	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()

	entry, ok := e.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}

	// Copy so callers cannot mutate the cached slice.
	lines := make([]models.RecommendationLine, len(entry.lines))
	copy(lines, entry.lines)
	return lines
}

func (e *Engine) storeCache(key string, lines []models.RecommendationLine) {
	if !e.config.Cache.Enabled {
		return
	}

	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= e.config.Cache.MaxEntries {
		e.evictExpiredLocked()
	}

	// Copy on store as well as on read: the original slice is handed to
	// the caller, who may mutate it.
	cached := make([]models.RecommendationLine, len(lines))
	copy(cached, lines)

	e.cache[key] = cacheEntry{
		lines:     cached,
		expiresAt: time.Now().Add(e.config.Cache.TTL),
	}
}

// evictExpiredLocked removes expired cache entries.
// Must be called with cacheMu held.
func (e *Engine) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range e.cache {
		if now.After(entry.expiresAt) {
			delete(e.cache, key)
		}
	}
}
