// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

// Package store implements the planner's read-only data access against
// PostgreSQL. Queries are built with squirrel and executed on a pgx
// connection pool. Tier lookups filter by range server-side; tie-breaks
// (max discount, min unit cost) stay with the caller.
package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mediaforge/oohplanner/internal/models"
)

// Postgres is the PostgreSQL-backed store. It is safe for concurrent
// use; all methods are reads.
type Postgres struct {
	pool   *pgxpool.Pool
	sb     sq.StatementBuilderType
	logger zerolog.Logger
}

// New connects to PostgreSQL and verifies the connection with a ping.
// The caller's context bounds the connection attempt.
func New(ctx context.Context, url string, maxConns int, logger zerolog.Logger) (*Postgres, error) {
	pcfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{
		pool:   pool,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Ping verifies database connectivity, for health checks.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// ActiveMediaFormats returns the active format catalogue in sort order.
func (p *Postgres) ActiveMediaFormats(ctx context.Context) ([]models.MediaFormat, error) {
	query, args, err := p.sb.
		Select("id", "slug", "name", "description", "active", "sort_order").
		From("media_formats").
		Where(sq.Eq{"active": true}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build media formats query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query media formats: %w", err)
	}
	defer rows.Close()

	var formats []models.MediaFormat
	for rows.Next() {
		var f models.MediaFormat
		if err := rows.Scan(&f.ID, &f.Slug, &f.Name, &f.Description, &f.Active, &f.SortOrder); err != nil {
			return nil, fmt.Errorf("scan media format: %w", err)
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

// ActiveRateCard returns the active rate card for a format, or nil when
// none exists. If several are active the first by id wins.
func (p *Postgres) ActiveRateCard(ctx context.Context, formatSlug string) (*models.RateCard, error) {
	query, args, err := p.sb.
		Select("id", "format_slug", "base_rate", "sale_rate", "reduced_rate", "active").
		From("rate_cards").
		Where(sq.Eq{"format_slug": formatSlug, "active": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rate card query: %w", err)
	}

	var rc models.RateCard
	row := p.pool.QueryRow(ctx, query, args...)
	err = row.Scan(&rc.ID, &rc.FormatSlug, &rc.BaseRate, &rc.SaleRate, &rc.ReducedRate, &rc.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query rate card: %w", err)
	}
	return &rc, nil
}

// ActiveDiscountTiers returns active discount tiers whose period range
// contains periodCount.
func (p *Postgres) ActiveDiscountTiers(ctx context.Context, formatSlug string, periodCount int) ([]models.DiscountTier, error) {
	query, args, err := p.sb.
		Select("id", "format_slug", "min_periods", "max_periods", "percentage", "active").
		From("discount_tiers").
		Where(sq.Eq{"format_slug": formatSlug, "active": true}).
		Where(sq.LtOrEq{"min_periods": periodCount}).
		Where(sq.Or{
			sq.Eq{"max_periods": nil},
			sq.GtOrEq{"max_periods": periodCount},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build discount tiers query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query discount tiers: %w", err)
	}
	defer rows.Close()

	var tiers []models.DiscountTier
	for rows.Next() {
		var t models.DiscountTier
		if err := rows.Scan(&t.ID, &t.FormatSlug, &t.MinPeriods, &t.MaxPeriods, &t.Percentage, &t.Active); err != nil {
			return nil, fmt.Errorf("scan discount tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// ActiveProductionTiers returns active production cost tiers whose
// quantity band contains quantity.
func (p *Postgres) ActiveProductionTiers(ctx context.Context, formatSlug string, quantity int) ([]models.ProductionCostTier, error) {
	rows, err := p.queryCostTiers(ctx, "production_cost_tiers", formatSlug, quantity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []models.ProductionCostTier
	for rows.Next() {
		var t models.ProductionCostTier
		if err := rows.Scan(&t.ID, &t.FormatSlug, &t.MinQuantity, &t.MaxQuantity, &t.UnitCost, &t.Active); err != nil {
			return nil, fmt.Errorf("scan production tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// ActiveCreativeTiers returns active creative cost tiers whose quantity
// band contains quantity.
func (p *Postgres) ActiveCreativeTiers(ctx context.Context, formatSlug string, quantity int) ([]models.CreativeCostTier, error) {
	rows, err := p.queryCostTiers(ctx, "creative_cost_tiers", formatSlug, quantity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []models.CreativeCostTier
	for rows.Next() {
		var t models.CreativeCostTier
		if err := rows.Scan(&t.ID, &t.FormatSlug, &t.MinQuantity, &t.MaxQuantity, &t.UnitCost, &t.Active); err != nil {
			return nil, fmt.Errorf("scan creative tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// queryCostTiers runs the shared quantity-band query; production and
// creative tier tables have identical shapes.
func (p *Postgres) queryCostTiers(ctx context.Context, table, formatSlug string, quantity int) (pgx.Rows, error) {
	query, args, err := p.sb.
		Select("id", "format_slug", "min_quantity", "max_quantity", "unit_cost", "active").
		From(table).
		Where(sq.Eq{"format_slug": formatSlug, "active": true}).
		Where(sq.LtOrEq{"min_quantity": quantity}).
		Where(sq.Or{
			sq.Eq{"max_quantity": nil},
			sq.GtOrEq{"max_quantity": quantity},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", table, err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return rows, nil
}

// InchargePeriods returns the in-charge calendar in ascending period
// number order.
func (p *Postgres) InchargePeriods(ctx context.Context) ([]models.InchargePeriod, error) {
	query, args, err := p.sb.
		Select("number", "start_date", "end_date").
		From("incharge_periods").
		OrderBy("number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build incharge periods query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query incharge periods: %w", err)
	}
	defer rows.Close()

	var periods []models.InchargePeriod
	for rows.Next() {
		var ip models.InchargePeriod
		if err := rows.Scan(&ip.Number, &ip.StartDate, &ip.EndDate); err != nil {
			return nil, fmt.Errorf("scan incharge period: %w", err)
		}
		periods = append(periods, ip)
	}
	return periods, rows.Err()
}
