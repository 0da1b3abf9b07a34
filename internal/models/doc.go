// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

// Package models defines the domain records shared across the planner core,
// the data store, and the HTTP API.
//
// The records mirror the reference data managed by the content team: media
// formats, rate cards, volume discount tiers, production and creative cost
// tables, and the in-charge period calendar. The planner treats all of them
// as read-only; writes happen in external tooling.
package models
