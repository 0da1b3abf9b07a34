// OOH Planner - Campaign Recommendation and Pricing Engine
// Copyright 2026 MediaForge Ltd
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mediaforge/oohplanner

package planner

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var gbpPrinter = message.NewPrinter(language.BritishEnglish)

// FormatGBP renders an amount as a pound figure with thousands
// separators. Whole-pound amounts drop the pence, so £1,500 rather
// than £1,500.00.
func FormatGBP(amount float64) string {
	rounded := math.Round(amount*100) / 100
	if rounded == math.Trunc(rounded) {
		return gbpPrinter.Sprintf("£%d", int64(rounded))
	}
	return gbpPrinter.Sprintf("£%.2f", rounded)
}

// FormatPercent renders a percentage with at most one decimal place.
func FormatPercent(pct float64) string {
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("%d%%", int64(pct))
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// DurationLabel renders a period count as a campaign duration. Each
// in-charge period is a two-week block.
func DurationLabel(periodCount int) string {
	switch {
	case periodCount <= 0:
		return "no periods selected"
	case periodCount == 1:
		return "2 weeks"
	default:
		return fmt.Sprintf("%d weeks", periodCount*2)
	}
}
