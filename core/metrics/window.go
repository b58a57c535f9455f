// Package metrics derives dashboard statistics from aggregated commit sets.
package metrics

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// ResolveWindow maps a named date filter to a concrete [start, end] window,
// inclusive on both ends. It is a pure function of its inputs and the
// supplied wall clock, and is the single source of truth for window math.
//
// Weeks start on Monday. The source of the lastweek filter left the week
// start locale-dependent; a fixed convention keeps results deterministic.
func ResolveWindow(filter schema.DateFilter, customStart, customEnd, now time.Time) (schema.TimeWindow, error) {
	switch filter {
	case schema.YesterdayFilter:
		day := now.AddDate(0, 0, -1)
		return schema.TimeWindow{Start: startOfDay(day), End: endOfDay(day)}, nil
	case schema.Last3DaysFilter:
		return schema.TimeWindow{Start: startOfDay(now.AddDate(0, 0, -2)), End: endOfDay(now)}, nil
	case schema.LastWeekFilter:
		return schema.TimeWindow{Start: startOfWeek(now), End: endOfDay(now)}, nil
	case schema.LastMonthFilter:
		return schema.TimeWindow{Start: startOfDay(now.AddDate(0, -1, 0)), End: endOfDay(now)}, nil
	case schema.Last2MonthsFilter:
		return schema.TimeWindow{Start: startOfDay(now.AddDate(0, -2, 0)), End: endOfDay(now)}, nil
	case schema.Last3MonthsFilter:
		return schema.TimeWindow{Start: startOfDay(now.AddDate(0, -3, 0)), End: endOfDay(now)}, nil
	case schema.CustomFilter:
		if customStart.IsZero() || customEnd.IsZero() {
			return schema.TimeWindow{}, contract.ErrMissingDateRange
		}
		// The end bound is widened to the end of its calendar day so a range
		// given as plain dates includes both boundary days.
		return schema.TimeWindow{Start: customStart, End: endOfDay(customEnd)}, nil
	default:
		// Unrecognized filters degrade to today; callers warn upstream.
		return schema.TimeWindow{Start: startOfDay(now), End: endOfDay(now)}, nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// startOfWeek returns 00:00:00 of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t.AddDate(0, 0, -offset))
}

// sameDay reports whether a falls on the same calendar day as b, in b's
// location. a may carry any recorded offset.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
