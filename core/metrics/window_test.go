package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/schema"
)

// A Wednesday afternoon, so the week-start math is observable.
var wednesday = time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)

func TestResolveWindowToday(t *testing.T) {
	w, err := ResolveWindow(schema.TodayFilter, time.Time{}, time.Time{}, wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 6, 23, 59, 59, 999000000, time.UTC), w.End)
}

func TestResolveWindowYesterday(t *testing.T) {
	w, err := ResolveWindow(schema.YesterdayFilter, time.Time{}, time.Time{}, wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999000000, time.UTC), w.End)
}

func TestResolveWindowLast3Days(t *testing.T) {
	w, err := ResolveWindow(schema.Last3DaysFilter, time.Time{}, time.Time{}, wednesday)
	require.NoError(t, err)

	// Three-day inclusive window including today.
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(wednesday))
}

func TestResolveWindowLastWeekStartsMonday(t *testing.T) {
	w, err := ResolveWindow(schema.LastWeekFilter, time.Time{}, time.Time{}, wednesday)
	require.NoError(t, err)

	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), w.Start)

	// On a Monday the window starts that same day.
	monday := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	w, err = ResolveWindow(schema.LastWeekFilter, time.Time{}, time.Time{}, monday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), w.Start)

	// On a Sunday the window reaches back six days.
	sunday := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	w, err = ResolveWindow(schema.LastWeekFilter, time.Time{}, time.Time{}, sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestResolveWindowMonths(t *testing.T) {
	tests := []struct {
		filter    schema.DateFilter
		wantStart time.Time
	}{
		{schema.LastMonthFilter, time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC)},
		{schema.Last2MonthsFilter, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
		{schema.Last3MonthsFilter, time.Date(2023, 12, 6, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			w, err := ResolveWindow(tt.filter, time.Time{}, time.Time{}, wednesday)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.True(t, w.Contains(wednesday))
		})
	}
}

func TestResolveWindowCustom(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	w, err := ResolveWindow(schema.CustomFilter, start, end, wednesday)
	require.NoError(t, err)

	assert.Equal(t, start, w.Start)
	// The end day itself is included.
	assert.True(t, w.Contains(time.Date(2024, 2, 15, 18, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)))
}

func TestResolveWindowCustomMissingBounds(t *testing.T) {
	_, err := ResolveWindow(schema.CustomFilter, time.Time{}, wednesday, wednesday)
	assert.ErrorIs(t, err, contract.ErrMissingDateRange)

	_, err = ResolveWindow(schema.CustomFilter, wednesday, time.Time{}, wednesday)
	assert.ErrorIs(t, err, contract.ErrMissingDateRange)
}

func TestResolveWindowUnrecognizedFallsBackToToday(t *testing.T) {
	w, err := ResolveWindow(schema.DateFilter("fortnight"), time.Time{}, time.Time{}, wednesday)
	require.NoError(t, err)

	today, err := ResolveWindow(schema.TodayFilter, time.Time{}, time.Time{}, wednesday)
	require.NoError(t, err)
	assert.Equal(t, today, w)
}
