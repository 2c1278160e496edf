package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeeklyWindow(t *testing.T) {
	now := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	w := BuildWeeklyWindow(now, time.UTC)

	want := []string{
		"2024-02-26", "2024-02-27", "2024-02-28", "2024-02-29",
		"2024-03-01", "2024-03-02", "2024-03-03",
	}
	for i, day := range w.Days {
		assert.Equal(t, want[i], day.String(), "position %d", i)
	}

	assert.Equal(t, "2024-02-26", w.Oldest().String())
	assert.Equal(t, "2024-03-03", w.Newest().String())
}

func TestBuildWeeklyWindow_ConsecutiveOldestFirst(t *testing.T) {
	loc := time.FixedZone("UTC+13:00", 13*3600)
	now := time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC)
	w := BuildWeeklyWindow(now, loc)

	// Dec 31 12:00 UTC is Jan 1 in UTC+13
	assert.Equal(t, "2025-01-01", w.Newest().String())
	for i := 1; i < WeekLength; i++ {
		assert.True(t, w.Days[i-1].AddDays(1).Equal(w.Days[i]))
	}
}

func TestWeeklyWindow_Range(t *testing.T) {
	loc := time.FixedZone("UTC+02:00", 2*3600)
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, loc)
	w := BuildWeeklyWindow(now, loc)

	from, to := w.Range()
	assert.Equal(t, time.Date(2024, time.May, 4, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2024, time.May, 11, 0, 0, 0, 0, loc), to)
	assert.Equal(t, loc, w.Location())
}

func TestWeeklyWindow_Index(t *testing.T) {
	now := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC)
	w := BuildWeeklyWindow(now, time.UTC)

	assert.Equal(t, 0, w.Index(NewDayKey(2024, time.May, 4, time.UTC)))
	assert.Equal(t, 6, w.Index(NewDayKey(2024, time.May, 10, time.UTC)))
	assert.Equal(t, -1, w.Index(NewDayKey(2024, time.May, 3, time.UTC)))
	assert.Equal(t, -1, w.Index(NewDayKey(2024, time.May, 11, time.UTC)))
	assert.True(t, w.Contains(NewDayKey(2024, time.May, 7, time.UTC)))
}

func TestWeeklyWindow_SpringForwardWeek(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2024, time.March, 12, 0, 30, 0, 0, newYork)
	w := BuildWeeklyWindow(now, newYork)

	assert.Equal(t, "2024-03-06", w.Oldest().String())
	assert.Equal(t, "2024-03-12", w.Newest().String())
	assert.Equal(t, "2024-03-10", w.Days[4].String())

	from, to := w.Range()
	assert.Equal(t, 7*24*time.Hour-time.Hour, to.Sub(from))
	for _, d := range w.Days {
		assert.Equal(t, 0, d.Start().Hour(), d.String())
	}
}
