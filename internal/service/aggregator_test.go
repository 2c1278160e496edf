package service

import (
	"testing"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rated(day time.Time, rating int32) *entity.JournalEntry {
	return &entity.JournalEntry{ID: uuid.New(), EntryDate: day, Rating: &rating}
}

func TestAggregateWeek_AllPositionsPresent(t *testing.T) {
	window := entity.BuildWeeklyWindow(morning, time.UTC)

	summary := AggregateWeek(window, nil)

	for i, day := range summary.Days {
		assert.True(t, day.Day.Equal(window.Days[i]))
		assert.Nil(t, day.Rating)
		assert.False(t, day.HasEntry)
		assert.Equal(t, entity.UnratedMarker, entity.MoodEmoji(day.Rating))
	}
}

func TestAggregateWeek_LastSeenWins(t *testing.T) {
	window := entity.BuildWeeklyWindow(morning, time.UTC)
	day := time.Date(2024, time.May, 8, 0, 0, 0, 0, time.UTC)

	summary := AggregateWeek(window, []*entity.JournalEntry{
		rated(day.Add(8*time.Hour), 2),
		rated(day.Add(20*time.Hour), 5),
	})

	require.NotNil(t, summary.Days[4].Rating)
	assert.Equal(t, int32(5), *summary.Days[4].Rating)
}

func TestAggregateWeek_UsesWindowLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+09:00", 9*3600)
	window := entity.BuildWeeklyWindow(morning, tokyo)

	// 20:00 UTC on May 9 is May 10 in Tokyo, the newest day
	summary := AggregateWeek(window, []*entity.JournalEntry{
		rated(time.Date(2024, time.May, 9, 20, 0, 0, 0, time.UTC), 3),
	})

	require.NotNil(t, summary.Days[6].Rating)
	assert.Equal(t, int32(3), *summary.Days[6].Rating)
	assert.Nil(t, summary.Days[5].Rating)
}

func TestAggregateWeek_IgnoresOutsideAndNil(t *testing.T) {
	window := entity.BuildWeeklyWindow(morning, time.UTC)

	summary := AggregateWeek(window, []*entity.JournalEntry{
		nil,
		rated(time.Date(2024, time.May, 3, 12, 0, 0, 0, time.UTC), 1),
		rated(time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC), 1),
	})

	assert.Equal(t, 0, summary.Rated())
}

func TestAggregateWeek_UnratedEntryClearsEarlierRating(t *testing.T) {
	window := entity.BuildWeeklyWindow(morning, time.UTC)
	day := time.Date(2024, time.May, 10, 1, 0, 0, 0, time.UTC)

	summary := AggregateWeek(window, []*entity.JournalEntry{
		rated(day, 4),
		{ID: uuid.New(), EntryDate: day.Add(time.Hour)},
	})

	assert.True(t, summary.Days[6].HasEntry)
	assert.Nil(t, summary.Days[6].Rating)
}
