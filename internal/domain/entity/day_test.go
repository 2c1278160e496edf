package entity

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyOf_LocalMidnight(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on March 9 is already March 10 in Berlin
	instant := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-09", DayKeyOf(instant, time.UTC).String())
	assert.Equal(t, "2024-03-10", DayKeyOf(instant, berlin).String())
}

func TestDayKeyOf_NegativeOffset(t *testing.T) {
	loc := time.FixedZone("UTC-05:00", -5*3600)

	// 02:00 UTC on March 10 is still March 9 at UTC-5
	instant := time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC)
	day := DayKeyOf(instant, loc)

	assert.Equal(t, "2024-03-09", day.String())
	assert.True(t, day.Contains(instant))
	assert.Equal(t, time.Date(2024, time.March, 9, 5, 0, 0, 0, time.UTC), day.Start().UTC())
	assert.Equal(t, time.Date(2024, time.March, 10, 5, 0, 0, 0, time.UTC), day.NextStart().UTC())
}

func TestDayKeyOf_NilLocationIsUTC(t *testing.T) {
	instant := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	day := DayKeyOf(instant, nil)

	assert.Equal(t, "2024-01-01", day.String())
	assert.Equal(t, time.UTC, day.Location())
}

func TestDayKey_Bounds(t *testing.T) {
	day := NewDayKey(2024, time.May, 17, time.UTC)

	assert.Equal(t, time.Date(2024, time.May, 17, 0, 0, 0, 0, time.UTC), day.Start())
	assert.Equal(t, time.Date(2024, time.May, 18, 0, 0, 0, 0, time.UTC), day.NextStart())
	assert.True(t, day.End().Equal(time.Date(2024, time.May, 17, 23, 59, 59, int(999*time.Millisecond), time.UTC)))

	assert.True(t, day.Contains(day.Start()))
	assert.True(t, day.Contains(day.End()))
	assert.False(t, day.Contains(day.NextStart()))
	assert.False(t, day.Contains(day.Start().Add(-time.Nanosecond)))
}

func TestDayKey_SameDayIffSameLocalDate(t *testing.T) {
	loc := time.FixedZone("UTC+09:00", 9*3600)
	morning := time.Date(2024, time.June, 1, 0, 5, 0, 0, loc)
	evening := time.Date(2024, time.June, 1, 23, 55, 0, 0, loc)
	nextDay := time.Date(2024, time.June, 2, 0, 0, 0, 0, loc)

	assert.True(t, DayKeyOf(morning, loc).Equal(DayKeyOf(evening, loc)))
	assert.False(t, DayKeyOf(evening, loc).Equal(DayKeyOf(nextDay, loc)))
}

func TestDayKey_AddDays(t *testing.T) {
	tests := []struct {
		name string
		day  DayKey
		n    int
		want string
	}{
		{"same month", NewDayKey(2024, time.May, 10, time.UTC), 3, "2024-05-13"},
		{"into previous month", NewDayKey(2024, time.March, 2, time.UTC), -3, "2024-02-28"},
		{"leap day", NewDayKey(2024, time.February, 28, time.UTC), 1, "2024-02-29"},
		{"into previous year", NewDayKey(2024, time.January, 1, time.UTC), -1, "2023-12-31"},
		{"zero", NewDayKey(2024, time.January, 1, time.UTC), 0, "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.day.AddDays(tt.n).String())
		})
	}
}

func TestDayKey_AddDaysKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+03:00", 3*3600)
	day := NewDayKey(2024, time.May, 10, loc).AddDays(-6)

	assert.Equal(t, loc, day.Location())
}

func TestDayKey_Compare(t *testing.T) {
	a := NewDayKey(2024, time.May, 10, time.UTC)
	b := NewDayKey(2024, time.May, 11, time.UTC)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Equal(b))
	assert.Equal(t, time.Friday, a.Weekday())
	assert.True(t, DayKey{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestParseDayKey(t *testing.T) {
	day, err := ParseDayKey(" 2024-12-31 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", day.String())

	_, err = ParseDayKey("31/12/2024", time.UTC)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input      string
		wantOffset int
		wantErr    bool
	}{
		{input: "", wantOffset: 0},
		{input: "UTC", wantOffset: 0},
		{input: "Z", wantOffset: 0},
		{input: "+03:00", wantOffset: 3 * 3600},
		{input: "-0530", wantOffset: -(5*3600 + 30*60)},
		{input: "+3", wantOffset: 3 * 3600},
		{input: "+15:00", wantErr: true},
		{input: "+03:75", wantErr: true},
		{input: "Mars/Olympus", wantErr: true},
	}

	ref := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			loc, err := ParseLocation(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			_, offset := ref.In(loc).Zone()
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestParseLocation_IANA(t *testing.T) {
	loc, err := ParseLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestDayKey_DaylightSavingTransitions(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name          string
		day           DayKey
		wantStart     time.Time
		wantNextStart time.Time
		wantLength    time.Duration
	}{
		{
			name:          "new york spring forward",
			day:           NewDayKey(2024, time.March, 10, newYork),
			wantStart:     time.Date(2024, time.March, 10, 5, 0, 0, 0, time.UTC),
			wantNextStart: time.Date(2024, time.March, 11, 4, 0, 0, 0, time.UTC),
			wantLength:    23 * time.Hour,
		},
		{
			name:          "new york fall back",
			day:           NewDayKey(2024, time.November, 3, newYork),
			wantStart:     time.Date(2024, time.November, 3, 4, 0, 0, 0, time.UTC),
			wantNextStart: time.Date(2024, time.November, 4, 5, 0, 0, 0, time.UTC),
			wantLength:    25 * time.Hour,
		},
		{
			name:          "berlin spring forward",
			day:           NewDayKey(2024, time.March, 31, berlin),
			wantStart:     time.Date(2024, time.March, 30, 23, 0, 0, 0, time.UTC),
			wantNextStart: time.Date(2024, time.March, 31, 22, 0, 0, 0, time.UTC),
			wantLength:    23 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, next := tt.day.Start(), tt.day.NextStart()

			assert.True(t, tt.wantStart.Equal(start), "start %s", start.UTC())
			assert.True(t, tt.wantNextStart.Equal(next), "next start %s", next.UTC())
			assert.Equal(t, tt.wantLength, next.Sub(start))
			assert.True(t, next.Add(-time.Millisecond).Equal(tt.day.End()))

			assert.True(t, tt.day.Contains(start))
			assert.True(t, tt.day.Contains(tt.day.End()))
			assert.False(t, tt.day.Contains(next))

			for _, n := range []int{-1, 1} {
				moved := tt.day.AddDays(n).Start()
				assert.Equal(t, 0, moved.Hour(), "AddDays(%d)", n)
				assert.Equal(t, 0, moved.Minute(), "AddDays(%d)", n)
			}
			assert.Equal(t, tt.day.String(), tt.day.AddDays(1).AddDays(-1).String())
		})
	}
}
