package entity

import "time"

// WeekLength is the number of days in a weekly window
const WeekLength = 7

// WeeklyWindow is the current local day and the six days before it,
// oldest first
type WeeklyWindow struct {
	Days [WeekLength]DayKey
}

// BuildWeeklyWindow returns the 7 consecutive local days ending on the day of now
func BuildWeeklyWindow(now time.Time, loc *time.Location) WeeklyWindow {
	today := DayKeyOf(now, loc)

	var w WeeklyWindow
	for i := 0; i < WeekLength; i++ {
		w.Days[i] = today.AddDays(i - (WeekLength - 1))
	}
	return w
}

// Oldest returns the first day of the window
func (w WeeklyWindow) Oldest() DayKey {
	return w.Days[0]
}

// Newest returns the last day of the window (today)
func (w WeeklyWindow) Newest() DayKey {
	return w.Days[WeekLength-1]
}

// Location returns the zone the window was built in
func (w WeeklyWindow) Location() *time.Location {
	return w.Days[0].Location()
}

// Range returns the half-open query range [Start(oldest), NextStart(newest))
func (w WeeklyWindow) Range() (time.Time, time.Time) {
	return w.Oldest().Start(), w.Newest().NextStart()
}

// Index returns the position of day in the window or -1
func (w WeeklyWindow) Index(day DayKey) int {
	for i, d := range w.Days {
		if d.Equal(day) {
			return i
		}
	}
	return -1
}

// Contains reports whether day is part of the window
func (w WeeklyWindow) Contains(day DayKey) bool {
	return w.Index(day) >= 0
}
