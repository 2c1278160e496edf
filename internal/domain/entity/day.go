package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayFormat is the layout of a calendar day key (YYYY-MM-DD)
const DayFormat = "2006-01-02"

// DayKey identifies a calendar date in the user's local time zone.
// Two instants map to the same key iff they fall on the same local date.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int

	loc *time.Location
}

// DayKeyOf returns the local calendar day of t in loc.
// The offset is applied before the date is taken, so bounds computed from
// the key never drift by a day around local midnight.
func DayKeyOf(t time.Time, loc *time.Location) DayKey {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return DayKey{
		Year:  local.Year(),
		Month: local.Month(),
		Day:   local.Day(),
		loc:   loc,
	}
}

// NewDayKey builds a normalized key (e.g. Feb 30 becomes Mar 1 or 2)
func NewDayKey(year int, month time.Month, day int, loc *time.Location) DayKey {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if loc == nil {
		loc = time.UTC
	}
	return DayKey{Year: d.Year(), Month: d.Month(), Day: d.Day(), loc: loc}
}

// ParseDayKey parses a YYYY-MM-DD string as a day in loc
func ParseDayKey(s string, loc *time.Location) (DayKey, error) {
	d, err := time.Parse(DayFormat, strings.TrimSpace(s))
	if err != nil {
		return DayKey{}, &ValidationError{Field: "day", Message: fmt.Sprintf("invalid day %q, expected YYYY-MM-DD", s)}
	}
	return NewDayKey(d.Year(), d.Month(), d.Day(), loc), nil
}

// Location returns the zone the key was computed in
func (d DayKey) Location() *time.Location {
	if d.loc == nil {
		return time.UTC
	}
	return d.loc
}

// String returns the key as YYYY-MM-DD. Use it as a map key.
func (d DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the key was never set
func (d DayKey) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Start returns local 00:00:00.000 of the day
func (d DayKey) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, d.Location())
}

// NextStart returns local midnight of the following day, the exclusive
// upper bound of the day
func (d DayKey) NextStart() time.Time {
	return time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, d.Location())
}

// End returns local 23:59:59.999 of the day
func (d DayKey) End() time.Time {
	return d.NextStart().Add(-time.Millisecond)
}

// Contains reports whether t falls in [Start, NextStart)
func (d DayKey) Contains(t time.Time) bool {
	return !t.Before(d.Start()) && t.Before(d.NextStart())
}

// Date returns the day as UTC midnight, suitable for a DATE column
func (d DayKey) Date() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays moves the key by n calendar days, keeping its location
func (d DayKey) AddDays(n int) DayKey {
	return NewDayKey(d.Year, d.Month, d.Day+n, d.Location())
}

// Equal compares calendar dates only
func (d DayKey) Equal(other DayKey) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// Before reports whether d is an earlier calendar date than other
func (d DayKey) Before(other DayKey) bool {
	return d.Date().Before(other.Date())
}

// Weekday returns the day of the week
func (d DayKey) Weekday() time.Weekday {
	return d.Date().Weekday()
}

// ParseLocation resolves a caller supplied zone.
// Accepts IANA names ("Europe/Berlin"), "UTC"/"Z", and fixed offsets
// ("+03:00", "-0530", "+3"). An empty string means UTC.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") || name == "Z" {
		return time.UTC, nil
	}

	if name[0] == '+' || name[0] == '-' {
		return parseOffset(name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ValidationError{Field: "timezone", Message: fmt.Sprintf("unknown timezone %q", name)}
	}
	return loc, nil
}

func parseOffset(s string) (*time.Location, error) {
	invalid := &ValidationError{Field: "timezone", Message: fmt.Sprintf("invalid UTC offset %q", s)}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]

	var hh, mm string
	switch {
	case strings.Contains(body, ":"):
		parts := strings.SplitN(body, ":", 2)
		hh, mm = parts[0], parts[1]
	case len(body) == 4:
		hh, mm = body[:2], body[2:]
	default:
		hh, mm = body, "0"
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return nil, invalid
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return nil, invalid
	}

	offset := sign * (hours*3600 + minutes*60)
	name := fmt.Sprintf("UTC%s%02d:%02d", s[:1], hours, minutes)
	return time.FixedZone(name, offset), nil
}
