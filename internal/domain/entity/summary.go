package entity

// UnratedMarker is shown for a day without a rating
const UnratedMarker = "🚫"

var moods = [MaxRating]string{"😡", "😢", "😐", "😊", "😍"}

// MoodEmoji maps a rating to its emoji, or the unrated marker
func MoodEmoji(rating *int32) string {
	if rating == nil || *rating < MinRating || *rating > MaxRating {
		return UnratedMarker
	}
	return moods[*rating-1]
}

// DayRating is one position of a rating summary.
// Rating is nil when the day is unrated, whether or not an entry exists.
type DayRating struct {
	Day      DayKey
	Rating   *int32
	HasEntry bool
}

// IsRated returns true if the day has a rating
func (d DayRating) IsRated() bool {
	return d.Rating != nil
}

// RatingSummary holds one DayRating per window day, oldest first
type RatingSummary struct {
	Days [WeekLength]DayRating
}

// Rated returns the number of rated days
func (s RatingSummary) Rated() int {
	n := 0
	for _, d := range s.Days {
		if d.IsRated() {
			n++
		}
	}
	return n
}

// Average returns the mean rating over rated days.
// ok is false when no day is rated.
func (s RatingSummary) Average() (avg float64, ok bool) {
	var sum, n int32
	for _, d := range s.Days {
		if d.Rating != nil {
			sum += *d.Rating
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
