package service

import (
	"journal-service/internal/domain/entity"
)

// AggregateWeek joins entries against the window. Every window day gets a
// position; days without an entry, or with an unrated entry, carry a nil
// rating. The day of an entry is recomputed from its stored anchor in the
// window's location. If two rows map to one day the later one in entries wins.
func AggregateWeek(window entity.WeeklyWindow, entries []*entity.JournalEntry) entity.RatingSummary {
	var summary entity.RatingSummary
	for i, day := range window.Days {
		summary.Days[i] = entity.DayRating{Day: day}
	}

	loc := window.Location()
	for _, entry := range entries {
		if entry == nil {
			continue
		}

		idx := window.Index(entry.Day(loc))
		if idx < 0 {
			continue
		}

		var rating *int32
		if entry.Rating != nil {
			r := *entry.Rating
			rating = &r
		}
		summary.Days[idx].Rating = rating
		summary.Days[idx].HasEntry = true
	}

	return summary
}
