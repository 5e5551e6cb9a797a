package schedule

import "time"

// DateRange is a closed interval of civil dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether a and b share at least one day.
func Overlaps(a, b DateRange) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

func (s Schedule) Range() DateRange {
	return DateRange{Start: s.StartDate, End: s.EndDate}
}

// FirstOverlap returns the earliest schedule sharing a day with r, or nil.
// existing must be sorted by start date.
func FirstOverlap(existing []Schedule, r DateRange) *Schedule {
	for i := range existing {
		if Overlaps(existing[i].Range(), r) {
			return &existing[i]
		}
	}
	return nil
}
