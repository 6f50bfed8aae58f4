package availability

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End) on a specific date.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share any sub-range.
// [a,b) and [c,d) overlap iff a < d && c < b. This is the single overlap
// rule used everywhere: the grid resolver, single-interval validation and
// the write-path SQL all encode exactly this comparison, so back-to-back
// intervals (one ending when the next starts) never conflict.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// IsValid reports whether the interval has positive length.
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// ParseClock parses a wall-clock string as a duration since midnight.
// Accepts "HH:MM" and "HH:MM:SS"; seconds are preserved if present.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
		}
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// At anchors a clock offset onto a calendar date (midnight-based).
func At(date time.Time, clock time.Duration) time.Time {
	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	return midnight.Add(clock)
}
