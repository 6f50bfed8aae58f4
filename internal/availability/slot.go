package availability

import (
	"fmt"
	"time"
)

// GenerateSlots tiles the operating window [opensAt, closesAt) on the given
// date with fixed-width candidate slots. The open time is floored to the
// nearest slot-width boundary; no slot may end after closesAt.
//
// It is a pure function of its inputs: same arguments, same sequence.
// Closed days are the caller's concern; this only handles an open window.
func GenerateSlots(date time.Time, opensAt, closesAt string, width time.Duration) ([]Interval, error) {
	if width <= 0 {
		return nil, fmt.Errorf("slot width must be positive, got %v", width)
	}

	open, err := ParseClock(opensAt)
	if err != nil {
		return nil, fmt.Errorf("opens_at: %w", err)
	}
	closing, err := ParseClock(closesAt)
	if err != nil {
		return nil, fmt.Errorf("closes_at: %w", err)
	}
	if closing <= open {
		return nil, fmt.Errorf("opens_at %s must be before closes_at %s", opensAt, closesAt)
	}

	// Floor the opening time to a slot-width boundary so the grid stays
	// aligned (e.g. 09:30 open with 1h slots starts the grid at 09:00).
	gridStart := open - (open % width)

	var slots []Interval
	for start := gridStart; start+width <= closing; start += width {
		slots = append(slots, Interval{
			Start: At(date, start),
			End:   At(date, start+width),
		})
	}
	return slots, nil
}
