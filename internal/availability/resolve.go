package availability

import "time"

// BlockKind identifies what kind of record blocks a slot.
type BlockKind string

const (
	KindBooking  BlockKind = "booking"
	KindConflict BlockKind = "conflict"
)

// Blocker is an occupied interval fetched for a court and date. Bookings in
// pending/confirmed status and active conflicts are the only blockers; the
// sources are expected to filter out cancelled/resolved records.
type Blocker struct {
	Kind  BlockKind
	ID    string
	Start time.Time
	End   time.Time
}

func (b Blocker) interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// BlockRef points at the record responsible for a blocked slot.
type BlockRef struct {
	Kind BlockKind `json:"kind"`
	ID   string    `json:"id"`
}

// Slot is a derived, never-persisted availability entry for one grid cell.
type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
	BlockedBy *BlockRef `json:"blocked_by,omitempty"`
}

// Resolve marks each candidate slot available or blocked by cross-referencing
// the blockers. A blocked slot references the blocker with the earliest start
// time; on a tie, a booking wins over a conflict.
func Resolve(slots []Interval, blockers []Blocker) []Slot {
	out := make([]Slot, len(slots))
	for i, slot := range slots {
		ref := FindBlocker(slot, blockers)
		out[i] = Slot{
			StartTime: slot.Start,
			EndTime:   slot.End,
			Available: ref == nil,
			BlockedBy: ref,
		}
	}
	return out
}

// FindBlocker returns a reference to the blocker that occupies the proposed
// interval, or nil when the interval is free. Selection follows the same
// tie-break as Resolve.
func FindBlocker(proposed Interval, blockers []Blocker) *BlockRef {
	var best *Blocker
	for i := range blockers {
		b := &blockers[i]
		if !proposed.Overlaps(b.interval()) {
			continue
		}
		if best == nil || betterBlocker(b, best) {
			best = b
		}
	}
	if best == nil {
		return nil
	}
	return &BlockRef{Kind: best.Kind, ID: best.ID}
}

// betterBlocker reports whether a should be reported over b:
// earliest start first, bookings before conflicts on equal start.
func betterBlocker(a, b *Blocker) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.Kind == KindBooking && b.Kind == KindConflict
}
