package app

import (
	"context"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/booking"
	"github.com/hnvivek/game-management-sub006/internal/conflict"
)

// bookingBlockerSource adapts the booking repository to
// availability.BlockerSource. It reads the repository directly so the
// availability service can be constructed before the booking service.
type bookingBlockerSource struct {
	repo booking.Repository
}

func (s bookingBlockerSource) Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]availability.Blocker, error) {
	bookings, err := s.repo.BlockingInRange(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	blockers := make([]availability.Blocker, len(bookings))
	for i, b := range bookings {
		blockers[i] = availability.Blocker{
			Kind:  availability.KindBooking,
			ID:    b.ID,
			Start: b.StartTime,
			End:   b.EndTime,
		}
	}
	return blockers, nil
}

type conflictBlockerSource struct {
	repo conflict.Repository
}

func (s conflictBlockerSource) Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]availability.Blocker, error) {
	conflicts, err := s.repo.ActiveInRange(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	blockers := make([]availability.Blocker, len(conflicts))
	for i, c := range conflicts {
		blockers[i] = availability.Blocker{
			Kind:  availability.KindConflict,
			ID:    c.ID,
			Start: c.StartTime,
			End:   c.EndTime,
		}
	}
	return blockers, nil
}
