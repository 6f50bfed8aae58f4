package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/court"
	"github.com/hnvivek/game-management-sub006/internal/pkg/metrics"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

// maxCreateAttempts bounds the replay of serialization failures. Conflicts
// are never retried: a lost race is a final answer.
const maxCreateAttempts = 3

const retryBackoff = 25 * time.Millisecond

type CreateRequest struct {
	CourtID   string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM wall-clock
	EndTime   string // HH:MM wall-clock
	Notes     string
}

// GridInvalidator drops cached availability grids after a write.
// availability.Service satisfies it.
type GridInvalidator interface {
	InvalidateGrid(ctx context.Context, courtID string, date time.Time)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, userID string) (*Booking, error)
	GetByID(ctx context.Context, id string, actor venue.Actor) (*Booking, error)
	ListForUser(ctx context.Context, userID string, status string, limit, offset uint64) ([]*Booking, int, error)
	ListForCourt(ctx context.Context, courtID string, status string, limit, offset uint64, actor venue.Actor) ([]*Booking, int, error)

	// Cancel releases the slot. Allowed for the booking owner and for
	// whoever manages the court.
	Cancel(ctx context.Context, id string, actor venue.Actor) (*Booking, error)

	// SetStatus applies a vendor-side transition (confirm, complete, no-show).
	SetStatus(ctx context.Context, id, status string, actor venue.Actor) (*Booking, error)

	// Blockers implements availability.BlockerSource with live bookings.
	Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]availability.Blocker, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	windows      availability.WindowSource
	grids        GridInvalidator
	recorder     metrics.Recorder
	logger       *zap.Logger
}

func NewService(
	repo Repository,
	courtService court.Service,
	windows availability.WindowSource,
	grids GridInvalidator,
	recorder metrics.Recorder,
	logger *zap.Logger,
) Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:         repo,
		courtService: courtService,
		windows:      windows,
		grids:        grids,
		recorder:     recorder,
		logger:       logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, userID string) (*Booking, error) {
	date, err := time.ParseInLocation(availability.DateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	startClock, err := availability.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrInvalidInterval
	}
	endClock, err := availability.ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrInvalidInterval
	}

	iv := availability.Interval{
		Start: availability.At(date, startClock),
		End:   availability.At(date, endClock),
	}
	if !iv.IsValid() {
		return nil, ErrInvalidInterval
	}

	exists, err := s.courtService.Exists(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourtNotFound
	}

	if err := s.checkOperatingWindow(ctx, req.CourtID, date, iv); err != nil {
		return nil, err
	}

	b := &Booking{
		CourtID:   req.CourtID,
		UserID:    userID,
		StartTime: iv.Start,
		EndTime:   iv.End,
		Status:    StatusPending,
		Notes:     req.Notes,
	}

	for attempt := 1; ; attempt++ {
		err = s.repo.CreateValidated(ctx, b)
		if err == nil {
			break
		}

		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) {
			s.recorder.Inc("bookings.conflicts")
			s.logger.Info("booking rejected: slot taken",
				zap.String("court_id", req.CourtID),
				zap.Time("start_time", iv.Start),
				zap.String("blocked_by_kind", string(conflictErr.Kind)),
				zap.String("blocked_by_id", conflictErr.ConflictingID))
			return nil, err
		}

		if !errors.Is(err, ErrTransient) || attempt >= maxCreateAttempts {
			return nil, err
		}

		s.recorder.Inc("bookings.tx_retries")
		s.logger.Warn("booking transaction retried after serialization failure",
			zap.String("court_id", req.CourtID),
			zap.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	s.recorder.Inc("bookings.created")
	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("court_id", b.CourtID),
		zap.String("user_id", b.UserID),
		zap.Time("start_time", b.StartTime),
		zap.Time("end_time", b.EndTime))

	s.invalidate(ctx, b)
	return b, nil
}

// checkOperatingWindow rejects intervals outside the court's open hours for
// that weekday. A closed or unconfigured day is RESOURCE_CLOSED, not an
// empty-slot situation.
func (s *service) checkOperatingWindow(ctx context.Context, courtID string, date time.Time, iv availability.Interval) error {
	window, found, err := s.windows.Window(ctx, courtID, date.Weekday())
	if err != nil {
		return err
	}
	if !found || !window.IsOpen {
		return ErrResourceClosed
	}

	opens, err := availability.ParseClock(window.OpensAt)
	if err != nil {
		return err
	}
	closes, err := availability.ParseClock(window.ClosesAt)
	if err != nil {
		return err
	}

	open := availability.At(date, opens)
	closing := availability.At(date, closes)
	if iv.Start.Before(open) || iv.End.After(closing) {
		return ErrResourceClosed
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string, actor venue.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, b, actor); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListForUser(ctx context.Context, userID string, status string, limit, offset uint64) ([]*Booking, int, error) {
	return s.repo.List(ctx, Filter{UserID: userID, Status: status, Limit: limit, Offset: offset})
}

func (s *service) ListForCourt(ctx context.Context, courtID string, status string, limit, offset uint64, actor venue.Actor) ([]*Booking, int, error) {
	canManage, err := s.courtService.CanManage(ctx, courtID, actor)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, 0, ErrCourtNotFound
		}
		return nil, 0, err
	}
	if !canManage {
		return nil, 0, ErrPermissionDenied
	}
	return s.repo.List(ctx, Filter{CourtID: courtID, Status: status, Limit: limit, Offset: offset})
}

func (s *service) Cancel(ctx context.Context, id string, actor venue.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, b, actor); err != nil {
		return nil, err
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.recorder.Inc("bookings.cancelled")
	s.logger.Info("booking cancelled",
		zap.String("booking_id", updated.ID),
		zap.String("court_id", updated.CourtID))

	s.invalidate(ctx, updated)
	return updated, nil
}

// allowedTransitions are the vendor-side status moves. Cancellation has its
// own path so booking owners can reach it too.
var allowedTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed},
	StatusConfirmed: {StatusCompleted, StatusNoShow},
}

func (s *service) SetStatus(ctx context.Context, id, status string, actor venue.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	canManage, err := s.courtService.CanManage(ctx, b.CourtID, actor)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	allowed := false
	for _, next := range allowedTransitions[b.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", updated.ID),
		zap.String("from", b.Status),
		zap.String("to", status))

	// completed/no_show keep the past slot occupied in spirit but the grid
	// only serves future lookups, so invalidation is harmless either way.
	s.invalidate(ctx, updated)
	return updated, nil
}

func (s *service) Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]availability.Blocker, error) {
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

// requireAccess admits the booking owner, the court's vendor and sysadmins.
func (s *service) requireAccess(ctx context.Context, b *Booking, actor venue.Actor) error {
	if actor.UserID == b.UserID || actor.IsSysAdmin {
		return nil
	}
	canManage, err := s.courtService.CanManage(ctx, b.CourtID, actor)
	if err != nil {
		return err
	}
	if !canManage {
		return ErrPermissionDenied
	}
	return nil
}

func (s *service) invalidate(ctx context.Context, b *Booking) {
	if s.grids == nil {
		return
	}
	s.grids.InvalidateGrid(ctx, b.CourtID, b.StartTime)
}
