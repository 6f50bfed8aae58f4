package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/court"
	"github.com/hnvivek/game-management-sub006/internal/pkg/metrics"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

const (
	testCourtID = "6a6e3f7e-3a52-4c7b-9f54-000000000001"
	testUserID  = "6a6e3f7e-3a52-4c7b-9f54-000000000002"
	otherUserID = "6a6e3f7e-3a52-4c7b-9f54-000000000003"
)

// fakeRepo stores bookings in memory. createErrs is a queue of errors to
// return from CreateValidated before the insert succeeds, which is how the
// tests drive retries and conflicts.
type fakeRepo struct {
	mu         sync.Mutex
	bookings   map[string]*Booking
	createErrs []error
	attempts   int
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) CreateValidated(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}

	r.nextID++
	b.ID = string(rune('a' + r.nextID - 1))
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.CourtID != "" && b.CourtID != filter.CourtID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) BlockingInRange(ctx context.Context, courtID string, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.CourtID != courtID {
			continue
		}
		if b.Status != StatusPending && b.Status != StatusConfirmed {
			continue
		}
		if b.StartTime.Before(to) && from.Before(b.EndTime) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubCourts overrides only the methods the booking service touches; the
// embedded interface panics on anything else.
type stubCourts struct {
	court.Service
	exists    bool
	canManage bool
}

func (s stubCourts) Exists(ctx context.Context, id string) (bool, error) {
	return s.exists, nil
}

func (s stubCourts) CanManage(ctx context.Context, courtID string, actor venue.Actor) (bool, error) {
	return s.canManage, nil
}

type stubWindows struct {
	window availability.Window
	found  bool
}

func (s stubWindows) Window(ctx context.Context, courtID string, day time.Weekday) (availability.Window, bool, error) {
	return s.window, s.found, nil
}

type spyInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (s *spyInvalidator) InvalidateGrid(ctx context.Context, courtID string, date time.Time) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

type fixture struct {
	repo        *fakeRepo
	invalidator *spyInvalidator
	registry    *metrics.Registry
	svc         Service
}

func newFixture(courts stubCourts, windows stubWindows) *fixture {
	f := &fixture{
		repo:        newFakeRepo(),
		invalidator: &spyInvalidator{},
		registry:    metrics.NewRegistry(),
	}
	f.svc = NewService(f.repo, courts, windows, f.invalidator, f.registry, nil)
	return f
}

func openAllDay() stubWindows {
	return stubWindows{
		window: availability.Window{OpensAt: "06:00", ClosesAt: "22:00", IsOpen: true},
		found:  true,
	}
}

func validRequest() CreateRequest {
	return CreateRequest{
		CourtID:   testCourtID,
		Date:      "2026-03-14",
		StartTime: "14:00",
		EndTime:   "15:00",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())

		b, err := f.svc.Create(ctx, validRequest(), testUserID)
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, testUserID, b.UserID)
		assert.Equal(t, time.Date(2026, 3, 14, 14, 0, 0, 0, time.UTC), b.StartTime)
		assert.Equal(t, 1, f.invalidator.calls)
		assert.Equal(t, int64(1), f.registry.Snapshot()["bookings.created"])
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())
		req := validRequest()
		req.Date = "14/03/2026"

		_, err := f.svc.Create(ctx, req, testUserID)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())
		req := validRequest()
		req.StartTime = "15:00"
		req.EndTime = "14:00"

		_, err := f.svc.Create(ctx, req, testUserID)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("zero-length interval", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())
		req := validRequest()
		req.EndTime = req.StartTime

		_, err := f.svc.Create(ctx, req, testUserID)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("unparseable clock", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())
		req := validRequest()
		req.StartTime = "2pm"

		_, err := f.svc.Create(ctx, req, testUserID)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("unknown court", func(t *testing.T) {
		f := newFixture(stubCourts{exists: false}, openAllDay())

		_, err := f.svc.Create(ctx, validRequest(), testUserID)
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("closed weekday", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, stubWindows{
			window: availability.Window{IsOpen: false}, found: true,
		})

		_, err := f.svc.Create(ctx, validRequest(), testUserID)
		assert.ErrorIs(t, err, ErrResourceClosed)
	})

	t.Run("no window configured", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, stubWindows{found: false})

		_, err := f.svc.Create(ctx, validRequest(), testUserID)
		assert.ErrorIs(t, err, ErrResourceClosed)
	})

	t.Run("interval outside operating hours", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, stubWindows{
			window: availability.Window{OpensAt: "09:00", ClosesAt: "17:00", IsOpen: true},
			found:  true,
		})
		req := validRequest()
		req.StartTime = "16:30"
		req.EndTime = "17:30"

		_, err := f.svc.Create(ctx, req, testUserID)
		assert.ErrorIs(t, err, ErrResourceClosed)
	})

	t.Run("interval ending at close is allowed", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, stubWindows{
			window: availability.Window{OpensAt: "09:00", ClosesAt: "17:00", IsOpen: true},
			found:  true,
		})
		req := validRequest()
		req.StartTime = "16:00"
		req.EndTime = "17:00"

		_, err := f.svc.Create(ctx, req, testUserID)
		assert.NoError(t, err)
	})
}

func TestCreateConflict(t *testing.T) {
	ctx := context.Background()

	f := newFixture(stubCourts{exists: true}, openAllDay())
	f.repo.createErrs = []error{
		&ConflictError{Kind: availability.KindBooking, ConflictingID: "b-42"},
	}

	_, err := f.svc.Create(ctx, validRequest(), testUserID)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "b-42", conflictErr.ConflictingID)
	assert.Equal(t, availability.KindBooking, conflictErr.Kind)

	// A lost race is final: no retry, no invalidation.
	assert.Equal(t, 1, f.repo.attempts)
	assert.Equal(t, 0, f.invalidator.calls)
	assert.Equal(t, int64(1), f.registry.Snapshot()["bookings.conflicts"])
	assert.Zero(t, f.registry.Snapshot()["bookings.created"])
}

func TestCreateRetries(t *testing.T) {
	ctx := context.Background()

	t.Run("transient failures are replayed", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())
		f.repo.createErrs = []error{ErrTransient, ErrTransient}

		b, err := f.svc.Create(ctx, validRequest(), testUserID)
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, 3, f.repo.attempts)
		assert.Equal(t, int64(2), f.registry.Snapshot()["bookings.tx_retries"])
	})

	t.Run("gives up after the attempt limit", func(t *testing.T) {
		f := newFixture(stubCourts{exists: true}, openAllDay())
		f.repo.createErrs = []error{ErrTransient, ErrTransient, ErrTransient, ErrTransient}

		_, err := f.svc.Create(ctx, validRequest(), testUserID)
		assert.ErrorIs(t, err, ErrTransient)
		assert.Equal(t, maxCreateAttempts, f.repo.attempts)
	})

	t.Run("non-transient errors are not retried", func(t *testing.T) {
		boom := errors.New("db down")
		f := newFixture(stubCourts{exists: true}, openAllDay())
		f.repo.createErrs = []error{boom}

		_, err := f.svc.Create(ctx, validRequest(), testUserID)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, f.repo.attempts)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, courts stubCourts) (*fixture, *Booking) {
		f := newFixture(courts, openAllDay())
		b, err := f.svc.Create(ctx, validRequest(), testUserID)
		require.NoError(t, err)
		return f, b
	}

	t.Run("owner releases the slot", func(t *testing.T) {
		f, b := setup(t, stubCourts{exists: true})

		cancelled, err := f.svc.Cancel(ctx, b.ID, venue.Actor{UserID: testUserID})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		assert.Equal(t, 2, f.invalidator.calls)

		// A cancelled booking no longer blocks anything.
		blockers, err := f.svc.Blockers(ctx, testCourtID,
			time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, blockers)
	})

	t.Run("stranger may not cancel", func(t *testing.T) {
		f, b := setup(t, stubCourts{exists: true, canManage: false})

		_, err := f.svc.Cancel(ctx, b.ID, venue.Actor{UserID: otherUserID})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("court manager may cancel", func(t *testing.T) {
		f, b := setup(t, stubCourts{exists: true, canManage: true})

		_, err := f.svc.Cancel(ctx, b.ID, venue.Actor{UserID: otherUserID})
		assert.NoError(t, err)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		f, b := setup(t, stubCourts{exists: true})

		_, err := f.svc.Cancel(ctx, b.ID, venue.Actor{UserID: testUserID})
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, b.ID, venue.Actor{UserID: testUserID})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, canManage bool) (*fixture, *Booking) {
		f := newFixture(stubCourts{exists: true, canManage: canManage}, openAllDay())
		b, err := f.svc.Create(ctx, validRequest(), testUserID)
		require.NoError(t, err)
		return f, b
	}

	t.Run("manager confirms a pending booking", func(t *testing.T) {
		f, b := setup(t, true)

		confirmed, err := f.svc.SetStatus(ctx, b.ID, StatusConfirmed, venue.Actor{UserID: otherUserID})
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		f, b := setup(t, true)

		_, err := f.svc.SetStatus(ctx, b.ID, StatusCompleted, venue.Actor{UserID: otherUserID})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("confirmed can complete", func(t *testing.T) {
		f, b := setup(t, true)
		actor := venue.Actor{UserID: otherUserID}

		_, err := f.svc.SetStatus(ctx, b.ID, StatusConfirmed, actor)
		require.NoError(t, err)

		done, err := f.svc.SetStatus(ctx, b.ID, StatusCompleted, actor)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, done.Status)
	})

	t.Run("non-manager is rejected", func(t *testing.T) {
		f, b := setup(t, false)

		_, err := f.svc.SetStatus(ctx, b.ID, StatusConfirmed, venue.Actor{UserID: otherUserID})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestBlockers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(stubCourts{exists: true}, openAllDay())

	first, err := f.svc.Create(ctx, validRequest(), testUserID)
	require.NoError(t, err)

	req := validRequest()
	req.StartTime = "16:00"
	req.EndTime = "17:00"
	second, err := f.svc.Create(ctx, req, testUserID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, second.ID, venue.Actor{UserID: testUserID})
	require.NoError(t, err)

	blockers, err := f.svc.Blockers(ctx, testCourtID,
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, blockers, 1)
	assert.Equal(t, first.ID, blockers[0].ID)
	assert.Equal(t, availability.KindBooking, blockers[0].Kind)
}
