package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnvivek/game-management-sub006/internal/court"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

const testCourtID = "6a6e3f7e-3a52-4c7b-9f54-000000000010"

type fakeRepo struct {
	windows map[time.Weekday]*OperatingWindow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{windows: make(map[time.Weekday]*OperatingWindow)}
}

func (r *fakeRepo) Upsert(ctx context.Context, w *OperatingWindow) error {
	w.ID = "w-" + w.Weekday.String()
	w.UpdatedAt = time.Now()
	clone := *w
	r.windows[w.Weekday] = &clone
	return nil
}

func (r *fakeRepo) GetByCourtAndWeekday(ctx context.Context, courtID string, weekday time.Weekday) (*OperatingWindow, error) {
	if w, ok := r.windows[weekday]; ok {
		clone := *w
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListByCourt(ctx context.Context, courtID string) ([]*OperatingWindow, error) {
	var out []*OperatingWindow
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w, ok := r.windows[d]; ok {
			clone := *w
			out = append(out, &clone)
		}
	}
	return out, nil
}

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

func TestSetWeek(t *testing.T) {
	ctx := context.Background()
	actor := venue.Actor{UserID: "u-1"}

	t.Run("upserts valid windows", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, stubCourts{exists: true, canManage: true})

		windows, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Monday, OpensAt: "09:00", ClosesAt: "17:00", IsOpen: true},
			{Weekday: time.Tuesday, IsOpen: false},
		}, actor)
		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.NotEmpty(t, windows[0].ID)
		assert.Len(t, repo.windows, 2)
	})

	t.Run("rejects close before open", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true})

		_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Monday, OpensAt: "17:00", ClosesAt: "09:00", IsOpen: true},
		}, actor)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("rejects unparseable hours", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true})

		_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Monday, OpensAt: "9am", ClosesAt: "17:00", IsOpen: true},
		}, actor)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("closed day needs no hours", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true})

		_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Sunday, IsOpen: false},
		}, actor)
		assert.NoError(t, err)
	})

	t.Run("rejects out-of-range weekday", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true})

		_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Weekday(7), OpensAt: "09:00", ClosesAt: "17:00", IsOpen: true},
		}, actor)
		assert.ErrorIs(t, err, ErrInvalidWeekday)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, stubCourts{exists: true, canManage: true})

		_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Monday, OpensAt: "09:00", ClosesAt: "17:00", IsOpen: true},
			{Weekday: time.Tuesday, OpensAt: "bogus", ClosesAt: "17:00", IsOpen: true},
		}, actor)
		require.Error(t, err)
		assert.Empty(t, repo.windows)
	})

	t.Run("non-manager is rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: false})

		_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
			{Weekday: time.Monday, OpensAt: "09:00", ClosesAt: "17:00", IsOpen: true},
		}, actor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestWindowAdapter(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := NewService(repo, stubCourts{exists: true, canManage: true})

	_, err := svc.SetWeek(ctx, testCourtID, []WindowInput{
		{Weekday: time.Friday, OpensAt: "08:00", ClosesAt: "20:00", IsOpen: true},
	}, venue.Actor{UserID: "u-1"})
	require.NoError(t, err)

	t.Run("configured weekday", func(t *testing.T) {
		w, found, err := svc.Window(ctx, testCourtID, time.Friday)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "08:00", w.OpensAt)
		assert.Equal(t, "20:00", w.ClosesAt)
		assert.True(t, w.IsOpen)
	})

	t.Run("unconfigured weekday is not an error", func(t *testing.T) {
		_, found, err := svc.Window(ctx, testCourtID, time.Monday)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
