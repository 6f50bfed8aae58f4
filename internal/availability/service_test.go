package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
	"github.com/hnvivek/game-management-sub006/internal/pkg/cache"
	"github.com/hnvivek/game-management-sub006/internal/pkg/metrics"
)

type fakeCourts struct {
	exists bool
	err    error
}

func (f *fakeCourts) Exists(ctx context.Context, id string) (bool, error) {
	return f.exists, f.err
}

type fakeWindows struct {
	window Window
	found  bool
	err    error
}

func (f *fakeWindows) Window(ctx context.Context, courtID string, day time.Weekday) (Window, bool, error) {
	return f.window, f.found, f.err
}

type fakeBlockers struct {
	blockers []Blocker
	err      error
}

func (f *fakeBlockers) Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]Blocker, error) {
	return f.blockers, f.err
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrMiss
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

const testCourtID = "6a6e3f7e-3a52-4c7b-9f54-000000000001"

func newTestService(windows *fakeWindows, bookings, conflicts *fakeBlockers, c cache.Cache, r metrics.Recorder) Service {
	return NewService(Config{
		Courts:    &fakeCourts{exists: true},
		Windows:   windows,
		Bookings:  bookings,
		Conflicts: conflicts,
		Cache:     c,
		Recorder:  r,
		SlotWidth: time.Hour,
	})
}

func TestDayGrid(t *testing.T) {
	ctx := context.Background()

	t.Run("full day with one confirmed booking", func(t *testing.T) {
		bookings := &fakeBlockers{blockers: []Blocker{
			{Kind: KindBooking, ID: "b-14", Start: at(14, 0), End: at(15, 0)},
		}}
		svc := newTestService(
			&fakeWindows{window: Window{OpensAt: "06:00", ClosesAt: "22:00", IsOpen: true}, found: true},
			bookings, &fakeBlockers{}, nil, nil,
		)

		grid, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		require.NoError(t, err)
		assert.False(t, grid.Closed)
		require.Len(t, grid.Slots, 16)

		for _, s := range grid.Slots {
			if s.StartTime.Equal(at(14, 0)) {
				assert.False(t, s.Available)
				require.NotNil(t, s.BlockedBy)
				assert.Equal(t, "b-14", s.BlockedBy.ID)
			} else {
				assert.True(t, s.Available)
			}
		}
	})

	t.Run("closed day is tagged, not an error", func(t *testing.T) {
		svc := newTestService(
			&fakeWindows{window: Window{IsOpen: false}, found: true},
			&fakeBlockers{}, &fakeBlockers{}, nil, nil,
		)

		grid, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		require.NoError(t, err)
		assert.True(t, grid.Closed)
		assert.Empty(t, grid.Slots)
	})

	t.Run("missing window counts as closed", func(t *testing.T) {
		svc := newTestService(
			&fakeWindows{found: false},
			&fakeBlockers{}, &fakeBlockers{}, nil, nil,
		)

		grid, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		require.NoError(t, err)
		assert.True(t, grid.Closed)
	})

	t.Run("malformed operating hours surface as configuration error", func(t *testing.T) {
		svc := newTestService(
			&fakeWindows{window: Window{OpensAt: "9am", ClosesAt: "18:00", IsOpen: true}, found: true},
			&fakeBlockers{}, &fakeBlockers{}, nil, nil,
		)

		_, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "BAD_OPERATING_HOURS", appErr.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := newTestService(
			&fakeWindows{found: true},
			&fakeBlockers{}, &fakeBlockers{}, nil, nil,
		)

		_, err := svc.DayGrid(ctx, testCourtID, "14-03-2026")
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown court", func(t *testing.T) {
		svc := NewService(Config{
			Courts:    &fakeCourts{exists: false},
			Windows:   &fakeWindows{found: true},
			Bookings:  &fakeBlockers{},
			Conflicts: &fakeBlockers{},
		})

		_, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("court source failure propagates", func(t *testing.T) {
		boom := errors.New("db down")
		svc := NewService(Config{
			Courts:    &fakeCourts{err: boom},
			Windows:   &fakeWindows{found: true},
			Bookings:  &fakeBlockers{},
			Conflicts: &fakeBlockers{},
		})

		_, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("conflicts block alongside bookings", func(t *testing.T) {
		conflicts := &fakeBlockers{blockers: []Blocker{
			{Kind: KindConflict, ID: "c-9", Start: at(9, 0), End: at(11, 0)},
		}}
		svc := newTestService(
			&fakeWindows{window: Window{OpensAt: "06:00", ClosesAt: "22:00", IsOpen: true}, found: true},
			&fakeBlockers{}, conflicts, nil, nil,
		)

		grid, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
		require.NoError(t, err)

		blocked := 0
		for _, s := range grid.Slots {
			if !s.Available {
				blocked++
				assert.Equal(t, KindConflict, s.BlockedBy.Kind)
			}
		}
		assert.Equal(t, 2, blocked)
	})
}

func TestCheckInterval(t *testing.T) {
	ctx := context.Background()
	open := &fakeWindows{window: Window{OpensAt: "06:00", ClosesAt: "22:00", IsOpen: true}, found: true}

	t.Run("free interval", func(t *testing.T) {
		svc := newTestService(open, &fakeBlockers{}, &fakeBlockers{}, nil, nil)

		check, err := svc.CheckInterval(ctx, testCourtID, "2026-03-14", "14:00", "15:00")
		require.NoError(t, err)
		assert.True(t, check.Available)
		assert.False(t, check.Closed)
		assert.Nil(t, check.BlockedBy)
	})

	t.Run("blocked interval names the blocker", func(t *testing.T) {
		bookings := &fakeBlockers{blockers: []Blocker{
			{Kind: KindBooking, ID: "b-1", Start: at(14, 0), End: at(15, 0)},
		}}
		svc := newTestService(open, bookings, &fakeBlockers{}, nil, nil)

		check, err := svc.CheckInterval(ctx, testCourtID, "2026-03-14", "14:30", "15:30")
		require.NoError(t, err)
		assert.False(t, check.Available)
		require.NotNil(t, check.BlockedBy)
		assert.Equal(t, "b-1", check.BlockedBy.ID)
	})

	t.Run("back-to-back interval is free", func(t *testing.T) {
		bookings := &fakeBlockers{blockers: []Blocker{
			{Kind: KindBooking, ID: "b-1", Start: at(14, 0), End: at(15, 0)},
		}}
		svc := newTestService(open, bookings, &fakeBlockers{}, nil, nil)

		check, err := svc.CheckInterval(ctx, testCourtID, "2026-03-14", "15:00", "16:00")
		require.NoError(t, err)
		assert.True(t, check.Available)
	})

	t.Run("outside operating hours reads as closed", func(t *testing.T) {
		svc := newTestService(open, &fakeBlockers{}, &fakeBlockers{}, nil, nil)

		check, err := svc.CheckInterval(ctx, testCourtID, "2026-03-14", "21:30", "22:30")
		require.NoError(t, err)
		assert.True(t, check.Closed)
		assert.False(t, check.Available)
	})

	t.Run("inverted interval", func(t *testing.T) {
		svc := newTestService(open, &fakeBlockers{}, &fakeBlockers{}, nil, nil)

		_, err := svc.CheckInterval(ctx, testCourtID, "2026-03-14", "15:00", "14:00")
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})
}

func TestDayGridCache(t *testing.T) {
	ctx := context.Background()
	mem := newMemoryCache()
	reg := metrics.NewRegistry()

	bookings := &fakeBlockers{}
	svc := newTestService(
		&fakeWindows{window: Window{OpensAt: "08:00", ClosesAt: "12:00", IsOpen: true}, found: true},
		bookings, &fakeBlockers{}, mem, reg,
	)

	first, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
	require.NoError(t, err)

	// A booking created between the two reads is invisible until the cached
	// grid expires or is invalidated.
	bookings.blockers = []Blocker{{Kind: KindBooking, ID: "b-1", Start: at(8, 0), End: at(9, 0)}}

	second, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), reg.Snapshot()["availability.grid_cache_hits"])

	// After invalidation the write becomes visible.
	svc.InvalidateGrid(ctx, testCourtID, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

	third, err := svc.DayGrid(ctx, testCourtID, "2026-03-14")
	require.NoError(t, err)
	assert.False(t, third.Slots[0].Available)
}
