package conflict

import (
	"context"
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

const testCourtID = "6a6e3f7e-3a52-4c7b-9f54-000000000020"

type fakeRepo struct {
	mu        sync.Mutex
	conflicts map[string]*Conflict
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{conflicts: make(map[string]*Conflict)}
}

func (r *fakeRepo) Create(ctx context.Context, c *Conflict) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = string(rune('a' + r.nextID - 1))
	c.CreatedAt = time.Now()
	clone := *c
	r.conflicts[c.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conflicts[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListByCourt(ctx context.Context, courtID string, status string) ([]*Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Conflict
	for _, c := range r.conflicts {
		if c.CourtID != courtID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeRepo) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conflicts[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	return nil
}

func (r *fakeRepo) ActiveInRange(ctx context.Context, courtID string, from, to time.Time) ([]*Conflict, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Conflict
	for _, c := range r.conflicts {
		if c.CourtID != courtID || c.Status != StatusActive {
			continue
		}
		if c.StartTime.Before(to) && from.Before(c.EndTime) {
			clone := *c
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

type spyInvalidator struct {
	mu    sync.Mutex
	dates []time.Time
}

func (s *spyInvalidator) InvalidateGrid(ctx context.Context, courtID string, date time.Time) {
	s.mu.Lock()
	s.dates = append(s.dates, date)
	s.mu.Unlock()
}

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestCreateConflict(t *testing.T) {
	ctx := context.Background()
	actor := venue.Actor{UserID: "u-1"}

	t.Run("success", func(t *testing.T) {
		repo := newFakeRepo()
		spy := &spyInvalidator{}
		reg := metrics.NewRegistry()
		svc := NewService(repo, stubCourts{exists: true, canManage: true}, spy, reg, nil)

		c, err := svc.Create(ctx, CreateRequest{
			CourtID:   testCourtID,
			StartTime: at(14, 9),
			EndTime:   at(14, 12),
			Reason:    "resurfacing",
		}, actor)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, c.Status)
		assert.Equal(t, "u-1", c.CreatedBy)
		assert.Len(t, spy.dates, 1)
		assert.Equal(t, int64(1), reg.Snapshot()["conflicts.created"])
	})

	t.Run("multi-day conflict invalidates each day", func(t *testing.T) {
		spy := &spyInvalidator{}
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true}, spy, nil, nil)

		_, err := svc.Create(ctx, CreateRequest{
			CourtID:   testCourtID,
			StartTime: at(14, 18),
			EndTime:   at(16, 10),
			Reason:    "tournament",
		}, actor)
		require.NoError(t, err)
		assert.Len(t, spy.dates, 3)
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true}, nil, nil, nil)

		_, err := svc.Create(ctx, CreateRequest{
			CourtID:   testCourtID,
			StartTime: at(14, 12),
			EndTime:   at(14, 9),
		}, actor)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("non-manager is rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: false}, nil, nil, nil)

		_, err := svc.Create(ctx, CreateRequest{
			CourtID:   testCourtID,
			StartTime: at(14, 9),
			EndTime:   at(14, 12),
		}, actor)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestResolveConflict(t *testing.T) {
	ctx := context.Background()
	actor := venue.Actor{UserID: "u-1"}

	repo := newFakeRepo()
	spy := &spyInvalidator{}
	svc := NewService(repo, stubCourts{exists: true, canManage: true}, spy, nil, nil)

	c, err := svc.Create(ctx, CreateRequest{
		CourtID:   testCourtID,
		StartTime: at(14, 9),
		EndTime:   at(14, 12),
	}, actor)
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, c.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, resolved.Status)

	// Resolved conflicts release their slots.
	blockers, err := svc.Blockers(ctx, testCourtID, at(14, 0), at(15, 0))
	require.NoError(t, err)
	assert.Empty(t, blockers)

	_, err = svc.Resolve(ctx, c.ID, actor)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestConflictBlockers(t *testing.T) {
	ctx := context.Background()
	actor := venue.Actor{UserID: "u-1"}

	svc := NewService(newFakeRepo(), stubCourts{exists: true, canManage: true}, nil, nil, nil)

	c, err := svc.Create(ctx, CreateRequest{
		CourtID:   testCourtID,
		StartTime: at(14, 9),
		EndTime:   at(14, 12),
	}, actor)
	require.NoError(t, err)

	blockers, err := svc.Blockers(ctx, testCourtID, at(14, 0), at(15, 0))
	require.NoError(t, err)
	require.Len(t, blockers, 1)
	assert.Equal(t, availability.KindConflict, blockers[0].Kind)
	assert.Equal(t, c.ID, blockers[0].ID)
	assert.Equal(t, at(14, 9), blockers[0].Start)
}
