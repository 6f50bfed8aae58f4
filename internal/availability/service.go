package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hnvivek/game-management-sub006/internal/pkg/apperror"
	"github.com/hnvivek/game-management-sub006/internal/pkg/cache"
	"github.com/hnvivek/game-management-sub006/internal/pkg/metrics"
)

var (
	ErrCourtNotFound     = apperror.New(http.StatusNotFound, "RESOURCE_NOT_FOUND", "court not found")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "INVALID_DATE", "date must be in YYYY-MM-DD format")
	ErrInvalidInterval   = apperror.New(http.StatusBadRequest, "INVALID_INTERVAL", "end_time must be a valid HH:MM time after start_time")
	ErrBadOperatingHours = apperror.New(http.StatusInternalServerError, "BAD_OPERATING_HOURS", "operating hours are misconfigured")
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Window is an operating window for a single weekday, as the grid needs it.
type Window struct {
	OpensAt  string
	ClosesAt string
	IsOpen   bool
}

// CourtSource answers whether a court exists.
type CourtSource interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// WindowSource resolves the operating window for a court and weekday.
// The second return value is false when no window is configured.
type WindowSource interface {
	Window(ctx context.Context, courtID string, day time.Weekday) (Window, bool, error)
}

// BlockerSource lists occupied intervals for a court within [dayStart, dayEnd).
// Implementations must only return records that actually block availability
// (pending/confirmed bookings, active conflicts).
type BlockerSource interface {
	Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]Blocker, error)
}

// Grid is the per-day availability result. Closed distinguishes "venue is
// closed on this day" from "every slot is taken".
type Grid struct {
	CourtID string `json:"court_id"`
	Date    string `json:"date"`
	Closed  bool   `json:"closed"`
	Slots   []Slot `json:"slots"`
}

// Check is the read-time answer for one proposed interval. It is advisory:
// the write path re-validates inside its transaction regardless.
type Check struct {
	CourtID   string    `json:"court_id"`
	Date      string    `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Closed    bool      `json:"closed"`
	Available bool      `json:"available"`
	BlockedBy *BlockRef `json:"blocked_by,omitempty"`
}

// Service computes day grids. It is a pure read path: all state is fetched
// per call, so concurrent requests need no coordination.
type Service interface {
	DayGrid(ctx context.Context, courtID, date string) (*Grid, error)

	// CheckInterval reports whether one proposed [start, end) interval is
	// currently free, without creating anything.
	CheckInterval(ctx context.Context, courtID, date, startClock, endClock string) (*Check, error)

	// InvalidateGrid drops the cached grid for a court and date. Booking and
	// conflict write paths call this after a successful mutation.
	InvalidateGrid(ctx context.Context, courtID string, date time.Time)
}

type service struct {
	courts    CourtSource
	windows   WindowSource
	bookings  BlockerSource
	conflicts BlockerSource
	cache     cache.Cache
	recorder  metrics.Recorder
	logger    *zap.Logger
	slotWidth time.Duration
	cacheTTL  time.Duration
}

// Config bundles the collaborators for NewService.
type Config struct {
	Courts    CourtSource
	Windows   WindowSource
	Bookings  BlockerSource
	Conflicts BlockerSource
	Cache     cache.Cache
	Recorder  metrics.Recorder
	Logger    *zap.Logger
	SlotWidth time.Duration
	CacheTTL  time.Duration
}

func NewService(cfg Config) Service {
	if cfg.Cache == nil {
		cfg.Cache = cache.Nop{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.SlotWidth <= 0 {
		cfg.SlotWidth = time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	return &service{
		courts:    cfg.Courts,
		windows:   cfg.Windows,
		bookings:  cfg.Bookings,
		conflicts: cfg.Conflicts,
		cache:     cfg.Cache,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		slotWidth: cfg.SlotWidth,
		cacheTTL:  cfg.CacheTTL,
	}
}

func gridCacheKey(courtID, date string) string {
	return fmt.Sprintf("grid:%s:%s", courtID, date)
}

func (s *service) DayGrid(ctx context.Context, courtID, dateStr string) (*Grid, error) {
	date, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	exists, err := s.courts.Exists(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourtNotFound
	}

	s.recorder.Inc("availability.grid_queries")

	key := gridCacheKey(courtID, dateStr)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached Grid
		if err := json.Unmarshal(raw, &cached); err == nil {
			s.recorder.Inc("availability.grid_cache_hits")
			return &cached, nil
		}
		// A corrupt entry falls through to recompute.
	}

	grid, err := s.computeGrid(ctx, courtID, date, dateStr)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(grid); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache availability grid",
				zap.String("court_id", courtID),
				zap.String("date", dateStr),
				zap.Error(err))
		}
	}

	return grid, nil
}

func (s *service) computeGrid(ctx context.Context, courtID string, date time.Time, dateStr string) (*Grid, error) {
	window, found, err := s.windows.Window(ctx, courtID, date.Weekday())
	if err != nil {
		return nil, err
	}
	if !found || !window.IsOpen {
		// A closed day is a normal outcome, not an error.
		return &Grid{CourtID: courtID, Date: dateStr, Closed: true, Slots: []Slot{}}, nil
	}

	slots, err := GenerateSlots(date, window.OpensAt, window.ClosesAt, s.slotWidth)
	if err != nil {
		// Unparseable configured hours are a vendor data problem, surfaced
		// distinctly from "closed".
		s.logger.Error("operating window rejected by slot generator",
			zap.String("court_id", courtID),
			zap.String("opens_at", window.OpensAt),
			zap.String("closes_at", window.ClosesAt),
			zap.Error(err))
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "BAD_OPERATING_HOURS", "operating hours are misconfigured")
	}

	dayStart := At(date, 0)
	dayEnd := dayStart.Add(24 * time.Hour)

	blockers, err := s.bookings.Blockers(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	conflictBlockers, err := s.conflicts.Blockers(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	blockers = append(blockers, conflictBlockers...)

	resolved := Resolve(slots, blockers)
	if resolved == nil {
		resolved = []Slot{}
	}

	return &Grid{CourtID: courtID, Date: dateStr, Slots: resolved}, nil
}

func (s *service) CheckInterval(ctx context.Context, courtID, dateStr, startClock, endClock string) (*Check, error) {
	date, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	start, err := ParseClock(startClock)
	if err != nil {
		return nil, ErrInvalidInterval
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return nil, ErrInvalidInterval
	}

	proposed := Interval{Start: At(date, start), End: At(date, end)}
	if !proposed.IsValid() {
		return nil, ErrInvalidInterval
	}

	exists, err := s.courts.Exists(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourtNotFound
	}

	check := &Check{
		CourtID:   courtID,
		Date:      dateStr,
		StartTime: proposed.Start,
		EndTime:   proposed.End,
	}

	window, found, err := s.windows.Window(ctx, courtID, date.Weekday())
	if err != nil {
		return nil, err
	}
	if !found || !window.IsOpen {
		check.Closed = true
		return check, nil
	}

	opens, err := ParseClock(window.OpensAt)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "BAD_OPERATING_HOURS", "operating hours are misconfigured")
	}
	closes, err := ParseClock(window.ClosesAt)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "BAD_OPERATING_HOURS", "operating hours are misconfigured")
	}
	if proposed.Start.Before(At(date, opens)) || proposed.End.After(At(date, closes)) {
		check.Closed = true
		return check, nil
	}

	dayStart := At(date, 0)
	dayEnd := dayStart.Add(24 * time.Hour)

	blockers, err := s.bookings.Blockers(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	conflictBlockers, err := s.conflicts.Blockers(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	blockers = append(blockers, conflictBlockers...)

	check.BlockedBy = FindBlocker(proposed, blockers)
	check.Available = check.BlockedBy == nil
	return check, nil
}

func (s *service) InvalidateGrid(ctx context.Context, courtID string, date time.Time) {
	key := gridCacheKey(courtID, date.UTC().Format(DateLayout))
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate availability grid",
			zap.String("key", key),
			zap.Error(err))
	}
}
