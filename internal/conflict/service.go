package conflict

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

type CreateRequest struct {
	CourtID   string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
}

// GridInvalidator drops cached availability grids after a write.
// availability.Service satisfies it.
type GridInvalidator interface {
	InvalidateGrid(ctx context.Context, courtID string, date time.Time)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actor venue.Actor) (*Conflict, error)
	GetByID(ctx context.Context, id string) (*Conflict, error)
	ListByCourt(ctx context.Context, courtID string, status string) ([]*Conflict, error)
	Resolve(ctx context.Context, id string, actor venue.Actor) (*Conflict, error)

	// Blockers implements availability.BlockerSource with active conflicts.
	Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]availability.Blocker, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	grids        GridInvalidator
	recorder     metrics.Recorder
	logger       *zap.Logger
}

func NewService(repo Repository, courtService court.Service, grids GridInvalidator, recorder metrics.Recorder, logger *zap.Logger) Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:         repo,
		courtService: courtService,
		grids:        grids,
		recorder:     recorder,
		logger:       logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor venue.Actor) (*Conflict, error) {
	iv := availability.Interval{Start: req.StartTime, End: req.EndTime}
	if !iv.IsValid() {
		return nil, ErrInvalidInterval
	}

	canManage, err := s.courtService.CanManage(ctx, req.CourtID, actor)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	// A conflict may overlap existing bookings: it flags those slots as
	// blocked going forward but does not touch the bookings themselves.
	c := &Conflict{
		CourtID:   req.CourtID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Reason:    req.Reason,
		Status:    StatusActive,
		CreatedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.recorder.Inc("conflicts.created")
	s.logger.Info("conflict created",
		zap.String("conflict_id", c.ID),
		zap.String("court_id", c.CourtID),
		zap.Time("start_time", c.StartTime),
		zap.Time("end_time", c.EndTime))

	s.invalidateSpan(ctx, c)
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Conflict, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByCourt(ctx context.Context, courtID string, status string) ([]*Conflict, error) {
	exists, err := s.courtService.Exists(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourtNotFound
	}
	return s.repo.ListByCourt(ctx, courtID, status)
}

func (s *service) Resolve(ctx context.Context, id string, actor venue.Actor) (*Conflict, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	canManage, err := s.courtService.CanManage(ctx, c.CourtID, actor)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	if c.Status == StatusResolved {
		return nil, ErrAlreadyResolved
	}

	if err := s.repo.SetStatus(ctx, id, StatusResolved); err != nil {
		return nil, err
	}
	c.Status = StatusResolved

	s.recorder.Inc("conflicts.resolved")
	s.logger.Info("conflict resolved",
		zap.String("conflict_id", c.ID),
		zap.String("court_id", c.CourtID))

	s.invalidateSpan(ctx, c)
	return c, nil
}

func (s *service) Blockers(ctx context.Context, courtID string, dayStart, dayEnd time.Time) ([]availability.Blocker, error) {
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

// invalidateSpan drops cached grids for every day the conflict touches.
func (s *service) invalidateSpan(ctx context.Context, c *Conflict) {
	if s.grids == nil {
		return
	}
	start := c.StartTime.UTC().Truncate(24 * time.Hour)
	for day := start; day.Before(c.EndTime); day = day.Add(24 * time.Hour) {
		s.grids.InvalidateGrid(ctx, c.CourtID, day)
	}
}
