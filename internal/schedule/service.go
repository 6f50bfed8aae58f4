package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/hnvivek/game-management-sub006/internal/availability"
	"github.com/hnvivek/game-management-sub006/internal/court"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

// WindowInput is one weekday's configuration in a SetWeek call.
type WindowInput struct {
	Weekday  time.Weekday
	OpensAt  string
	ClosesAt string
	IsOpen   bool
}

type Service interface {
	// SetWeek upserts the operating windows for a court. Days absent from
	// inputs are left untouched.
	SetWeek(ctx context.Context, courtID string, inputs []WindowInput, actor venue.Actor) ([]*OperatingWindow, error)
	ListForCourt(ctx context.Context, courtID string) ([]*OperatingWindow, error)

	// Window implements availability.WindowSource.
	Window(ctx context.Context, courtID string, day time.Weekday) (availability.Window, bool, error)
}

type service struct {
	repo         Repository
	courtService court.Service
}

func NewService(repo Repository, courtService court.Service) Service {
	return &service{
		repo:         repo,
		courtService: courtService,
	}
}

// validateInput rejects windows the slot generator could not work with, so
// bad configuration is caught at write time instead of query time.
func validateInput(in WindowInput) error {
	if in.Weekday < time.Sunday || in.Weekday > time.Saturday {
		return ErrInvalidWeekday
	}
	if !in.IsOpen {
		// Closed days need no hours.
		return nil
	}

	opens, err := availability.ParseClock(in.OpensAt)
	if err != nil {
		return ErrInvalidWindow
	}
	closes, err := availability.ParseClock(in.ClosesAt)
	if err != nil {
		return ErrInvalidWindow
	}
	if closes <= opens {
		return ErrInvalidWindow
	}
	return nil
}

func (s *service) SetWeek(ctx context.Context, courtID string, inputs []WindowInput, actor venue.Actor) ([]*OperatingWindow, error) {
	canManage, err := s.courtService.CanManage(ctx, courtID, actor)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	for _, in := range inputs {
		if err := validateInput(in); err != nil {
			return nil, err
		}
	}

	windows := make([]*OperatingWindow, 0, len(inputs))
	for _, in := range inputs {
		w := &OperatingWindow{
			CourtID:  courtID,
			Weekday:  in.Weekday,
			OpensAt:  in.OpensAt,
			ClosesAt: in.ClosesAt,
			IsOpen:   in.IsOpen,
		}
		if err := s.repo.Upsert(ctx, w); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, nil
}

func (s *service) ListForCourt(ctx context.Context, courtID string) ([]*OperatingWindow, error) {
	exists, err := s.courtService.Exists(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourtNotFound
	}
	return s.repo.ListByCourt(ctx, courtID)
}

func (s *service) Window(ctx context.Context, courtID string, day time.Weekday) (availability.Window, bool, error) {
	w, err := s.repo.GetByCourtAndWeekday(ctx, courtID, day)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return availability.Window{}, false, nil
		}
		return availability.Window{}, false, err
	}
	return availability.Window{
		OpensAt:  w.OpensAt,
		ClosesAt: w.ClosesAt,
		IsOpen:   w.IsOpen,
	}, true, nil
}
