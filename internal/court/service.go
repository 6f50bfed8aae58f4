package court

import (
	"context"
	"slices"
	"strings"

	"github.com/hnvivek/game-management-sub006/internal/venue"
)

type CreateRequest struct {
	VenueID string
	Name    string
	Sport   string
}

type UpdateRequest struct {
	Name  *string
	Sport *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actor venue.Actor) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor venue.Actor) (*Court, error)
	Delete(ctx context.Context, id string, actor venue.Actor) error

	// CanManage reports whether the actor may mutate the court (via its venue).
	CanManage(ctx context.Context, courtID string, actor venue.Actor) (bool, error)
}

type service struct {
	repo         Repository
	venueService venue.Service
}

func NewService(repo Repository, venueService venue.Service) Service {
	return &service{
		repo:         repo,
		venueService: venueService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor venue.Actor) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.VenueID == "" {
		return nil, ErrInvalidVenue
	}

	sport := strings.ToLower(strings.TrimSpace(req.Sport))
	if !slices.Contains(ValidSports, sport) {
		return nil, ErrInvalidSport
	}

	canManage, err := s.venueService.CanManage(ctx, req.VenueID, actor)
	if err != nil {
		return nil, ErrInvalidVenue
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	c := &Court{
		VenueID: req.VenueID,
		Name:    strings.TrimSpace(req.Name),
		Sport:   sport,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor venue.Actor) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	canManage, err := s.venueService.CanManage(ctx, c.VenueID, actor)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Sport != nil {
		sport := strings.ToLower(strings.TrimSpace(*req.Sport))
		if !slices.Contains(ValidSports, sport) {
			return nil, ErrInvalidSport
		}
		c.Sport = sport
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string, actor venue.Actor) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	canManage, err := s.venueService.CanManage(ctx, c.VenueID, actor)
	if err != nil {
		return err
	}
	if !canManage {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) CanManage(ctx context.Context, courtID string, actor venue.Actor) (bool, error) {
	c, err := s.repo.GetByID(ctx, courtID)
	if err != nil {
		return false, err
	}
	return s.venueService.CanManage(ctx, c.VenueID, actor)
}
