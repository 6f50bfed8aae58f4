package venue

import (
	"context"
	"errors"
	"strings"

	"github.com/hnvivek/game-management-sub006/internal/vendors"
)

type CreateRequest struct {
	VendorID    string
	Name        string
	Address     string
	Description string
	Facility    string
	Longitude   float64
	Latitude    float64
}

type UpdateRequest struct {
	Name        *string
	Address     *string
	Description *string
	Facility    *string
	Longitude   *float64
	Latitude    *float64
}

// Actor identifies who performs a mutation, for ownership checks.
type Actor struct {
	UserID     string
	IsSysAdmin bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actor Actor) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor Actor) (*Venue, error)
	Delete(ctx context.Context, id string, actor Actor) error

	// CanManage reports whether the actor may mutate the venue or anything
	// inside it (courts, schedules, conflicts, photos).
	CanManage(ctx context.Context, venueID string, actor Actor) (bool, error)
}

type service struct {
	repo          Repository
	vendorService vendor.Service
}

func NewService(repo Repository, vendorService vendor.Service) Service {
	return &service{
		repo:          repo,
		vendorService: vendorService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor Actor) (*Venue, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.VendorID == "" {
		return nil, ErrInvalidVendor
	}

	if _, err := s.vendorService.GetByID(ctx, req.VendorID); err != nil {
		if errors.Is(err, vendor.ErrNotFound) {
			return nil, ErrInvalidVendor
		}
		return nil, err
	}

	if !actor.IsSysAdmin {
		isOwner, err := s.vendorService.IsOwner(ctx, req.VendorID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if !isOwner {
			return nil, ErrPermissionDenied
		}
	}

	v := &Venue{
		VendorID:    req.VendorID,
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Description: req.Description,
		Facility:    req.Facility,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor Actor) (*Venue, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireManage(ctx, v, actor); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Facility != nil {
		v.Facility = *req.Facility
	}
	if req.Longitude != nil {
		v.Longitude = *req.Longitude
	}
	if req.Latitude != nil {
		v.Latitude = *req.Latitude
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string, actor Actor) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireManage(ctx, v, actor); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) CanManage(ctx context.Context, venueID string, actor Actor) (bool, error) {
	if actor.IsSysAdmin {
		return true, nil
	}
	v, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		return false, err
	}
	return s.vendorService.IsOwner(ctx, v.VendorID, actor.UserID)
}

func (s *service) requireManage(ctx context.Context, v *Venue, actor Actor) error {
	if actor.IsSysAdmin {
		return nil
	}
	isOwner, err := s.vendorService.IsOwner(ctx, v.VendorID, actor.UserID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrPermissionDenied
	}
	return nil
}
