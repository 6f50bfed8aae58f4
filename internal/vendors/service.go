package vendor

import (
	"context"
	"errors"
	"strings"
)

type CreateRequest struct {
	Name         string
	OwnerUserID  string
	ContactEmail string
}

type UpdateRequest struct {
	Name         *string
	ContactEmail *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vendor, error)
	GetByID(ctx context.Context, id string) (*Vendor, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*Vendor, error)
	List(ctx context.Context, filter Filter) ([]*Vendor, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isSysAdmin bool) (*Vendor, error)
	SetActive(ctx context.Context, id string, active bool) error

	// IsOwner reports whether userID owns the vendor.
	IsOwner(ctx context.Context, vendorID, userID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vendor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	v := &Vendor{
		Name:         strings.TrimSpace(req.Name),
		OwnerUserID:  req.OwnerUserID,
		ContactEmail: req.ContactEmail,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerUserID string) (*Vendor, error) {
	return s.repo.GetByOwner(ctx, ownerUserID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Vendor, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string, isSysAdmin bool) (*Vendor, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isSysAdmin && v.OwnerUserID != updaterUserID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		v.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactEmail != nil {
		v.ContactEmail = *req.ContactEmail
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetActive suspends or reactivates a vendor. Admin only; enforced by routing.
func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.IsActive = active
	return s.repo.Update(ctx, v)
}

func (s *service) IsOwner(ctx context.Context, vendorID, userID string) (bool, error) {
	v, err := s.repo.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return v.OwnerUserID == userID, nil
}
