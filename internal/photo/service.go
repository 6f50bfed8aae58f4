package photo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hnvivek/game-management-sub006/internal/pkg/storage"
	"github.com/hnvivek/game-management-sub006/internal/venue"
)

// Uploads are bounded to keep thumbnails and listings fast.
const (
	maxPhotoWidth  = 1600
	maxPhotoHeight = 1200
)

type Service interface {
	Upload(ctx context.Context, venueID string, content io.Reader, actor venue.Actor) (*VenuePhoto, error)
	ListByVenue(ctx context.Context, venueID string) ([]*VenuePhoto, error)

	// Open returns the stored image bytes for serving.
	Open(ctx context.Context, id string) (io.ReadCloser, error)

	Delete(ctx context.Context, id string, actor venue.Actor) error
}

type service struct {
	repo         Repository
	venueService venue.Service
	store        storage.Storage
	processor    *storage.ImageProcessor
	logger       *zap.Logger
}

func NewService(repo Repository, venueService venue.Service, store storage.Storage, processor *storage.ImageProcessor, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:         repo,
		venueService: venueService,
		store:        store,
		processor:    processor,
		logger:       logger,
	}
}

func (s *service) Upload(ctx context.Context, venueID string, content io.Reader, actor venue.Actor) (*VenuePhoto, error) {
	canManage, err := s.venueService.CanManage(ctx, venueID, actor)
	if err != nil {
		if errors.Is(err, venue.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	if !canManage {
		return nil, ErrPermissionDenied
	}

	normalized, err := s.processor.FitJPEG(content, maxPhotoWidth, maxPhotoHeight)
	if err != nil {
		return nil, ErrInvalidImage
	}

	path := fmt.Sprintf("venues/%s/%s.jpg", venueID, uuid.NewString())
	if err := s.store.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("save photo failed: %w", err)
	}

	p := &VenuePhoto{
		VenueID:    venueID,
		Path:       path,
		UploadedBy: actor.UserID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// Keep the filesystem and the table in sync.
		if cleanupErr := s.store.Delete(ctx, path); cleanupErr != nil {
			s.logger.Warn("orphaned photo file after failed insert",
				zap.String("path", path),
				zap.Error(cleanupErr))
		}
		return nil, err
	}

	s.logger.Info("photo uploaded",
		zap.String("photo_id", p.ID),
		zap.String("venue_id", venueID))
	return p, nil
}

func (s *service) ListByVenue(ctx context.Context, venueID string) ([]*VenuePhoto, error) {
	if _, err := s.venueService.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, venue.ErrNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return s.repo.ListByVenue(ctx, venueID)
}

func (s *service) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, p.Path)
}

func (s *service) Delete(ctx context.Context, id string, actor venue.Actor) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	canManage, err := s.venueService.CanManage(ctx, p.VenueID, actor)
	if err != nil {
		return err
	}
	if !canManage {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, p.Path); err != nil {
		s.logger.Warn("orphaned photo file after delete",
			zap.String("path", p.Path),
			zap.Error(err))
	}
	return nil
}
