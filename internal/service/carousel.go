package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/repository"
	"github.com/preciousgifts/sugar-backend/internal/storage"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
)

// Object-store folders for carousel media.
const (
	carouselImageFolder = "sugar_clone/carousel_pics"
	carouselVideoFolder = "sugar_clone/carousel_video"
)

// CarouselService implements promotional carousel, video and marquee
// operations.
type CarouselService struct {
	carouselRepo repository.CarouselRepository
	seqRepo      repository.SequenceRepository
	store        storage.Storage
	logger       *slog.Logger
}

// NewCarouselService creates a new carousel service.
func NewCarouselService(
	carouselRepo repository.CarouselRepository,
	seqRepo repository.SequenceRepository,
	store storage.Storage,
	logger *slog.Logger,
) *CarouselService {
	return &CarouselService{
		carouselRepo: carouselRepo,
		seqRepo:      seqRepo,
		store:        store,
		logger:       logger,
	}
}

// CreateCarouselImageInput holds the parameters for uploading a carousel image.
type CreateCarouselImageInput struct {
	Title     string
	Placement string
	TargetURL string
	Position  int
	Image     storage.UploadInput
}

// CreateCarouselVideoInput holds the parameters for uploading a carousel video.
type CreateCarouselVideoInput struct {
	Title     string
	Placement string
	Position  int
	Video     storage.UploadInput
}

// CreateImage uploads the image and persists the carousel record with a
// sequence-assigned id.
func (s *CarouselService) CreateImage(ctx context.Context, input CreateCarouselImageInput) (*domain.CarouselImage, error) {
	if !domain.IsValidPlacement(input.Placement) {
		return nil, apperrors.InvalidInput("placement must be one of: home page, product page, sub session, home body")
	}

	input.Image.Folder = carouselImageFolder
	uploaded, err := s.store.Upload(ctx, &input.Image)
	if err != nil {
		return nil, fmt.Errorf("upload carousel image: %w", err)
	}

	id, err := s.seqRepo.Next(ctx, seqCarousel)
	if err != nil {
		s.cleanupUpload(ctx, uploaded.PublicID)
		return nil, fmt.Errorf("assign carousel id: %w", err)
	}

	now := time.Now().UTC()
	img := &domain.CarouselImage{
		ID:        id,
		Title:     input.Title,
		ImageURL:  uploaded.URL,
		PublicID:  uploaded.PublicID,
		Placement: input.Placement,
		TargetURL: input.TargetURL,
		Position:  input.Position,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.carouselRepo.CreateImage(ctx, img); err != nil {
		s.cleanupUpload(ctx, uploaded.PublicID)
		return nil, fmt.Errorf("create carousel image: %w", err)
	}

	s.logger.InfoContext(ctx, "carousel image created",
		slog.Int64("carousel_id", img.ID),
		slog.String("placement", img.Placement),
	)

	return img, nil
}

// ListImages returns active carousel images, optionally filtered by placement.
func (s *CarouselService) ListImages(ctx context.Context, placement string) ([]domain.CarouselImage, error) {
	if placement != "" && !domain.IsValidPlacement(placement) {
		return nil, apperrors.InvalidInput("placement must be one of: home page, product page, sub session, home body")
	}
	return s.carouselRepo.ListImages(ctx, placement)
}

// CreateVideo uploads the video and persists the carousel record with a
// sequence-assigned id.
func (s *CarouselService) CreateVideo(ctx context.Context, input CreateCarouselVideoInput) (*domain.CarouselVideo, error) {
	if !domain.IsValidPlacement(input.Placement) {
		return nil, apperrors.InvalidInput("placement must be one of: home page, product page, sub session, home body")
	}

	input.Video.Folder = carouselVideoFolder
	uploaded, err := s.store.Upload(ctx, &input.Video)
	if err != nil {
		return nil, fmt.Errorf("upload carousel video: %w", err)
	}

	id, err := s.seqRepo.Next(ctx, seqCarousel)
	if err != nil {
		s.cleanupUpload(ctx, uploaded.PublicID)
		return nil, fmt.Errorf("assign carousel id: %w", err)
	}

	now := time.Now().UTC()
	vid := &domain.CarouselVideo{
		ID:        id,
		Title:     input.Title,
		VideoURL:  uploaded.URL,
		PublicID:  uploaded.PublicID,
		Placement: input.Placement,
		Position:  input.Position,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.carouselRepo.CreateVideo(ctx, vid); err != nil {
		s.cleanupUpload(ctx, uploaded.PublicID)
		return nil, fmt.Errorf("create carousel video: %w", err)
	}

	s.logger.InfoContext(ctx, "carousel video created",
		slog.Int64("carousel_id", vid.ID),
		slog.String("placement", vid.Placement),
	)

	return vid, nil
}

// ListVideos returns active carousel videos, optionally filtered by placement.
func (s *CarouselService) ListVideos(ctx context.Context, placement string) ([]domain.CarouselVideo, error) {
	if placement != "" && !domain.IsValidPlacement(placement) {
		return nil, apperrors.InvalidInput("placement must be one of: home page, product page, sub session, home body")
	}
	return s.carouselRepo.ListVideos(ctx, placement)
}

// CreateMarquee persists a marquee text record with a sequence-assigned id.
func (s *CarouselService) CreateMarquee(ctx context.Context, text string) (*domain.Marquee, error) {
	if text == "" {
		return nil, apperrors.InvalidInput("marquee text is required")
	}

	id, err := s.seqRepo.Next(ctx, seqMarquee)
	if err != nil {
		return nil, fmt.Errorf("assign marquee id: %w", err)
	}

	now := time.Now().UTC()
	m := &domain.Marquee{
		ID:        id,
		Text:      text,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.carouselRepo.CreateMarquee(ctx, m); err != nil {
		return nil, fmt.Errorf("create marquee: %w", err)
	}

	return m, nil
}

// ListMarquees returns active marquee records, newest first.
func (s *CarouselService) ListMarquees(ctx context.Context) ([]domain.Marquee, error) {
	return s.carouselRepo.ListMarquees(ctx)
}

func (s *CarouselService) cleanupUpload(ctx context.Context, publicID string) {
	if err := s.store.Delete(ctx, publicID); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove orphan upload",
			slog.String("public_id", publicID),
			slog.String("error", err.Error()),
		)
	}
}
