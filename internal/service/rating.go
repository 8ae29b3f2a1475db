package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/event"
	"github.com/preciousgifts/sugar-backend/internal/repository"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// RatingService implements rating submission, listing and the derived
// statistics flow. Every mutation triggers a recompute of the product's
// aggregate fields; a failed recompute is logged and swallowed so the
// mutation itself still succeeds.
type RatingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
	seqRepo     repository.SequenceRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		seqRepo:     seqRepo,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitRatingInput holds the parameters for submitting a rating.
type SubmitRatingInput struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment"`
}

// UpdateRatingInput holds the parameters for updating a rating by id.
type UpdateRatingInput struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment"`
}

// RatingPage bundles a page of ratings with the product's aggregate
// statistics.
type RatingPage struct {
	Ratings pagination.Result[domain.Rating] `json:"ratings"`
	Stats   domain.RatingStats               `json:"statistics"`
}

// Submit creates or overwrites the caller's rating for a product. When a
// row already exists for the (product, user) pair, active or soft-deleted,
// it is updated in place and reactivated; otherwise a new row is inserted.
func (s *RatingService) Submit(ctx context.Context, userID int64, input SubmitRatingInput) (*domain.Rating, error) {
	if err := validateRatingValue(input.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetByProductAndUser(ctx, input.ProductID, userID)
	switch {
	case err == nil:
		existing.Rating = input.Rating
		existing.Comment = input.Comment
		existing.IsActive = true
		if err := s.ratingRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("overwrite rating: %w", err)
		}
		s.recompute(ctx, input.ProductID)
		s.publishSubmitted(ctx, existing)
		return existing, nil

	case errors.Is(err, apperrors.ErrNotFound):
		// fall through to insert

	default:
		return nil, fmt.Errorf("look up rating: %w", err)
	}

	id, err := s.seqRepo.Next(ctx, seqRating)
	if err != nil {
		return nil, fmt.Errorf("assign rating id: %w", err)
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		ID:        id,
		ProductID: input.ProductID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// A concurrent submit for the same pair can win the insert race; the
	// unique constraint turns the loss into a conflict.
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	s.recompute(ctx, input.ProductID)
	s.publishSubmitted(ctx, rating)

	s.logger.InfoContext(ctx, "rating submitted",
		slog.Int64("rating_id", rating.ID),
		slog.Int64("product_id", rating.ProductID),
		slog.Int64("user_id", rating.UserID),
	)

	return rating, nil
}

// ListByProduct returns the active ratings for a product, newest first,
// together with the aggregate statistics.
func (s *RatingService) ListByProduct(ctx context.Context, productID int64, p pagination.Params) (*RatingPage, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	ratings, total, err := s.ratingRepo.ListByProduct(ctx, productID, p)
	if err != nil {
		return nil, err
	}

	stats, err := s.ratingRepo.AggregateByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &RatingPage{
		Ratings: pagination.NewResult(ratings, total, p),
		Stats:   stats,
	}, nil
}

// GetOwn returns the caller's active rating for a product, or nil when the
// caller has none.
func (s *RatingService) GetOwn(ctx context.Context, productID, userID int64) (*domain.Rating, error) {
	rating, err := s.ratingRepo.GetByProductAndUser(ctx, productID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !rating.IsActive {
		return nil, nil
	}
	return rating, nil
}

// UpdateByID overwrites the value and comment of the caller's rating. A
// rating owned by someone else reports not-found, never forbidden, so the
// operation leaks nothing about other users' ratings.
func (s *RatingService) UpdateByID(ctx context.Context, ratingID, userID int64, input UpdateRatingInput) (*domain.Rating, error) {
	if err := validateRatingValue(input.Rating); err != nil {
		return nil, err
	}
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("rating", ratingID)
		}
		return nil, err
	}
	if rating.UserID != userID || !rating.IsActive {
		return nil, apperrors.NotFound("rating", ratingID)
	}

	rating.Rating = input.Rating
	rating.Comment = input.Comment
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return nil, err
	}

	s.recompute(ctx, rating.ProductID)

	return rating, nil
}

// SoftDeleteByID marks the caller's rating inactive. The row is retained;
// listings and aggregates exclude it from then on. Ownership failures
// report not-found, as in UpdateByID.
func (s *RatingService) SoftDeleteByID(ctx context.Context, ratingID, userID int64) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("rating", ratingID)
		}
		return err
	}
	if rating.UserID != userID || !rating.IsActive {
		return apperrors.NotFound("rating", ratingID)
	}

	rating.IsActive = false
	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		return err
	}

	s.recompute(ctx, rating.ProductID)

	s.logger.InfoContext(ctx, "rating soft deleted",
		slog.Int64("rating_id", ratingID),
		slog.Int64("product_id", rating.ProductID),
	)

	return nil
}

// Recompute rebuilds the product's derived rating fields from its active
// ratings. Exposed for use by backfill jobs; mutations call it internally.
func (s *RatingService) Recompute(ctx context.Context, productID int64) error {
	stats, err := s.ratingRepo.AggregateByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("aggregate ratings: %w", err)
	}

	if err := s.productRepo.UpdateRatingStats(ctx, productID, stats); err != nil {
		return fmt.Errorf("store rating stats: %w", err)
	}

	return nil
}

// recompute runs Recompute and swallows failures. The rating mutation has
// already committed; stale derived fields self-heal on the next mutation.
func (s *RatingService) recompute(ctx context.Context, productID int64) {
	if err := s.Recompute(ctx, productID); err != nil {
		s.logger.ErrorContext(ctx, "failed to recompute rating stats",
			slog.Int64("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *RatingService) publishSubmitted(ctx context.Context, rating *domain.Rating) {
	if err := s.producer.PublishRatingSubmitted(ctx, rating); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish rating.submitted event",
			slog.Int64("rating_id", rating.ID),
			slog.String("error", err.Error()),
		)
	}
}

func validateRatingValue(v int) error {
	if !domain.IsValidRatingValue(v) {
		return apperrors.InvalidInput("rating must be between 1 and 5")
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) > domain.MaxRatingCommentLength {
		return apperrors.InvalidInput(fmt.Sprintf("comment must be at most %d characters", domain.MaxRatingCommentLength))
	}
	return nil
}
