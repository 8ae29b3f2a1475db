package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db DB
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(db DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create inserts a new rating row. A unique violation on the
// (product_id, user_id) constraint maps to a conflict: the caller lost a
// create race and the user has already rated the product.
func (r *RatingRepository) Create(ctx context.Context, rt *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, product_id, user_id, rating, comment, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		rt.ID,
		rt.ProductID,
		rt.UserID,
		rt.Rating,
		rt.Comment,
		rt.IsActive,
		rt.CreatedAt,
		rt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("you have already rated this product")
		}
		return fmt.Errorf("insert rating: %w", err)
	}

	return nil
}

// GetByID retrieves a rating by its ID, active or not.
func (r *RatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, is_active, created_at, updated_at
		FROM ratings
		WHERE id = $1`

	return r.scanRating(ctx, query, id)
}

// GetByProductAndUser retrieves the single rating row for the pair, active
// or not.
func (r *RatingRepository) GetByProductAndUser(ctx context.Context, productID, userID int64) (*domain.Rating, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, is_active, created_at, updated_at
		FROM ratings
		WHERE product_id = $1 AND user_id = $2`

	return r.scanRating(ctx, query, productID, userID)
}

// Update overwrites value, comment and active flag of an existing rating row.
func (r *RatingRepository) Update(ctx context.Context, rt *domain.Rating) error {
	rt.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE ratings
		SET rating = $1, comment = $2, is_active = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.db.Exec(ctx, query, rt.Rating, rt.Comment, rt.IsActive, rt.UpdatedAt, rt.ID)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("rating", rt.ID)
	}

	return nil
}

// ListByProduct returns active ratings for a product, newest first, with
// the total active count.
func (r *RatingRepository) ListByProduct(ctx context.Context, productID int64, pg pagination.Params) ([]domain.Rating, int, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, is_active, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM ratings
		WHERE product_id = $1 AND is_active
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, productID, pg.PerPage, pg.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var (
		ratings    []domain.Rating
		totalCount int
	)

	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(
			&rt.ID,
			&rt.ProductID,
			&rt.UserID,
			&rt.Rating,
			&rt.Comment,
			&rt.IsActive,
			&rt.CreatedAt,
			&rt.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, totalCount, nil
}

// AggregateByProduct recomputes average, count and per-star distribution
// over the product's active ratings. A product with no active ratings gets
// zero statistics with all five buckets present.
func (r *RatingRepository) AggregateByProduct(ctx context.Context, productID int64) (domain.RatingStats, error) {
	query := `
		SELECT rating, COUNT(*)
		FROM ratings
		WHERE product_id = $1 AND is_active
		GROUP BY rating`

	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return domain.RatingStats{}, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer rows.Close()

	stats := domain.EmptyRatingStats()
	sum := 0

	for rows.Next() {
		var star, count int
		if err := rows.Scan(&star, &count); err != nil {
			return domain.RatingStats{}, fmt.Errorf("scan aggregate row: %w", err)
		}
		stats.Distribution[star] = count
		stats.RatingCount += count
		sum += star * count
	}

	if err := rows.Err(); err != nil {
		return domain.RatingStats{}, fmt.Errorf("iterate aggregate rows: %w", err)
	}

	if stats.RatingCount > 0 {
		stats.AverageRating = roundToTenth(float64(sum) / float64(stats.RatingCount))
	}

	return stats, nil
}

// roundToTenth rounds to one decimal place, the precision stored on the
// product record.
func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func (r *RatingRepository) scanRating(ctx context.Context, query string, args ...any) (*domain.Rating, error) {
	var rt domain.Rating

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&rt.ID,
		&rt.ProductID,
		&rt.UserID,
		&rt.Rating,
		&rt.Comment,
		&rt.IsActive,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan rating: %w", err)
	}

	return &rt, nil
}
