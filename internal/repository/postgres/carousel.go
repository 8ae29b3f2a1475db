package postgres

import (
	"context"
	"fmt"

	"github.com/preciousgifts/sugar-backend/internal/domain"
)

// CarouselRepository implements repository.CarouselRepository using PostgreSQL.
type CarouselRepository struct {
	db DB
}

// NewCarouselRepository creates a new PostgreSQL-backed carousel repository.
func NewCarouselRepository(db DB) *CarouselRepository {
	return &CarouselRepository{db: db}
}

// CreateImage inserts a carousel image record.
func (r *CarouselRepository) CreateImage(ctx context.Context, img *domain.CarouselImage) error {
	query := `
		INSERT INTO carousel_images (id, title, image_url, public_id, placement, target_url, position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		img.ID,
		img.Title,
		img.ImageURL,
		img.PublicID,
		img.Placement,
		img.TargetURL,
		img.Position,
		img.IsActive,
		img.CreatedAt,
		img.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert carousel image: %w", err)
	}

	return nil
}

// ListImages returns active carousel images, optionally filtered by
// placement, in display order.
func (r *CarouselRepository) ListImages(ctx context.Context, placement string) ([]domain.CarouselImage, error) {
	query := `
		SELECT id, title, image_url, public_id, placement, target_url, position, is_active, created_at, updated_at
		FROM carousel_images
		WHERE is_active AND ($1 = '' OR placement = $1)
		ORDER BY position, id`

	rows, err := r.db.Query(ctx, query, placement)
	if err != nil {
		return nil, fmt.Errorf("list carousel images: %w", err)
	}
	defer rows.Close()

	var images []domain.CarouselImage
	for rows.Next() {
		var img domain.CarouselImage
		if err := rows.Scan(
			&img.ID,
			&img.Title,
			&img.ImageURL,
			&img.PublicID,
			&img.Placement,
			&img.TargetURL,
			&img.Position,
			&img.IsActive,
			&img.CreatedAt,
			&img.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan carousel image row: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carousel image rows: %w", err)
	}

	return images, nil
}

// CreateVideo inserts a carousel video record.
func (r *CarouselRepository) CreateVideo(ctx context.Context, vid *domain.CarouselVideo) error {
	query := `
		INSERT INTO carousel_videos (id, title, video_url, public_id, placement, position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		vid.ID,
		vid.Title,
		vid.VideoURL,
		vid.PublicID,
		vid.Placement,
		vid.Position,
		vid.IsActive,
		vid.CreatedAt,
		vid.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert carousel video: %w", err)
	}

	return nil
}

// ListVideos returns active carousel videos, optionally filtered by
// placement, in display order.
func (r *CarouselRepository) ListVideos(ctx context.Context, placement string) ([]domain.CarouselVideo, error) {
	query := `
		SELECT id, title, video_url, public_id, placement, position, is_active, created_at, updated_at
		FROM carousel_videos
		WHERE is_active AND ($1 = '' OR placement = $1)
		ORDER BY position, id`

	rows, err := r.db.Query(ctx, query, placement)
	if err != nil {
		return nil, fmt.Errorf("list carousel videos: %w", err)
	}
	defer rows.Close()

	var videos []domain.CarouselVideo
	for rows.Next() {
		var vid domain.CarouselVideo
		if err := rows.Scan(
			&vid.ID,
			&vid.Title,
			&vid.VideoURL,
			&vid.PublicID,
			&vid.Placement,
			&vid.Position,
			&vid.IsActive,
			&vid.CreatedAt,
			&vid.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan carousel video row: %w", err)
		}
		videos = append(videos, vid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carousel video rows: %w", err)
	}

	return videos, nil
}

// CreateMarquee inserts a marquee text record.
func (r *CarouselRepository) CreateMarquee(ctx context.Context, m *domain.Marquee) error {
	query := `
		INSERT INTO marquees (id, text, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, m.ID, m.Text, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert marquee: %w", err)
	}

	return nil
}

// ListMarquees returns active marquee records, newest first.
func (r *CarouselRepository) ListMarquees(ctx context.Context) ([]domain.Marquee, error) {
	query := `
		SELECT id, text, is_active, created_at, updated_at
		FROM marquees
		WHERE is_active
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list marquees: %w", err)
	}
	defer rows.Close()

	var marquees []domain.Marquee
	for rows.Next() {
		var m domain.Marquee
		if err := rows.Scan(&m.ID, &m.Text, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan marquee row: %w", err)
		}
		marquees = append(marquees, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate marquee rows: %w", err)
	}

	return marquees, nil
}
