// Package repository defines the persistence interfaces used by the service
// layer. Implementations live in subpackages (postgres).
package repository

import (
	"context"
	"time"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// SequenceRepository hands out monotonically increasing numeric identifiers,
// one counter per entity name. The first value for a fresh counter is 1.
type SequenceRepository interface {
	// Next atomically increments the named counter and returns the new value.
	Next(ctx context.Context, name string) (int64, error)
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns products matching the filter, newest first.
	List(ctx context.Context, filter domain.ProductFilter, p pagination.Params) ([]domain.Product, int, error)

	// BestSellers returns the top product per subcategory by sales count.
	BestSellers(ctx context.Context) ([]domain.Product, error)

	// UpdateRatingStats overwrites the derived rating fields for a product.
	// Only the rating aggregator calls this.
	UpdateRatingStats(ctx context.Context, productID int64, stats domain.RatingStats) error
}

// RatingRepository defines the interface for rating persistence operations.
type RatingRepository interface {
	// Create inserts a new rating row.
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByID retrieves a rating by its unique identifier, active or not.
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)

	// GetByProductAndUser retrieves the rating row for the pair, active or
	// not. There is at most one per pair.
	GetByProductAndUser(ctx context.Context, productID, userID int64) (*domain.Rating, error)

	// Update overwrites value, comment and active flag of an existing row.
	Update(ctx context.Context, rating *domain.Rating) error

	// ListByProduct returns active ratings for a product, newest first.
	ListByProduct(ctx context.Context, productID int64, p pagination.Params) ([]domain.Rating, int, error)

	// AggregateByProduct recomputes the statistics over active ratings.
	AggregateByProduct(ctx context.Context, productID int64) (domain.RatingStats, error)
}

// CarouselRepository defines the interface for carousel and marquee persistence.
type CarouselRepository interface {
	CreateImage(ctx context.Context, img *domain.CarouselImage) error
	ListImages(ctx context.Context, placement string) ([]domain.CarouselImage, error)
	CreateVideo(ctx context.Context, vid *domain.CarouselVideo) error
	ListVideos(ctx context.Context, placement string) ([]domain.CarouselVideo, error)
	CreateMarquee(ctx context.Context, m *domain.Marquee) error
	ListMarquees(ctx context.Context) ([]domain.Marquee, error)
}

// LogRepository defines the interface for persisted application logs.
type LogRepository interface {
	// Create inserts a log entry.
	Create(ctx context.Context, entry *domain.LogEntry) error

	// List returns log entries created at or after since, newest first.
	List(ctx context.Context, since time.Time, p pagination.Params) ([]domain.LogEntry, int, error)
}
