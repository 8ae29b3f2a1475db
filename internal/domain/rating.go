package domain

import (
	"time"
)

// MaxRatingCommentLength bounds the free-text comment on a rating.
const MaxRatingCommentLength = 500

// Rating represents a user's rating of a product. At most one row exists
// per (product, user) pair; resubmission overwrites in place. IsActive
// false marks a soft-deleted rating, excluded from listings and aggregates.
type Rating struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingStats contains the aggregate statistics derived from a product's
// active ratings. Distribution always carries all five star buckets.
type RatingStats struct {
	AverageRating float64     `json:"average_rating"`
	RatingCount   int         `json:"rating_count"`
	Distribution  map[int]int `json:"rating_distribution"`
}

// EmptyRatingStats returns the zero-value statistics for a product with
// no active ratings.
func EmptyRatingStats() RatingStats {
	return RatingStats{
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
}

// IsValidRatingValue checks whether the value is within the accepted range.
func IsValidRatingValue(v int) bool {
	return v >= 1 && v <= 5
}
