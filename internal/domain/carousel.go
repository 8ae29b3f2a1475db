package domain

import (
	"time"
)

// Carousel placement constants.
const (
	PlacementHomePage    = "home page"
	PlacementProductPage = "product page"
	PlacementSubSession  = "sub session"
	PlacementHomeBody    = "home body"
)

// CarouselImage represents a promotional image shown in a storefront carousel.
type CarouselImage struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	ImageURL  string    `json:"image_url"`
	PublicID  string    `json:"public_id"`
	Placement string    `json:"placement"`
	TargetURL string    `json:"target_url,omitempty"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarouselVideo represents a promotional video shown in a storefront carousel.
type CarouselVideo struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	VideoURL  string    `json:"video_url"`
	PublicID  string    `json:"public_id"`
	Placement string    `json:"placement"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Marquee represents a scrolling text banner shown on the storefront.
type Marquee struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidPlacements returns the set of valid carousel placements.
func ValidPlacements() []string {
	return []string{PlacementHomePage, PlacementProductPage, PlacementSubSession, PlacementHomeBody}
}

// IsValidPlacement checks whether the given placement string is valid.
func IsValidPlacement(placement string) bool {
	for _, p := range ValidPlacements() {
		if p == placement {
			return true
		}
	}
	return false
}
