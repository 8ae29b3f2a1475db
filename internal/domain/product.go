package domain

import (
	"time"
)

// Product category constants.
const (
	CategoryGeneral = "general"
	CategoryLips    = "lips"
	CategoryEyes    = "eyes"
	CategoryFace    = "face"
	CategoryNails   = "nails"
	CategorySkin    = "skin"
)

// Product represents a catalog item. Prices are stored in minor units.
// AverageRating, RatingCount and RatingDistribution are derived fields
// owned by the rating aggregator; catalog writes never touch them.
type Product struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	CurrentPrice       int64       `json:"current_price"`
	OriginalPrice      *int64      `json:"original_price,omitempty"`
	Discount           string      `json:"discount,omitempty"`
	Category           string      `json:"category"`
	SubCategory        string      `json:"sub_category,omitempty"`
	SubSubCategory     string      `json:"sub_sub_category,omitempty"`
	Colors             []string    `json:"colors,omitempty"`
	Featured           bool        `json:"featured"`
	FestiveSpecial     bool        `json:"festive_special"`
	Gifting            bool        `json:"gifting"`
	NoOfSales          int64       `json:"no_of_sales"`
	TotalQuantity      int         `json:"total_quantity"`
	ImageURL           string      `json:"image_url"`
	ImagePublicID      string      `json:"image_public_id"`
	ImageURL2          string      `json:"image_url2,omitempty"`
	Image2PublicID     string      `json:"image2_public_id,omitempty"`
	AverageRating      float64     `json:"average_rating"`
	RatingCount        int         `json:"rating_count"`
	RatingDistribution map[int]int `json:"rating_distribution"`
	CreatedBy          *int64      `json:"created_by,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// ValidCategories returns the set of valid product categories.
func ValidCategories() []string {
	return []string{CategoryGeneral, CategoryLips, CategoryEyes, CategoryFace, CategoryNails, CategorySkin}
}

// IsValidCategory checks whether the given category string is a valid product category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// ProductFilter narrows catalog list queries. Zero values mean "no filter".
type ProductFilter struct {
	Category       string
	SubCategory    string
	Featured       *bool
	FestiveSpecial *bool
	Gifting        *bool
	CreatedAfter   time.Time
}
