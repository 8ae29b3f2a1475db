// Package event publishes storefront domain events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	pkgkafka "github.com/preciousgifts/sugar-backend/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicUserRegistered  = "storefront.user.registered"
	TopicProductCreated  = "storefront.product.created"
	TopicRatingSubmitted = "storefront.rating.submitted"
)

// Aggregate type constants.
const (
	AggregateTypeUser    = "user"
	AggregateTypeProduct = "product"
	AggregateTypeRating  = "rating"
)

// Source identifier for events originating from this service.
const Source = "sugar-backend"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SubCategory  string `json:"sub_category,omitempty"`
	CurrentPrice int64  `json:"current_price"`
}

// RatingSubmittedData is the payload for a rating.submitted event.
type RatingSubmittedData struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"product_id"`
	UserID    int64 `json:"user_id"`
	Rating    int   `json:"rating"`
}

// Producer publishes storefront domain events to Kafka. A nil Producer is
// a no-op, so event publishing can be disabled in tests and local runs.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := UserRegisteredData{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, formatID(user.ID), AggregateTypeUser, Source, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := ProductCreatedData{
		ID:           product.ID,
		Name:         product.Name,
		Category:     product.Category,
		SubCategory:  product.SubCategory,
		CurrentPrice: product.CurrentPrice,
	}

	event, err := pkgkafka.NewEvent(TopicProductCreated, formatID(product.ID), AggregateTypeProduct, Source, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return nil
}

// PublishRatingSubmitted publishes a rating.submitted event.
func (p *Producer) PublishRatingSubmitted(ctx context.Context, rating *domain.Rating) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := RatingSubmittedData{
		ID:        rating.ID,
		ProductID: rating.ProductID,
		UserID:    rating.UserID,
		Rating:    rating.Rating,
	}

	event, err := pkgkafka.NewEvent(TopicRatingSubmitted, formatID(rating.ID), AggregateTypeRating, Source, data)
	if err != nil {
		return fmt.Errorf("create rating.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRatingSubmitted, event); err != nil {
		return fmt.Errorf("publish rating.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published rating.submitted event",
		slog.Int64("rating_id", rating.ID),
		slog.Int64("product_id", rating.ProductID),
	)

	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
