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
	"github.com/preciousgifts/sugar-backend/internal/storage"
	"github.com/preciousgifts/sugar-backend/pkg/cache"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// newArrivalWindow is how far back a product still counts as a new arrival.
const newArrivalWindow = 10 * 24 * time.Hour

// productImageFolder is the object-store folder for product images.
const productImageFolder = "sugar_clone/product_pics"

// ProductService implements catalog operations.
type ProductService struct {
	productRepo repository.ProductRepository
	seqRepo     repository.SequenceRepository
	store       storage.Storage
	cache       *cache.Cache
	producer    *event.Producer
	logger      *slog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service. cache may be nil to
// disable read caching.
func NewProductService(
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	store storage.Storage,
	c *cache.Cache,
	producer *event.Producer,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		seqRepo:     seqRepo,
		store:       store,
		cache:       c,
		producer:    producer,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateProductInput holds the parameters for creating a product. Images
// arrive as open multipart streams and are uploaded before anything is
// persisted.
type CreateProductInput struct {
	Name           string
	CurrentPrice   int64
	OriginalPrice  *int64
	Discount       string
	Category       string
	SubCategory    string
	SubSubCategory string
	Colors         []string
	Featured       bool
	FestiveSpecial bool
	Gifting        bool
	TotalQuantity  int
	Images         []storage.UploadInput
	CreatedBy      int64
}

// Create uploads the product images and persists the product with a
// sequence-assigned id. Any upload failure aborts before persistence;
// already-uploaded images are destroyed so no orphan asset remains.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.CurrentPrice <= 0 {
		return nil, apperrors.InvalidInput("product price is required")
	}
	if !domain.IsValidCategory(input.Category) {
		return nil, apperrors.InvalidInput("category must be one of: general, lips, eyes, face, nails, skin")
	}
	if len(input.Images) == 0 {
		return nil, apperrors.InvalidInput("at least one product image is required")
	}
	if len(input.Images) > 2 {
		return nil, apperrors.InvalidInput("a product carries at most two images")
	}

	var uploaded []*storage.UploadResult
	for i := range input.Images {
		input.Images[i].Folder = productImageFolder
		res, err := s.store.Upload(ctx, &input.Images[i])
		if err != nil {
			s.rollbackUploads(ctx, uploaded)
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		uploaded = append(uploaded, res)
	}

	id, err := s.seqRepo.Next(ctx, seqProduct)
	if err != nil {
		s.rollbackUploads(ctx, uploaded)
		return nil, fmt.Errorf("assign product id: %w", err)
	}

	now := s.now().UTC()
	product := &domain.Product{
		ID:                 id,
		Name:               input.Name,
		CurrentPrice:       input.CurrentPrice,
		OriginalPrice:      input.OriginalPrice,
		Discount:           input.Discount,
		Category:           input.Category,
		SubCategory:        input.SubCategory,
		SubSubCategory:     input.SubSubCategory,
		Colors:             input.Colors,
		Featured:           input.Featured,
		FestiveSpecial:     input.FestiveSpecial,
		Gifting:            input.Gifting,
		TotalQuantity:      input.TotalQuantity,
		ImageURL:           uploaded[0].URL,
		ImagePublicID:      uploaded[0].PublicID,
		RatingDistribution: domain.EmptyRatingStats().Distribution,
		CreatedBy:          &input.CreatedBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if len(uploaded) > 1 {
		product.ImageURL2 = uploaded[1].URL
		product.Image2PublicID = uploaded[1].PublicID
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.rollbackUploads(ctx, uploaded)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidateListCaches(ctx)

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// GetByID returns a single product.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// List returns all products, newest first.
func (s *ProductService) List(ctx context.Context, p pagination.Params) (pagination.Result[domain.Product], error) {
	return s.list(ctx, domain.ProductFilter{}, p)
}

// NewArrivals returns products created inside the arrival window.
func (s *ProductService) NewArrivals(ctx context.Context, p pagination.Params) (pagination.Result[domain.Product], error) {
	filter := domain.ProductFilter{CreatedAfter: s.now().UTC().Add(-newArrivalWindow)}
	return s.list(ctx, filter, p)
}

// Featured returns products with the featured flag set.
func (s *ProductService) Featured(ctx context.Context, p pagination.Params) (pagination.Result[domain.Product], error) {
	t := true
	return s.list(ctx, domain.ProductFilter{Featured: &t}, p)
}

// FestiveSpecial returns products with the festive special flag set.
func (s *ProductService) FestiveSpecial(ctx context.Context, p pagination.Params) (pagination.Result[domain.Product], error) {
	t := true
	return s.list(ctx, domain.ProductFilter{FestiveSpecial: &t}, p)
}

// Gifting returns products with the gifting flag set.
func (s *ProductService) Gifting(ctx context.Context, p pagination.Params) (pagination.Result[domain.Product], error) {
	t := true
	return s.list(ctx, domain.ProductFilter{Gifting: &t}, p)
}

// ByCategory returns products in the given category.
func (s *ProductService) ByCategory(ctx context.Context, category string, p pagination.Params) (pagination.Result[domain.Product], error) {
	if !domain.IsValidCategory(category) {
		return pagination.Result[domain.Product]{}, apperrors.InvalidInput("category must be one of: general, lips, eyes, face, nails, skin")
	}
	return s.list(ctx, domain.ProductFilter{Category: category}, p)
}

// BestSellers returns the top product per subcategory by sales count,
// cached for repeated storefront reads.
func (s *ProductService) BestSellers(ctx context.Context) ([]domain.Product, error) {
	const key = "products:best-sellers"

	var cached []domain.Product
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.WarnContext(ctx, "best sellers cache read failed", slog.String("error", err.Error()))
	}

	products, err := s.productRepo.BestSellers(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NotFoundMsg("no best seller product found")
	}

	if err := s.cache.Set(ctx, key, products); err != nil {
		s.logger.WarnContext(ctx, "best sellers cache write failed", slog.String("error", err.Error()))
	}

	return products, nil
}

func (s *ProductService) list(ctx context.Context, filter domain.ProductFilter, p pagination.Params) (pagination.Result[domain.Product], error) {
	products, total, err := s.productRepo.List(ctx, filter, p)
	if err != nil {
		return pagination.Result[domain.Product]{}, err
	}
	if total == 0 {
		return pagination.Result[domain.Product]{}, apperrors.NotFoundMsg("no products found")
	}
	return pagination.NewResult(products, total, p), nil
}

func (s *ProductService) rollbackUploads(ctx context.Context, uploaded []*storage.UploadResult) {
	for _, u := range uploaded {
		if err := s.store.Delete(ctx, u.PublicID); err != nil {
			s.logger.ErrorContext(ctx, "failed to remove orphan upload",
				slog.String("public_id", u.PublicID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *ProductService) invalidateListCaches(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "products:best-sellers"); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", slog.String("error", err.Error()))
	}
}
