package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/preciousgifts/sugar-backend/internal/auth"
	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/event"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// --- Mock Sequence Repository ---

type mockSequenceRepository struct {
	mock.Mock
}

func (m *mockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock Product Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter domain.ProductFilter, p pagination.Params) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) BestSellers(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) UpdateRatingStats(ctx context.Context, productID int64, stats domain.RatingStats) error {
	args := m.Called(ctx, productID, stats)
	return args.Error(0)
}

// --- Mock Rating Repository ---

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockRatingRepository) GetByProductAndUser(ctx context.Context, productID, userID int64) (*domain.Rating, error) {
	args := m.Called(ctx, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *mockRatingRepository) Update(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) ListByProduct(ctx context.Context, productID int64, p pagination.Params) ([]domain.Rating, int, error) {
	args := m.Called(ctx, productID, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Rating), args.Int(1), args.Error(2)
}

func (m *mockRatingRepository) AggregateByProduct(ctx context.Context, productID int64) (domain.RatingStats, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.RatingStats), args.Error(1)
}

// --- Mock Carousel Repository ---

type mockCarouselRepository struct {
	mock.Mock
}

func (m *mockCarouselRepository) CreateImage(ctx context.Context, img *domain.CarouselImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *mockCarouselRepository) ListImages(ctx context.Context, placement string) ([]domain.CarouselImage, error) {
	args := m.Called(ctx, placement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CarouselImage), args.Error(1)
}

func (m *mockCarouselRepository) CreateVideo(ctx context.Context, vid *domain.CarouselVideo) error {
	args := m.Called(ctx, vid)
	return args.Error(0)
}

func (m *mockCarouselRepository) ListVideos(ctx context.Context, placement string) ([]domain.CarouselVideo, error) {
	args := m.Called(ctx, placement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CarouselVideo), args.Error(1)
}

func (m *mockCarouselRepository) CreateMarquee(ctx context.Context, mq *domain.Marquee) error {
	args := m.Called(ctx, mq)
	return args.Error(0)
}

func (m *mockCarouselRepository) ListMarquees(ctx context.Context) ([]domain.Marquee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Marquee), args.Error(1)
}

// --- Mock Log Repository ---

type mockLogRepository struct {
	mock.Mock
}

func (m *mockLogRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockLogRepository) List(ctx context.Context, since time.Time, p pagination.Params) ([]domain.LogEntry, int, error) {
	args := m.Called(ctx, since, p)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.LogEntry), args.Int(1), args.Error(2)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing-only!!", 15*time.Minute)
}

func newTestEventProducer() *event.Producer {
	return event.NewProducer(nil, newTestLogger())
}
