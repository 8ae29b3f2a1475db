package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preciousgifts/sugar-backend/internal/domain"
)

func newCarouselTestFixture(t *testing.T) (*CarouselRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewCarouselRepository(mock)
	return repo, mock
}

func TestCarouselRepository_CreateImage(t *testing.T) {
	repo, mock := newCarouselTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	img := &domain.CarouselImage{
		ID:        1,
		Title:     "Summer Sale",
		ImageURL:  "https://cdn.test/banner.jpg",
		PublicID:  "sugar_clone/carousel_pics/banner",
		Placement: domain.PlacementHomePage,
		TargetURL: "/sale",
		Position:  1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO carousel_images").
		WithArgs(img.ID, img.Title, img.ImageURL, img.PublicID, img.Placement,
			img.TargetURL, img.Position, img.IsActive, img.CreatedAt, img.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateImage(context.Background(), img)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarouselRepository_ListImages_PlacementFilter(t *testing.T) {
	repo, mock := newCarouselTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	cols := []string{"id", "title", "image_url", "public_id", "placement", "target_url", "position", "is_active", "created_at", "updated_at"}
	rows := pgxmock.NewRows(cols).
		AddRow(int64(1), "A", "https://cdn.test/a.jpg", "pid-a", domain.PlacementHomePage, "", 1, true, now, now).
		AddRow(int64(2), "B", "https://cdn.test/b.jpg", "pid-b", domain.PlacementHomePage, "", 2, true, now, now)

	mock.ExpectQuery("SELECT .+ FROM carousel_images WHERE is_active").
		WithArgs(domain.PlacementHomePage).
		WillReturnRows(rows)

	images, err := repo.ListImages(context.Background(), domain.PlacementHomePage)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, int64(1), images[0].ID)
	assert.Equal(t, 2, images[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarouselRepository_CreateVideo(t *testing.T) {
	repo, mock := newCarouselTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	vid := &domain.CarouselVideo{
		ID:        2,
		Title:     "How To",
		VideoURL:  "https://cdn.test/howto.mp4",
		PublicID:  "sugar_clone/carousel_video/howto",
		Placement: domain.PlacementProductPage,
		Position:  1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO carousel_videos").
		WithArgs(vid.ID, vid.Title, vid.VideoURL, vid.PublicID, vid.Placement,
			vid.Position, vid.IsActive, vid.CreatedAt, vid.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateVideo(context.Background(), vid)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarouselRepository_CreateMarquee(t *testing.T) {
	repo, mock := newCarouselTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	m := &domain.Marquee{
		ID:        1,
		Text:      "Free shipping above 499!",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO marquees").
		WithArgs(m.ID, m.Text, m.IsActive, m.CreatedAt, m.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.CreateMarquee(context.Background(), m)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCarouselRepository_ListMarquees_NewestFirst(t *testing.T) {
	repo, mock := newCarouselTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	cols := []string{"id", "text", "is_active", "created_at", "updated_at"}
	rows := pgxmock.NewRows(cols).
		AddRow(int64(2), "Newest", true, now, now).
		AddRow(int64(1), "Older", true, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM marquees WHERE is_active ORDER BY created_at DESC").
		WillReturnRows(rows)

	marquees, err := repo.ListMarquees(context.Background())
	require.NoError(t, err)
	require.Len(t, marquees, 2)
	assert.Equal(t, "Newest", marquees[0].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}
