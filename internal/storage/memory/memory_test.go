package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preciousgifts/sugar-backend/internal/storage"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
)

func TestUpload_AssignsSequentialPublicIDs(t *testing.T) {
	s := New("https://cdn.test")
	ctx := context.Background()

	first, err := s.Upload(ctx, &storage.UploadInput{
		Data:        strings.NewReader("img-1"),
		Folder:      "products",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "products/upload-1", first.PublicID)
	assert.Equal(t, "https://cdn.test/products/upload-1", first.URL)

	second, err := s.Upload(ctx, &storage.UploadInput{
		Data:        strings.NewReader("img-2"),
		Folder:      "carousel",
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, "carousel/upload-2", second.PublicID)

	assert.Equal(t, 2, s.Len())
}

func TestDelete_RemovesFile(t *testing.T) {
	s := New("https://cdn.test")
	ctx := context.Background()

	res, err := s.Upload(ctx, &storage.UploadInput{
		Data:   strings.NewReader("img"),
		Folder: "products",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, res.PublicID))
	assert.Equal(t, 0, s.Len())
}

func TestDelete_UnknownFile(t *testing.T) {
	s := New("https://cdn.test")

	err := s.Delete(context.Background(), "products/upload-99")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
