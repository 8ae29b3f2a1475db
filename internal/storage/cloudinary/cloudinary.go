// Package cloudinary implements storage.Storage on the Cloudinary CDN.
package cloudinary

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/preciousgifts/sugar-backend/internal/storage"
)

// Storage implements storage.Storage using the Cloudinary upload API.
type Storage struct {
	client *cloudinary.Cloudinary
}

// New creates a Cloudinary-backed storage from a cloudinary:// URL.
func New(cloudinaryURL string) (*Storage, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary client: %w", err)
	}
	return &Storage{client: cld}, nil
}

// Upload streams the file to Cloudinary. The multipart reader is consumed
// directly, so nothing is spooled to local disk.
func (s *Storage) Upload(ctx context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	result, err := s.client.Upload.Upload(ctx, input.Data, uploader.UploadParams{
		Folder: input.Folder,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	return &storage.UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}

// Delete removes an asset by its public id.
func (s *Storage) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	return nil
}
