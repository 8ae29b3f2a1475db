// Package storage abstracts the object store holding product and carousel
// media.
package storage

import (
	"context"
	"io"
)

// Storage defines the interface for media storage operations.
type Storage interface {
	// Upload stores a file under the given folder and returns the hosted
	// URL with the provider's public id.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Delete removes a file by its public id.
	Delete(ctx context.Context, publicID string) error
}

// UploadInput holds the parameters for uploading a file.
type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
	Data        io.Reader
}

// UploadResult holds the result of a successful upload.
type UploadResult struct {
	URL      string
	PublicID string
}
