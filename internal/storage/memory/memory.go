// Package memory provides an in-memory storage.Storage for tests and local
// development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/preciousgifts/sugar-backend/internal/storage"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
)

// fileEntry stores metadata about an uploaded file in memory.
type fileEntry struct {
	PublicID    string
	Folder      string
	ContentType string
	URL         string
}

// Storage implements storage.Storage using an in-memory map.
// It stores metadata only, no actual file bytes.
type Storage struct {
	mu      sync.RWMutex
	files   map[string]*fileEntry
	baseURL string
	nextID  int
}

// New creates a new in-memory storage instance.
func New(baseURL string) *Storage {
	return &Storage{
		files:   make(map[string]*fileEntry),
		baseURL: baseURL,
	}
}

// Upload records file metadata in memory and returns a generated URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	publicID := fmt.Sprintf("%s/upload-%d", input.Folder, s.nextID)
	url := fmt.Sprintf("%s/%s", s.baseURL, publicID)

	s.files[publicID] = &fileEntry{
		PublicID:    publicID,
		Folder:      input.Folder,
		ContentType: input.ContentType,
		URL:         url,
	}

	return &storage.UploadResult{
		URL:      url,
		PublicID: publicID,
	}, nil
}

// Delete removes file metadata from memory.
func (s *Storage) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[publicID]; !exists {
		return apperrors.NotFound("file", publicID)
	}

	delete(s.files, publicID)
	return nil
}

// Len reports the number of stored files, for assertions in tests.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
