// Package memory provides the in-memory storage backend for shortened URLs.
//
// The store is the only shared mutable state in the application. Every
// operation runs under the store's mutex, so all of them are atomic with
// respect to each other, and callers always receive copies of the stored
// records, never references into the map.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SairamThankari/url-shortener/internal/models"
	"github.com/SairamThankari/url-shortener/internal/storage"
)

// Store is a mutex-guarded map from short code to URL record. The store is
// volatile: records live for the lifetime of the process and are never
// deleted or expired.
type Store struct {
	mu   sync.RWMutex
	urls map[string]models.URL
}

// New returns an empty Store ready for use.
func New() *Store {
	return &Store{
		urls: make(map[string]models.URL),
	}
}

// Create inserts a new URL record for the given short code. The existence
// check and the insert happen under the same critical section, which makes
// Create the authoritative uniqueness gate: of two concurrent calls with the
// same code, exactly one succeeds and the other gets storage.ErrShortCodeExists.
func (s *Store) Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error) {
	const op = "storage.memory.Store.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[shortCode]; ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrShortCodeExists)
	}

	url := models.URL{
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		Clicks:      0,
		CreatedAt:   time.Now(),
	}
	s.urls[shortCode] = url

	return &url, nil
}

// GetByShortCode retrieves a copy of the URL record for the given short code.
// It returns storage.ErrURLNotFound if the code is unknown.
func (s *Store) GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "storage.memory.Store.GetByShortCode"

	s.mu.RLock()
	defer s.mu.RUnlock()

	url, ok := s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrURLNotFound)
	}

	return &url, nil
}

// IncrementClicks atomically increments the click counter of the given short
// code by one. It reports whether the code exists; incrementing an unknown
// code is a no-op, not an error.
func (s *Store) IncrementClicks(ctx context.Context, shortCode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	url, ok := s.urls[shortCode]
	if !ok {
		return false
	}

	url.Clicks++
	s.urls[shortCode] = url

	return true
}

// Exists reports whether the given short code is present in the store.
//
// The result may be stale by the time a subsequent Create runs; Create
// re-checks under its own lock, so Exists is only an optimization for the
// code generator.
func (s *Store) Exists(ctx context.Context, shortCode string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.urls[shortCode]

	return ok
}

// GetStats retrieves a copy of the URL record for the given short code
// without touching its click counter. It returns storage.ErrURLNotFound if
// the code is unknown.
func (s *Store) GetStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "storage.memory.Store.GetStats"

	s.mu.RLock()
	defer s.mu.RUnlock()

	url, ok := s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrURLNotFound)
	}

	return &url, nil
}

// Len returns the number of records currently held by the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.urls)
}
