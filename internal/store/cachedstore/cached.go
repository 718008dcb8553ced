package cachedstore

import (
	"context"
	"errors"

	"github.com/discochess/repertoire/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store wraps another Store with caching.
type Store struct {
	underlying store.Store
	backend    Backend
}

// New creates a new cached store wrapping the given store.
func New(underlying store.Store, backend Backend) *Store {
	return &Store{
		underlying: underlying,
		backend:    backend,
	}
}

// ReadBlob reads a blob, checking the cache first.
func (s *Store) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	// Check cache first.
	if data, ok := s.backend.Get(name); ok {
		return data, nil
	}

	// Cache miss - read from underlying store.
	data, err := s.underlying.ReadBlob(ctx, name)
	if err != nil {
		return nil, err
	}

	// Cache the result.
	s.backend.Set(name, data)

	return data, nil
}

// WriteBlob writes through to the underlying store and refreshes the
// cache so later reads see the new content.
func (s *Store) WriteBlob(ctx context.Context, name string, data []byte) error {
	if err := s.underlying.WriteBlob(ctx, name, data); err != nil {
		return err
	}
	s.backend.Set(name, data)
	return nil
}

// List delegates to the underlying store. Listing bypasses the cache;
// only blob content is cached, never the name space.
func (s *Store) List(ctx context.Context) ([]string, error) {
	lister, ok := s.underlying.(store.Lister)
	if !ok {
		return nil, errors.New("cachedstore: underlying store does not support listing")
	}
	return lister.List(ctx)
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Stats returns cache statistics.
func (s *Store) Stats() Stats {
	return s.backend.Stats()
}
