package cachedstore

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/repertoire/internal/store"
)

// fakeBackend is a simple in-memory backend for testing.
type fakeBackend struct {
	data   map[string][]byte
	hits   int64
	misses int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{data: make(map[string][]byte)}
}

func (b *fakeBackend) Get(name string) ([]byte, bool) {
	if data, ok := b.data[name]; ok {
		b.hits++
		return data, true
	}
	b.misses++
	return nil, false
}

func (b *fakeBackend) Set(name string, data []byte) {
	b.data[name] = data
}

func (b *fakeBackend) Stats() Stats {
	return Stats{Hits: b.hits, Misses: b.misses, Size: len(b.data)}
}

// fakeStore is a simple store for testing.
type fakeStore struct {
	data   map[string][]byte
	writes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.data[name]; ok {
		return data, nil
	}
	return nil, store.ErrNotFound
}

func (s *fakeStore) WriteBlob(ctx context.Context, name string, data []byte) error {
	s.data[name] = data
	s.writes++
	return nil
}

func (s *fakeStore) Close() error {
	return nil
}

func TestStore_CacheHit(t *testing.T) {
	backend := newFakeBackend()
	underlying := newFakeStore()

	// Pre-populate cache.
	backend.Set("alice", []byte("cached data"))

	s := New(underlying, backend)
	ctx := context.Background()

	data, err := s.ReadBlob(ctx, "alice")
	if err != nil {
		t.Fatalf("ReadBlob() error = %v", err)
	}
	if string(data) != "cached data" {
		t.Errorf("ReadBlob() = %q, want %q", data, "cached data")
	}

	stats := s.Stats()
	if stats.Hits != 1 {
		t.Errorf("Stats().Hits = %d, want 1", stats.Hits)
	}
}

func TestStore_CacheMiss(t *testing.T) {
	backend := newFakeBackend()
	underlying := newFakeStore()

	// Put data in underlying store, not cache.
	underlying.data["alice"] = []byte("underlying data")

	s := New(underlying, backend)
	ctx := context.Background()

	data, err := s.ReadBlob(ctx, "alice")
	if err != nil {
		t.Fatalf("ReadBlob() error = %v", err)
	}
	if string(data) != "underlying data" {
		t.Errorf("ReadBlob() = %q, want %q", data, "underlying data")
	}

	// Should have cached the data.
	if _, ok := backend.data["alice"]; !ok {
		t.Error("data should be cached after miss")
	}

	stats := s.Stats()
	if stats.Misses != 1 {
		t.Errorf("Stats().Misses = %d, want 1", stats.Misses)
	}
}

func TestStore_WriteThrough(t *testing.T) {
	backend := newFakeBackend()
	underlying := newFakeStore()

	s := New(underlying, backend)
	ctx := context.Background()

	if err := s.WriteBlob(ctx, "alice", []byte("fresh")); err != nil {
		t.Fatalf("WriteBlob() error = %v", err)
	}

	if underlying.writes != 1 {
		t.Errorf("underlying writes = %d, want 1", underlying.writes)
	}

	// A read after the write must see the new content from the cache.
	data, err := s.ReadBlob(ctx, "alice")
	if err != nil {
		t.Fatalf("ReadBlob() error = %v", err)
	}
	if string(data) != "fresh" {
		t.Errorf("ReadBlob() = %q, want %q", data, "fresh")
	}
	if s.Stats().Hits != 1 {
		t.Errorf("Stats().Hits = %d, want 1 (read should hit the refreshed cache)", s.Stats().Hits)
	}
}

func TestStore_NotFound(t *testing.T) {
	backend := newFakeBackend()
	underlying := newFakeStore()

	s := New(underlying, backend)

	_, err := s.ReadBlob(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ReadBlob() error = %v, want ErrNotFound", err)
	}
}

// listingStore is a fakeStore that also supports listing.
type listingStore struct {
	*fakeStore
}

func (s *listingStore) List(ctx context.Context) ([]string, error) {
	var names []string
	for name := range s.data {
		names = append(names, name)
	}
	return names, nil
}

func TestStore_List_Delegates(t *testing.T) {
	underlying := &listingStore{fakeStore: newFakeStore()}
	underlying.data["alice"] = []byte("a")

	s := New(underlying, newFakeBackend())
	names, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != "alice" {
		t.Errorf("List() = %v, want [alice]", names)
	}
}

func TestStore_List_Unsupported(t *testing.T) {
	s := New(newFakeStore(), newFakeBackend())
	if _, err := s.List(context.Background()); err == nil {
		t.Error("List() over a non-listing store should return error")
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		hits     int64
		misses   int64
		expected float64
	}{
		{"no requests", 0, 0, 0},
		{"all hits", 10, 0, 100},
		{"all misses", 0, 10, 0},
		{"50% hit rate", 5, 5, 50},
		{"75% hit rate", 3, 1, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Hits: tt.hits, Misses: tt.misses}
			if got := s.HitRate(); got != tt.expected {
				t.Errorf("HitRate() = %v, want %v", got, tt.expected)
			}
		})
	}
}
