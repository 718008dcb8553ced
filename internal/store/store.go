// Package store defines the storage backend interface for persisting
// index snapshot blobs.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a named blob does not exist in the store.
var ErrNotFound = errors.New("store: blob not found")

// Store defines the interface for snapshot storage backends.
// Implementations handle naming, compression, and storage details
// internally; callers only ever see fully-materialized blobs.
type Store interface {
	// ReadBlob reads the content of the named blob.
	ReadBlob(ctx context.Context, name string) ([]byte, error)

	// WriteBlob writes the named blob, replacing any previous content
	// stored under that name.
	WriteBlob(ctx context.Context, name string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Lister is implemented by stores that can enumerate their blobs.
type Lister interface {
	// List returns the names of all stored blobs.
	List(ctx context.Context) ([]string, error)
}
