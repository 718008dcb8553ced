// Package diskstore implements a disk-based filesystem storage backend.
package diskstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is a disk-based filesystem storage backend. Blobs live under
// <root>/snapshots, compressed according to the codec.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a new disk store rooted at the given directory.
// The directory is created if it does not exist.
func New(root string, codec codec.Codec) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "snapshots"), 0755); err != nil {
		return nil, fmt.Errorf("creating snapshots directory: %w", err)
	}

	return &Store{
		root:  root,
		codec: codec,
	}, nil
}

// ReadBlob reads and decompresses the named blob.
func (s *Store) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	compressed, err := os.ReadFile(s.blobPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}

	reader, err := s.codec.Reader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing blob: %w", err)
	}

	return data, nil
}

// WriteBlob compresses and writes the named blob. The write goes through
// a temp file and a rename so readers never observe a partial blob.
func (s *Store) WriteBlob(ctx context.Context, name string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf bytes.Buffer
	writer, err := s.codec.Writer(&buf)
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("compressing blob: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing compressor: %w", err)
	}

	path := s.blobPath(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing blob: %w", err)
	}
	return nil
}

// List returns the names of all stored blobs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(filepath.Join(s.root, "snapshots"))
	if err != nil {
		return nil, fmt.Errorf("reading snapshots directory: %w", err)
	}

	ext := s.codec.Extension()
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".tmp") {
			continue
		}
		if ext != "" {
			if !strings.HasSuffix(name, "."+ext) {
				continue
			}
			name = strings.TrimSuffix(name, "."+ext)
		}
		names = append(names, name)
	}
	return names, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// blobPath returns the filesystem path for a named blob.
func (s *Store) blobPath(name string) string {
	return filepath.Join(s.root, "snapshots", s.blobName(name))
}

// blobName returns the filename for a blob name.
func (s *Store) blobName(name string) string {
	if ext := s.codec.Extension(); ext != "" {
		return name + "." + ext
	}
	return name
}
