// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/store"
)

// Compile-time checks that Store implements store.Store and store.Lister.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is a Google Cloud Storage backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist. The codec handles compression/decompression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// ReadBlob reads and decompresses the named blob.
func (s *Store) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	// Check for cancellation before starting.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	obj := s.bucket.Object(s.blobKey(name))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	decompressor, err := s.codec.Reader(reader)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer decompressor.Close()

	data, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, fmt.Errorf("decompressing blob: %w", err)
	}

	return data, nil
}

// WriteBlob compresses and writes the named blob.
func (s *Store) WriteBlob(ctx context.Context, name string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	obj := s.bucket.Object(s.blobKey(name))
	writer := obj.NewWriter(ctx)

	compressor, err := s.codec.Writer(writer)
	if err != nil {
		writer.Close()
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := compressor.Write(data); err != nil {
		compressor.Close()
		writer.Close()
		return fmt.Errorf("compressing blob: %w", err)
	}
	if err := compressor.Close(); err != nil {
		writer.Close()
		return fmt.Errorf("finalizing compressor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	return nil
}

// List returns the names of all blobs under the store's prefix.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.prefix + "snapshots/"})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing blobs: %w", err)
		}
		name := strings.TrimPrefix(attrs.Name, s.prefix+"snapshots/")
		if ext := s.codec.Extension(); ext != "" {
			name = strings.TrimSuffix(name, "."+ext)
		}
		names = append(names, name)
	}
	return names, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// blobKey returns the full object key for a named blob.
func (s *Store) blobKey(name string) string {
	key := s.prefix + "snapshots/" + name
	if ext := s.codec.Extension(); ext != "" {
		key += "." + ext
	}
	return key
}
