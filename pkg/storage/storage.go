package storage

import (
	"context"
	"errors"
	"os"
)

var (
	// ErrNotFound is returned when the specified key was not found in the
	// store.
	ErrNotFound = errors.New("Not Found")
)

// Storage is a "bucket" style key/value store. Keys are slash separated
// paths, values are opaque byte slices.
type Storage interface {
	Write(ctx context.Context, key string, body []byte, options *Options) error
	Read(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error

	// List returns the keys found under the given path prefix.
	List(ctx context.Context, path string) ([]string, error)

	// Search returns the bodies of all objects under the path in the query.
	Search(ctx context.Context, query map[string]string) ([][]byte, error)

	// Clear removes all objects under the path in the query.
	Clear(ctx context.Context, query map[string]string) error
}

// Options holds the write options for a Storage.
type Options struct {
	TTL     int64 // Seconds until the object expires. S3 only.
	Mode    os.FileMode
	DirMode os.FileMode
}

// NewOptions returns an Options with sane defaults applied.
func NewOptions() Options {
	return Options{
		Mode:    0644,
		DirMode: 0755,
	}
}
