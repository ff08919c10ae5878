package store

import (
	"context"
	"errors"
)

// ErrBlobNotFound is returned when no blob exists under a key
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is a key-value blob store. The application persists its
// full state as a single blob under a fixed key; backup and restore
// use additional keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
