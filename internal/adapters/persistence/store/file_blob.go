package store

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore is a BlobStore backed by one JSON file per key inside a
// directory. Writes go through a temp file and rename so a crash
// mid-write never leaves a truncated blob behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a FileStore
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the blob stored under key
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrBlobNotFound
	}
	return data, err
}

// Put writes the blob under key, replacing any previous value
func (f *FileStore) Put(_ context.Context, key string, data []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

// Delete removes the blob under key; missing keys are not an error
func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
