package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// DiskStore writes blobs under a local directory (the original uploads/ layout).
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	key := objectKey(filename)
	path := filepath.Join(s.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
