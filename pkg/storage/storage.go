// Package storage is the opaque blob store behind media uploads. Records in
// the database reference blobs by the path a Store returns; nothing else about
// the backend leaks into the core.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

type Store interface {
	// Save writes the blob and returns the storage path to persist.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// objectKey keeps the original extension but randomizes the name so uploads
// cannot collide or traverse paths.
func objectKey(filename string) string {
	return uuid.New().String() + filepath.Ext(filepath.Base(filename))
}
