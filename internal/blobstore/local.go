package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore deletes files from a directory on the local filesystem.
type LocalStore struct {
	root string
}

// NewLocalStore constructs a LocalStore rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

// Delete removes the file for key. A missing file is not an error, the
// outcome is the same.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.root, filepath.Clean("/"+key))
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}
