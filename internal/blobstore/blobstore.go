// Package blobstore abstracts removal of uploaded files from their
// backing storage.
package blobstore

import "context"

// Store removes stored objects by key. Keys are the long names recorded
// alongside uploads.
type Store interface {
	Delete(ctx context.Context, key string) error
}
