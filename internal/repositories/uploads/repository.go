// Package uploads persists metadata for files users attach to their
// records. The payloads live in a blob store under the long_name key.
package uploads

import (
	"context"

	"github.com/mverner/teambook/internal/models"
)

type Repository interface {
	// Insert creates an upload row and returns its id. The LongName is the
	// blob storage key, normally a NewStorageKey value.
	Insert(ctx context.Context, up *models.Upload) (int64, error)
	// SelectKeysByOwner returns the blob storage key of every upload owned
	// by userID.
	SelectKeysByOwner(ctx context.Context, userID int64) ([]string, error)
	// DeleteByOwner removes every upload row owned by userID.
	DeleteByOwner(ctx context.Context, userID int64) error
}
