// Package entities covers the slice of primary-record storage the account
// lifecycle needs: the lock cascade on archive and the owner cascade on
// destroy.
package entities

import "context"

type Repository interface {
	// LockByOwner locks every entity owned by userID, attributes the lock
	// to that same user and stamps the lock time. Returns the number of
	// entities locked.
	LockByOwner(ctx context.Context, userID int64) (int64, error)
	// DeleteByOwner removes every entity owned by userID.
	DeleteByOwner(ctx context.Context, userID int64) error
}
