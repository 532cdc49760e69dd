package models

import "time"

// Entity is a primary record (an experiment or a database item) owned by a
// user within a team. Only the fields the account lifecycle touches are
// modeled here; rendering-level fields belong to the controllers.
type Entity struct {
	ID     int64
	Team   int64
	UserID int64
	Type   string
	Title  string

	Locked     bool
	LockedBy   int64
	LockedWhen time.Time
}

// Upload is the metadata row for a file a user attached to an entity. The
// payload itself lives in a blob store under LongName.
type Upload struct {
	ID       int64
	UserID   int64
	ItemID   int64
	Type     string
	RealName string
	// LongName is the storage key of the blob.
	LongName string
}
