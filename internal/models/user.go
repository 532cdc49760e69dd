// Package models defines the data models persisted in the database.
package models

// Group is the role assigned to a user, ordered by privilege.
type Group int

const (
	GroupSysadmin Group = 1
	GroupAdmin    Group = 2
	GroupUser     Group = 4
)

// User is a row of the users table.
type User struct {
	UserID       int64
	Email        string
	Salt         string
	PasswordHash string
	Firstname    string
	Lastname     string
	Team         int64
	Group        Group
	Validated    bool
	Archived     bool
	APIKey       string
	ResetToken   string
	Lang         string
	// RegisterDate is the creation time in epoch seconds.
	RegisterDate int64
}

// UserRecord is what Read returns: the profile joined with the
// role-derived capability flags from the groups table.
type UserRecord struct {
	User
	Fullname   string
	TeamName   string
	CanLock    bool
	IsAdmin    bool
	IsSysadmin bool
}

// IsZero reports whether the record is the not-found empty value.
// A lookup miss is not an error; callers must check for emptiness.
func (r UserRecord) IsZero() bool {
	return r.UserID == 0
}
