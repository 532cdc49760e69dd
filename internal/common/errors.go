// Package common defines shared sentinel errors and small utilities used
// across the teambook core. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrWeakPassword = errors.New("password too short")
	ErrInvalidID    = errors.New("invalid id")

	// Uniqueness violations.
	ErrDuplicateEmail = errors.New("email already in use")

	// Privilege errors.
	ErrPrivilegeEscalation = errors.New("only a sysadmin can grant the sysadmin group")
	ErrCrossTeam           = errors.New("user does not belong to the caller's team")

	// Credential errors.
	ErrAuthentication   = errors.New("wrong password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidAPIKey    = errors.New("invalid api key")

	// ErrPartialFailure marks a multi-step operation where some but not all
	// steps succeeded. Already-applied steps are not rolled back.
	ErrPartialFailure = errors.New("operation partially failed")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
