// Package users persists user rows and their role capability flags.
package users

import (
	"context"

	"github.com/mverner/teambook/internal/models"
)

type Repository interface {
	// Insert creates a user row and returns the assigned userid.
	Insert(ctx context.Context, u *models.User) (int64, error)
	// CountAll returns the number of users in the whole system, archived
	// included.
	CountAll(ctx context.Context) (int64, error)
	// CountByTeam returns the number of users registered in one team.
	CountByTeam(ctx context.Context, team int64) (int64, error)
	// EmailTaken reports whether a non-archived user already holds email,
	// in any team.
	EmailTaken(ctx context.Context, email string) (bool, error)
	// Get returns the full profile joined with the group capability flags,
	// or common.ErrNotFound.
	Get(ctx context.Context, userid int64) (models.UserRecord, error)
	// GetByEmail looks up a non-archived user by exact email.
	GetByEmail(ctx context.Context, email string) (models.UserRecord, error)
	// GetByAPIKey returns the userid owning the key among non-archived
	// users, or common.ErrNotFound.
	GetByAPIKey(ctx context.Context, apiKey string) (int64, error)
	// SelectByTeam lists a team's users; a non-nil validated filters on the
	// flag.
	SelectByTeam(ctx context.Context, team int64, validated *bool) ([]models.UserRecord, error)
	// SelectAll lists every user ordered by team, group, lastname.
	SelectAll(ctx context.Context) ([]models.UserRecord, error)
	// SelectEmails returns the email of every validated, non-archived user.
	SelectEmails(ctx context.Context) ([]string, error)
	// SelectAdminEmails returns the addresses of a team's validated,
	// non-archived admins and sysadmins.
	SelectAdminEmails(ctx context.Context, team int64) ([]string, error)
	// UpdateProfile is the administrative update of name, email, group and
	// validation flag.
	UpdateProfile(ctx context.Context, userid int64, firstname, lastname, email string, group models.Group, validated bool) error
	// UpdateContact is the self-service update of name and email.
	UpdateContact(ctx context.Context, userid int64, firstname, lastname, email string) error
	// UpdatePassword stores a fresh salt and hash and clears any standing
	// reset token in the same statement.
	UpdatePassword(ctx context.Context, userid int64, salt, hash string) error
	// SetValidated flips the user to validated. Reports whether a row
	// matched.
	SetValidated(ctx context.Context, userid int64) (bool, error)
	// Archive marks the user archived and clears the reset token.
	Archive(ctx context.Context, userid int64) error
	// Delete removes the user row.
	Delete(ctx context.Context, userid int64) error
	// SetAPIKey stores the key, replacing any prior one.
	SetAPIKey(ctx context.Context, userid int64, apiKey string) error
	// UpdatePreferences stores the coerced preference values.
	UpdatePreferences(ctx context.Context, userid int64, p models.Preferences) error
}
