package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mverner/teambook/internal/blobstore"
	"github.com/mverner/teambook/internal/common"
	"github.com/mverner/teambook/internal/config"
	"github.com/mverner/teambook/internal/credential"
	"github.com/mverner/teambook/internal/dbx"
	"github.com/mverner/teambook/internal/logging"
	"github.com/mverner/teambook/internal/models"
	"github.com/mverner/teambook/internal/notify"
	"github.com/mverner/teambook/internal/repositories/repomanager"
)

// apiKeyBytes is the entropy of a generated API key; the stored key is its
// hex rendering, 84 characters.
const apiKeyBytes = 42

// DirectoryService manages user accounts across their whole lifecycle:
// registration, profile and credential updates, validation, archival and
// destruction with its storage cascade.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	settings    config.Settings
	notifier    notify.Notifier
	blobs       blobstore.Store
	log         logging.Logger
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager, settings config.Settings, n notify.Notifier, blobs blobstore.Store, log logging.Logger) *DirectoryService {
	return &DirectoryService{
		db:          db,
		repomanager: m,
		settings:    settings,
		notifier:    n,
		blobs:       blobs,
		log:         log,
	}
}

// CreateParams carries the inputs of account registration. Password may be
// empty for accounts created by an admin; such accounts cannot log in until
// a password is set.
type CreateParams struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
	Team      int64
	Group     models.Group
}

// Create registers a new account and returns its userid.
//
// The very first account in the system becomes a sysadmin and the first
// account of a team becomes its admin, whatever group was requested.
// Base-role accounts start unvalidated when admin approval is switched on;
// admins of the team are then notified.
func (s *DirectoryService) Create(ctx context.Context, p CreateParams) (int64, error) {
	salt, hash := "", ""
	if p.Password != "" {
		if err := credential.CheckLength(p.Password, s.settings.MinPasswordLength); err != nil {
			return 0, err
		}
		var err error
		salt, err = credential.NewSalt()
		if err != nil {
			return 0, fmt.Errorf("error generating salt: %w", err)
		}
		hash = credential.HashPassword(p.Password, salt)
	}

	var userid int64
	var validated bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		taken, err := repo.EmailTaken(ctx, p.Email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if taken {
			return common.ErrDuplicateEmail
		}

		total, err := repo.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("error counting users: %w", err)
		}
		inTeam, err := repo.CountByTeam(ctx, p.Team)
		if err != nil {
			return fmt.Errorf("error counting team users: %w", err)
		}

		group := p.Group
		if group == 0 {
			group = models.GroupUser
		}
		if total == 0 {
			group = models.GroupSysadmin
		} else if inTeam == 0 {
			group = models.GroupAdmin
		}

		validated = true
		if s.settings.AdminValidate && group == models.GroupUser {
			validated = false
		}

		userid, err = repo.Insert(ctx, &models.User{
			Email:        p.Email,
			Salt:         salt,
			PasswordHash: hash,
			Firstname:    p.Firstname,
			Lastname:     p.Lastname,
			Team:         p.Team,
			Group:        group,
			Validated:    validated,
			Lang:         s.settings.DefaultLang,
			RegisterDate: time.Now().Unix(),
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	if !validated {
		if err := s.notifier.AccountPending(ctx, p.Team, p.Email); err != nil {
			s.log.Warn(ctx, "pending account notification failed", "error", err)
		}
	}

	s.log.Info(ctx, "account created", "userid", userid, "team", p.Team, "validated", validated)
	return userid, nil
}

// Read returns a user's full record. An id that cannot exist yields
// common.ErrInvalidID; an id that merely does not exist yields the zero
// record and no error.
func (s *DirectoryService) Read(ctx context.Context, userid int64) (models.UserRecord, error) {
	if userid <= 0 {
		return models.UserRecord{}, common.ErrInvalidID
	}

	repo := s.repomanager.Users(s.db)

	rec, err := repo.Get(ctx, userid)
	if errors.Is(err, common.ErrNotFound) {
		return models.UserRecord{}, nil
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("error reading user: %w", err)
	}

	return rec, nil
}

// ReadFromEmail looks a user up by exact email among live accounts. A miss
// yields the zero record and no error.
func (s *DirectoryService) ReadFromEmail(ctx context.Context, email string) (models.UserRecord, error) {
	repo := s.repomanager.Users(s.db)

	rec, err := repo.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return models.UserRecord{}, nil
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("error reading user: %w", err)
	}

	return rec, nil
}

// ReadFromAPIKey resolves an API key to its owner. An unknown key yields
// common.ErrInvalidAPIKey.
func (s *DirectoryService) ReadFromAPIKey(ctx context.Context, apiKey string) (models.UserRecord, error) {
	repo := s.repomanager.Users(s.db)

	userid, err := repo.GetByAPIKey(ctx, apiKey)
	if errors.Is(err, common.ErrNotFound) {
		return models.UserRecord{}, common.ErrInvalidAPIKey
	}
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("error resolving api key: %w", err)
	}

	rec, err := repo.Get(ctx, userid)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("error reading user: %w", err)
	}

	return rec, nil
}

// UpdateParams carries the fields of an administrative profile update. A
// Password longer than one character after trimming replaces the stored
// credential;
// shorter values are ignored, matching what account forms submit when the
// field is untouched.
type UpdateParams struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Group     models.Group
	Validated bool
}

// Update applies an administrative edit to a user. Only a sysadmin actor
// may grant the sysadmin group.
func (s *DirectoryService) Update(ctx context.Context, actor models.UserRecord, userid int64, p UpdateParams) error {
	switch p.Group {
	case models.GroupSysadmin, models.GroupAdmin, models.GroupUser:
	default:
		return common.ErrInvalidID
	}

	if p.Group == models.GroupSysadmin && !actor.IsSysadmin {
		return common.ErrPrivilegeEscalation
	}

	rotate := len(strings.TrimSpace(p.Password)) > 1
	salt, hash := "", ""
	if rotate {
		if err := credential.CheckLength(p.Password, s.settings.MinPasswordLength); err != nil {
			return err
		}
		var err error
		salt, err = credential.NewSalt()
		if err != nil {
			return fmt.Errorf("error generating salt: %w", err)
		}
		hash = credential.HashPassword(p.Password, salt)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if rotate {
			if err := repo.UpdatePassword(ctx, userid, salt, hash); err != nil {
				return fmt.Errorf("error updating password: %w", err)
			}
		}

		if err := repo.UpdateProfile(ctx, userid, p.Firstname, p.Lastname, p.Email, p.Group, p.Validated); err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}

		return nil
	})
}

// AccountParams carries a self-service account update. The owner must
// present their current password; a new password, when given, must be
// confirmed.
type AccountParams struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
	Firstname       string
	Lastname        string
	Email           string
}

// UpdateAccount lets a user edit their own contact details and credential.
func (s *DirectoryService) UpdateAccount(ctx context.Context, userid int64, p AccountParams) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.Get(ctx, userid)
	if err != nil {
		return fmt.Errorf("error reading user: %w", err)
	}

	if !credential.Compare(user.PasswordHash, p.CurrentPassword, user.Salt) {
		return common.ErrAuthentication
	}

	rotate := p.NewPassword != ""
	if rotate {
		if p.NewPassword != p.ConfirmPassword {
			return common.ErrPasswordMismatch
		}
		if err := credential.CheckLength(p.NewPassword, s.settings.MinPasswordLength); err != nil {
			return err
		}
	}

	if p.Email != user.Email {
		taken, err := repo.EmailTaken(ctx, p.Email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if taken {
			return common.ErrDuplicateEmail
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := repo.UpdateContact(ctx, userid, p.Firstname, p.Lastname, p.Email); err != nil {
			return fmt.Errorf("error updating contact: %w", err)
		}

		if rotate {
			salt, err := credential.NewSalt()
			if err != nil {
				return fmt.Errorf("error generating salt: %w", err)
			}
			hash := credential.HashPassword(p.NewPassword, salt)
			if err := repo.UpdatePassword(ctx, userid, salt, hash); err != nil {
				return fmt.Errorf("error updating password: %w", err)
			}
		}

		return nil
	})
}

// UpdatePassword replaces a user's credential with a fresh salt and hash.
// Any standing reset token stops working at the same moment.
func (s *DirectoryService) UpdatePassword(ctx context.Context, userid int64, password string) error {
	if err := credential.CheckLength(password, s.settings.MinPasswordLength); err != nil {
		return err
	}

	salt, err := credential.NewSalt()
	if err != nil {
		return fmt.Errorf("error generating salt: %w", err)
	}
	hash := credential.HashPassword(password, salt)

	repo := s.repomanager.Users(s.db)
	if err := repo.UpdatePassword(ctx, userid, salt, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// Validate approves a pending account and notifies its owner. Returns a
// confirmation message for the admin panel.
func (s *DirectoryService) Validate(ctx context.Context, userid int64) (string, error) {
	repo := s.repomanager.Users(s.db)

	matched, err := repo.SetValidated(ctx, userid)
	if err != nil {
		return "", fmt.Errorf("error validating user: %w", err)
	}
	if !matched {
		return "", common.ErrNotFound
	}

	user, err := repo.Get(ctx, userid)
	if err != nil {
		return "", fmt.Errorf("error reading user: %w", err)
	}

	if err := s.notifier.AccountValidated(ctx, user.Email, user.Fullname); err != nil {
		s.log.Warn(ctx, "validation notification failed", "userid", userid, "error", err)
	}

	return fmt.Sprintf("User %s (%s) now has an active account.", user.Fullname, user.Email), nil
}

// Archive retires an account: the user can no longer log in, their reset
// token is void and every entity they own is locked in their name. The
// rows all stay for the record.
func (s *DirectoryService) Archive(ctx context.Context, userid int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Archive(ctx, userid); err != nil {
			return fmt.Errorf("error archiving user: %w", err)
		}

		locked, err := s.repomanager.Entities(tx).LockByOwner(ctx, userid)
		if err != nil {
			return fmt.Errorf("error locking entities: %w", err)
		}

		s.log.Info(ctx, "account archived", "userid", userid, "entities_locked", locked)
		return nil
	})

	return err
}

// Destroy permanently removes a user and everything they own: entities,
// tag links and uploads, including the stored files. The actor must
// confirm with their own password and may only destroy accounts of their
// own team. Database rows go atomically; stored files are removed after,
// best effort, with common.ErrPartialFailure reported when any are left
// behind.
func (s *DirectoryService) Destroy(ctx context.Context, actor models.UserRecord, password, targetEmail string) error {
	if !credential.Compare(actor.PasswordHash, password, actor.Salt) {
		return common.ErrAuthentication
	}

	target, err := s.ReadFromEmail(ctx, targetEmail)
	if err != nil {
		return err
	}
	if target.IsZero() || target.Team != actor.Team {
		return common.ErrCrossTeam
	}

	var keys []string

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		keys, err = s.repomanager.Uploads(tx).SelectKeysByOwner(ctx, target.UserID)
		if err != nil {
			return fmt.Errorf("error listing uploads: %w", err)
		}

		if err := s.repomanager.Users(tx).Delete(ctx, target.UserID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		if err := s.repomanager.Tags(tx).DeleteLinksByOwner(ctx, target.UserID); err != nil {
			return fmt.Errorf("error deleting tag links: %w", err)
		}
		if err := s.repomanager.Entities(tx).DeleteByOwner(ctx, target.UserID); err != nil {
			return fmt.Errorf("error deleting entities: %w", err)
		}
		if err := s.repomanager.Uploads(tx).DeleteByOwner(ctx, target.UserID); err != nil {
			return fmt.Errorf("error deleting uploads: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	var failed int
	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			failed++
			s.log.Warn(ctx, "upload file removal failed", "key", key, "error", err)
		}
	}

	s.log.Info(ctx, "account destroyed", "userid", target.UserID, "uploads", len(keys))

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d upload files not removed", common.ErrPartialFailure, failed, len(keys))
	}

	return nil
}

// GenerateAPIKey mints a fresh API key for the user, replacing any prior
// one, and returns it. The key is shown once; only its owner row keeps it.
func (s *DirectoryService) GenerateAPIKey(ctx context.Context, userid int64) (string, error) {
	key, err := common.MakeRandHexString(apiKeyBytes)
	if err != nil {
		return "", fmt.Errorf("error generating key: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.SetAPIKey(ctx, userid, key); err != nil {
		return "", fmt.Errorf("error storing key: %w", err)
	}

	return key, nil
}

// UpdatePreferences coerces raw display settings and stores them. The
// stored value is always valid; unknown inputs fall back to defaults.
func (s *DirectoryService) UpdatePreferences(ctx context.Context, userid int64, raw map[string]string) (models.Preferences, error) {
	prefs := CoercePreferences(raw, s.settings.DefaultLang)

	repo := s.repomanager.Users(s.db)
	if err := repo.UpdatePreferences(ctx, userid, prefs); err != nil {
		return models.Preferences{}, fmt.Errorf("error updating preferences: %w", err)
	}

	return prefs, nil
}

// ReadAllFromTeam lists a team's users. A non-nil validated keeps only
// users with that validation state.
func (s *DirectoryService) ReadAllFromTeam(ctx context.Context, team int64, validated *bool) ([]models.UserRecord, error) {
	repo := s.repomanager.Users(s.db)

	recs, err := repo.SelectByTeam(ctx, team, validated)
	if err != nil {
		return nil, fmt.Errorf("error listing team users: %w", err)
	}

	return recs, nil
}

// ReadAll lists every user in the system, for the sysadmin panel.
func (s *DirectoryService) ReadAll(ctx context.Context) ([]models.UserRecord, error) {
	repo := s.repomanager.Users(s.db)

	recs, err := repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return recs, nil
}

// AllEmails returns the address of every validated, live user.
func (s *DirectoryService) AllEmails(ctx context.Context) ([]string, error) {
	repo := s.repomanager.Users(s.db)

	emails, err := repo.SelectEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing emails: %w", err)
	}

	return emails, nil
}

// TeamAdminEmails returns the notification recipients for a team, shaped
// for notify.AdminEmailsFunc.
func (s *DirectoryService) TeamAdminEmails(ctx context.Context, team int64) ([]string, error) {
	repo := s.repomanager.Users(s.db)

	emails, err := repo.SelectAdminEmails(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("error listing admin emails: %w", err)
	}

	return emails, nil
}
