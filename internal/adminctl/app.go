// Package adminctl implements the administrative command-line tool: account
// creation, approval, archival and the team tag vocabulary.
package adminctl

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mverner/teambook/internal/blobstore"
	"github.com/mverner/teambook/internal/config"
	"github.com/mverner/teambook/internal/logging"
	"github.com/mverner/teambook/internal/models"
	"github.com/mverner/teambook/internal/notify"
	"github.com/mverner/teambook/internal/repositories/repomanager"
	"github.com/mverner/teambook/internal/services"
)

// Directory is the slice of the account directory the tool drives.
type Directory interface {
	Create(ctx context.Context, p services.CreateParams) (int64, error)
	Validate(ctx context.Context, userid int64) (string, error)
	Archive(ctx context.Context, userid int64) error
	GenerateAPIKey(ctx context.Context, userid int64) (string, error)
	UpdatePassword(ctx context.Context, userid int64, password string) error
	ReadAllFromTeam(ctx context.Context, team int64, validated *bool) ([]models.UserRecord, error)
	ReadAll(ctx context.Context) ([]models.UserRecord, error)
}

// Tags is the slice of the tag store the tool drives.
type Tags interface {
	List(ctx context.Context, team int64, term string) ([]string, error)
	Rename(ctx context.Context, team int64, oldText, newText string) (bool, error)
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	directory Directory
	tags      Tags
	db        *sql.DB
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	var blobs blobstore.Store
	switch c.BlobBackend {
	case "s3":
		blobs = blobstore.NewS3Store(blobstore.S3Options{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		blobs = blobstore.NewLocalStore(c.UploadsDir)
	}

	var notifier notify.Notifier = notify.NoopNotifier{}
	if c.SMTPHost != "" {
		adminEmails := func(ctx context.Context, team int64) ([]string, error) {
			return rm.Users(db).SelectAdminEmails(ctx, team)
		}
		notifier = notify.NewSMTPNotifier(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPassword, c.SMTPFrom, adminEmails, logger)
	}

	directory := services.NewDirectoryService(db, rm, c.Settings(), notifier, blobs, logger)
	tags := services.NewTagService(db, rm, logger)

	return &App{
		config:    c,
		logger:    logger,
		directory: directory,
		tags:      tags,
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
