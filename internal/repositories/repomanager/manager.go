package repomanager

import (
	"context"
	"database/sql"

	"github.com/mverner/teambook/internal/dbx"
	"github.com/mverner/teambook/internal/repositories/entities"
	"github.com/mverner/teambook/internal/repositories/tags"
	"github.com/mverner/teambook/internal/repositories/uploads"
	"github.com/mverner/teambook/internal/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can use the same repository code inside and outside a
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tags(db dbx.DBTX) tags.Repository
	Entities(db dbx.DBTX) entities.Repository
	Uploads(db dbx.DBTX) uploads.Repository
}
