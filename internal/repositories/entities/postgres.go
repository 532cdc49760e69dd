package entities

import (
	"context"
	"fmt"

	"github.com/mverner/teambook/internal/dbx"
)

// PostgresRepository implements entity lock/cascade statements over a
// dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) LockByOwner(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE entities
		SET locked = true, lockedby = $1, lockedwhen = CURRENT_TIMESTAMP
		WHERE userid = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, userID int64) error {
	query := `DELETE FROM entities WHERE userid = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
