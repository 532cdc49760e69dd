package uploads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mverner/teambook/internal/dbx"
	"github.com/mverner/teambook/internal/models"
)

// NewStorageKey returns a fresh blob storage key, date-prefixed so the
// store stays browsable.
func NewStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// PostgresRepository implements upload metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, up *models.Upload) (int64, error) {
	query := `INSERT INTO uploads (userid, item_id, type, real_name, long_name)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, up.UserID, up.ItemID, up.Type, up.RealName, up.LongName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) SelectKeysByOwner(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT long_name FROM uploads WHERE userid = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		result = append(result, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, userID int64) error {
	query := `DELETE FROM uploads WHERE userid = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
