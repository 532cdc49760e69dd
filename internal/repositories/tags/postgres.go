package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mverner/teambook/internal/common"
	"github.com/mverner/teambook/internal/dbx"
	"github.com/mverner/teambook/internal/models"
)

// PostgresRepository implements tag storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByText(ctx context.Context, team int64, text string) (int64, error) {
	query := `SELECT id FROM tags WHERE team = $1 AND tag = $2`

	var id int64
	err := r.db.QueryRowContext(ctx, query, team, text).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, team int64, text string) (int64, error) {
	query := `INSERT INTO tags (team, tag) VALUES ($1, $2) RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, team, text).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) InsertLink(ctx context.Context, item models.ItemRef, tagID int64) error {
	query := `INSERT INTO tags2entity (item_id, item_type, tag_id) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Type, tagID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectByTeam(ctx context.Context, team int64, term string) ([]models.Tag, error) {
	// The term matches anywhere in the tag text, not only as a prefix.
	query := `SELECT id, team, tag FROM tags
		WHERE team = $1 AND tag ILIKE '%' || $2 || '%'
		ORDER BY tag ASC`

	rows, err := r.db.QueryContext(ctx, query, team, term)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Team, &t.Text); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SelectLinkTagIDs(ctx context.Context, item models.ItemRef) ([]int64, error) {
	query := `SELECT tag_id FROM tags2entity WHERE item_id = $1 AND item_type = $2`

	rows, err := r.db.QueryContext(ctx, query, item.ID, item.Type)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, team int64, oldText, newText string) (bool, error) {
	query := `UPDATE tags SET tag = $1 WHERE tag = $2 AND team = $3`

	res, err := r.db.ExecContext(ctx, query, newText, oldText, team)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) DeleteLink(ctx context.Context, tagID int64, item models.ItemRef) (bool, error) {
	query := `DELETE FROM tags2entity WHERE tag_id = $1 AND item_id = $2 AND item_type = $3`

	res, err := r.db.ExecContext(ctx, query, tagID, item.ID, item.Type)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) CountLinks(ctx context.Context, tagID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM tags2entity WHERE tag_id = $1`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, tagID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteLinksForTag(ctx context.Context, tagID int64) error {
	query := `DELETE FROM tags2entity WHERE tag_id = $1`

	if _, err := r.db.ExecContext(ctx, query, tagID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteTag(ctx context.Context, tagID int64) (bool, error) {
	query := `DELETE FROM tags WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, tagID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) DeleteLinksForItem(ctx context.Context, item models.ItemRef) error {
	query := `DELETE FROM tags2entity WHERE item_id = $1 AND item_type = $2`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.Type); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteLinksByOwner(ctx context.Context, userID int64) error {
	query := `DELETE FROM tags2entity USING entities
		WHERE tags2entity.item_id = entities.id
		  AND tags2entity.item_type = entities.type
		  AND entities.userid = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
