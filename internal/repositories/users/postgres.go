package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mverner/teambook/internal/common"
	"github.com/mverner/teambook/internal/dbx"
	"github.com/mverner/teambook/internal/models"
)

// PostgresRepository implements user storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const recordColumns = `users.userid, users.email, users.salt, users.password,
	users.firstname, users.lastname, users.team, users.usergroup,
	users.validated, users.archived, COALESCE(users.api_key, ''),
	COALESCE(users.token, ''), users.lang, users.register_date,
	users.firstname || ' ' || users.lastname,
	groups.can_lock, groups.is_admin, groups.is_sysadmin`

func scanRecord(row interface{ Scan(...any) error }) (models.UserRecord, error) {
	var rec models.UserRecord
	err := row.Scan(
		&rec.UserID, &rec.Email, &rec.Salt, &rec.PasswordHash,
		&rec.Firstname, &rec.Lastname, &rec.Team, &rec.Group,
		&rec.Validated, &rec.Archived, &rec.APIKey,
		&rec.ResetToken, &rec.Lang, &rec.RegisterDate,
		&rec.Fullname,
		&rec.CanLock, &rec.IsAdmin, &rec.IsSysadmin,
	)
	return rec, err
}

func (r *PostgresRepository) Insert(ctx context.Context, u *models.User) (int64, error) {
	query := `INSERT INTO users
		(email, salt, password, firstname, lastname, team, usergroup, validated, lang, register_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING userid`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Salt, u.PasswordHash, u.Firstname, u.Lastname,
		u.Team, u.Group, u.Validated, u.Lang, u.RegisterDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	u.UserID = id
	return id, nil
}

func (r *PostgresRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByTeam(ctx context.Context, team int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE team = $1`, team).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND NOT archived)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&taken); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return taken, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userid int64) (models.UserRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM users
		LEFT JOIN groups ON groups.group_id = users.usergroup
		WHERE users.userid = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, userid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserRecord{}, common.ErrNotFound
		}
		return models.UserRecord{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM users
		LEFT JOIN groups ON groups.group_id = users.usergroup
		WHERE users.email = $1 AND NOT users.archived`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserRecord{}, common.ErrNotFound
		}
		return models.UserRecord{}, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) GetByAPIKey(ctx context.Context, apiKey string) (int64, error) {
	query := `SELECT userid FROM users WHERE api_key = $1 AND NOT archived`

	var id int64
	err := r.db.QueryRowContext(ctx, query, apiKey).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) selectRecords(ctx context.Context, query string, args ...any) ([]models.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.UserRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SelectByTeam(ctx context.Context, team int64, validated *bool) ([]models.UserRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM users
		LEFT JOIN groups ON groups.group_id = users.usergroup
		WHERE users.team = $1 AND ($2::boolean IS NULL OR users.validated = $2)
		ORDER BY users.usergroup ASC, users.lastname ASC`

	var v sql.NullBool
	if validated != nil {
		v = sql.NullBool{Bool: *validated, Valid: true}
	}
	return r.selectRecords(ctx, query, team, v)
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]models.UserRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM users
		LEFT JOIN groups ON groups.group_id = users.usergroup
		ORDER BY users.team ASC, users.usergroup ASC, users.lastname ASC`

	return r.selectRecords(ctx, query)
}

func (r *PostgresRepository) SelectEmails(ctx context.Context) ([]string, error) {
	query := `SELECT email FROM users WHERE validated AND NOT archived`

	return r.selectStrings(ctx, query)
}

func (r *PostgresRepository) SelectAdminEmails(ctx context.Context, team int64) ([]string, error) {
	query := `SELECT email FROM users
		WHERE team = $1 AND usergroup IN (1, 2) AND validated AND NOT archived`

	return r.selectStrings(ctx, query, team)
}

func (r *PostgresRepository) selectStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userid int64, firstname, lastname, email string, group models.Group, validated bool) error {
	query := `UPDATE users SET
		firstname = $1, lastname = $2, email = $3, usergroup = $4, validated = $5
		WHERE userid = $6`

	if _, err := r.db.ExecContext(ctx, query, firstname, lastname, email, group, validated, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateContact(ctx context.Context, userid int64, firstname, lastname, email string) error {
	query := `UPDATE users SET firstname = $1, lastname = $2, email = $3 WHERE userid = $4`

	if _, err := r.db.ExecContext(ctx, query, firstname, lastname, email, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, userid int64, salt, hash string) error {
	// The reset token dies with the old password so it cannot be replayed.
	query := `UPDATE users SET salt = $1, password = $2, token = NULL WHERE userid = $3`

	if _, err := r.db.ExecContext(ctx, query, salt, hash, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetValidated(ctx context.Context, userid int64) (bool, error) {
	query := `UPDATE users SET validated = true WHERE userid = $1`

	res, err := r.db.ExecContext(ctx, query, userid)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) Archive(ctx context.Context, userid int64) error {
	query := `UPDATE users SET archived = true, token = NULL WHERE userid = $1`

	if _, err := r.db.ExecContext(ctx, query, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userid int64) error {
	query := `DELETE FROM users WHERE userid = $1`

	if _, err := r.db.ExecContext(ctx, query, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetAPIKey(ctx context.Context, userid int64, apiKey string) error {
	query := `UPDATE users SET api_key = $1 WHERE userid = $2`

	if _, err := r.db.ExecContext(ctx, query, apiKey, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePreferences(ctx context.Context, userid int64, p models.Preferences) error {
	query := `UPDATE users SET
		limit_nb = $1, orderby = $2, sort = $3, single_column_layout = $4,
		show_team = $5, close_warning = $6, lang = $7
		WHERE userid = $8`

	var orderBy sql.NullString
	if p.OrderBy != "" {
		orderBy = sql.NullString{String: p.OrderBy, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, query,
		p.Limit, orderBy, p.Sort, p.SingleColumn, p.ShowTeam, p.CloseWarning, p.Lang, userid); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
