package entities

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestLockByOwner_ReturnsLockedCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE entities.*locked = true, lockedby = \$1, lockedwhen = CURRENT_TIMESTAMP.*WHERE userid = \$1$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.LockByOwner(context.Background(), 5)
	if err != nil {
		t.Fatalf("LockByOwner error: %v", err)
	}
	if n != 3 {
		t.Fatalf("unexpected locked count: %d", n)
	}
}

func TestLockByOwner_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE entities`).
		WithArgs(int64(5)).
		WillReturnError(errors.New("db down"))

	if _, err := repo.LockByOwner(context.Background(), 5); err == nil {
		t.Fatalf("expected wrapped db error")
	}
}

func TestDeleteByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM entities WHERE userid = \$1$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteByOwner(context.Background(), 5); err != nil {
		t.Fatalf("DeleteByOwner error: %v", err)
	}
}
