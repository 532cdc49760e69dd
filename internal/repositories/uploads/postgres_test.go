package uploads

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mverner/teambook/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestNewStorageKey(t *testing.T) {
	key := NewStorageKey()
	if !strings.HasPrefix(key, "users/") {
		t.Fatalf("unexpected key: %q", key)
	}
	if len(strings.Split(key, "/")) != 5 {
		t.Fatalf("want users/Y/M/D/uuid, got %q", key)
	}
	if NewStorageKey() == key {
		t.Fatal("keys must be unique")
	}
}

func TestInsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	key := NewStorageKey()
	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(3))
	mock.ExpectQuery(`^INSERT INTO uploads`).
		WithArgs(int64(5), int64(42), "experiments", "results.csv", key).
		WillReturnRows(rows)

	id, err := repo.Insert(context.Background(), &models.Upload{
		UserID:   5,
		ItemID:   42,
		Type:     "experiments",
		RealName: "results.csv",
		LongName: key,
	})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 3 {
		t.Fatalf("want id 3, got %d", id)
	}
}

func TestSelectKeysByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"long_name"}).
		AddRow("users/2024/1/2/aaa").
		AddRow("users/2024/1/3/bbb")
	mock.ExpectQuery(`^SELECT long_name FROM uploads WHERE userid = \$1$`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	keys, err := repo.SelectKeysByOwner(context.Background(), 5)
	if err != nil {
		t.Fatalf("SelectKeysByOwner error: %v", err)
	}
	if len(keys) != 2 || keys[1] != "users/2024/1/3/bbb" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestDeleteByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM uploads WHERE userid = \$1$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.DeleteByOwner(context.Background(), 5); err != nil {
		t.Fatalf("DeleteByOwner error: %v", err)
	}
}
