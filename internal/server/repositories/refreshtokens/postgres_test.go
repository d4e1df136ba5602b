package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/authgate/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+refresh_tokens\s*\(account_id,\s*token\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(account_id\)\s*DO\s+UPDATE\s+SET\s+token\s*=\s*EXCLUDED\.token,\s*updated_at\s*=\s*now\(\)\s*$`

	mock.ExpectExec(q).
		WithArgs("a-1", "tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), "a-1", "tok-1"); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+refresh_tokens`).
		WillReturnError(errors.New("db down"))

	if err := repo.Upsert(context.Background(), "a-1", "tok-1"); err == nil {
		t.Fatal("expected wrapped db error")
	}
}

func TestFindByToken_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+account_id,\s*token,\s*updated_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"account_id", "token", "updated_at"}).
		AddRow("a-1", "tok-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("tok-1").
		WillReturnRows(rows)

	rec, err := repo.FindByToken(context.Background(), "tok-1", false)
	if err != nil {
		t.Fatalf("FindByToken error: %v", err)
	}
	if rec.AccountID != "a-1" || rec.Token != "tok-1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFindByToken_LockAppendsForUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+account_id,\s*token,\s*updated_at\s+FROM\s+refresh_tokens\s+WHERE\s+token\s*=\s*\$1\s+FOR\s+UPDATE$`

	rows := sqlmock.NewRows([]string{"account_id", "token", "updated_at"}).
		AddRow("a-1", "tok-1", time.Now())
	mock.ExpectQuery(q).
		WithArgs("tok-1").
		WillReturnRows(rows)

	if _, err := repo.FindByToken(context.Background(), "tok-1", true); err != nil {
		t.Fatalf("FindByToken error: %v", err)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+account_id`).
		WithArgs("tok-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByToken(context.Background(), "tok-404", false)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestRotate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+refresh_tokens\s+SET\s+token\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+account_id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("a-1", "tok-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Rotate(context.Background(), "a-1", "tok-2"); err != nil {
		t.Fatalf("Rotate error: %v", err)
	}
}

func TestRotate_NoLiveRecord(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+refresh_tokens`).
		WithArgs("a-1", "tok-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Rotate(context.Background(), "a-1", "tok-2")
	if !errors.Is(err, common.ErrNotSignedIn) {
		t.Fatalf("expected common.ErrNotSignedIn, got %v", err)
	}
}
