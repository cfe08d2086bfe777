package departments

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fortress-vault/fortress/internal/common"
	"github.com/fortress-vault/fortress/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_OrderedWithMemberCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+d\.id,\s*d\.name,\s*COUNT\(u\.id\).*FROM\s+departments\s+d.*LEFT\s+JOIN\s+users\s+u.*ORDER\s+BY\s+d\.name\s*$`

	rows := sqlmock.NewRows([]string{"id", "name", "count"}).
		AddRow("d-1", "Engineering", 2).
		AddRow("d-2", "Marketing", 0)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 departments, got %d", len(got))
	}
	if got[0].Name != "Engineering" || got[0].MemberCount != 2 {
		t.Fatalf("unexpected first department: %+v", got[0])
	}
	if got[1].MemberCount != 0 {
		t.Fatalf("want memberCount 0, got %d", got[1].MemberCount)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+departments\s*\(id,\s*name\)\s*VALUES\s*\(\$1,\s*\$2\)\s*$`

	mock.ExpectExec(q).
		WithArgs("d-1", "Engineering").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Department{ID: "d-1", Name: "Engineering"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+departments`).
		WithArgs("d-1", "Engineering").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Department{ID: "d-1", Name: "Engineering"})
	if !errors.Is(err, common.ErrorDuplicateName) {
		t.Fatalf("want common.ErrorDuplicateName, got %v", err)
	}
}

func TestRename_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+departments\s+SET\s+name`).
		WithArgs("ghost", "Ops").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Rename(context.Background(), "ghost", "Ops")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_BlockedByAssignedUsers(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+users\s+WHERE\s+department_id`).
		WithArgs("d-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "d-1")
	if !errors.Is(err, common.ErrorReferentialIntegrity) {
		t.Fatalf("want common.ErrorReferentialIntegrity, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_CountsInactiveUsersToo(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// the guard query has no status filter: one inactive member still blocks
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+users\s+WHERE\s+department_id\s*=\s*\$1`).
		WithArgs("d-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "d-1")
	if !errors.Is(err, common.ErrorReferentialIntegrity) {
		t.Fatalf("want common.ErrorReferentialIntegrity, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+users`).
		WithArgs("d-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE\s+FROM\s+departments\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("d-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), "d-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+users`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE\s+FROM\s+departments`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+users`).
		WithArgs("d-1").
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "d-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
