package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(id, username\)`).
		WithArgs(sqlmock.AnyArg(), "alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow("6a4b8f0e-0000-4000-8000-000000000001", "alice"))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Username != "alice" || user.ID == "" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.Count != 0 || user.Log == nil || len(user.Log) != 0 {
		t.Errorf("new user must have empty log and count 0, got: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(id, username\)`).
		WithArgs(sqlmock.AnyArg(), "alice").
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "alice")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	id := "6a4b8f0e-0000-4000-8000-000000000002"
	mock.ExpectQuery(`SELECT id, username, log, log_count`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "log", "log_count"}).
			AddRow(id, "bob", "{e1,e2}", 2))

	repo := NewUserRepo(db)
	user, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Username != "bob" || user.Count != 2 {
		t.Errorf("unexpected user: %+v", user)
	}
	if len(user.Log) != user.Count {
		t.Errorf("count %d must equal len(log) %d", user.Count, len(user.Log))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, log, log_count`).
		WithArgs("6a4b8f0e-0000-4000-8000-000000000099").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByID(context.Background(), "6a4b8f0e-0000-4000-8000-000000000099")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_MalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, log, log_count`).
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02"})

	repo := NewUserRepo(db)
	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for malformed id, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, log, log_count`).
		WithArgs("charlie").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "log", "log_count"}).
			AddRow("6a4b8f0e-0000-4000-8000-000000000003", "charlie", "{}", 0))

	repo := NewUserRepo(db)
	user, err := repo.GetByUsername(context.Background(), "charlie")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if user.Username != "charlie" || user.Count != 0 {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, log, log_count FROM users ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "log", "log_count"}).
			AddRow("6a4b8f0e-0000-4000-8000-000000000001", "alice", "{e1}", 1).
			AddRow("6a4b8f0e-0000-4000-8000-000000000002", "bob", "{}", 0))

	repo := NewUserRepo(db)
	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Errorf("unexpected list: %+v", users)
	}
	if users[1].Log == nil {
		t.Error("log must be an empty slice, not nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
