package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/crucial707/fittrack/internal/config"
	"github.com/crucial707/fittrack/internal/models"
	"github.com/crucial707/fittrack/internal/timestamp"
)

const aliceID = "6a4b8f0e-0000-4000-8000-000000000001"

// TestAPI_UserLifecycle walks the whole flow against the full router with a
// sqlmock-backed DB: register alice, fail to register her twice, record an
// exercise, then query her log with a from bound that excludes it.
func TestAPI_UserLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	exerciseDate := models.NewDate(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	// 1) POST /api/users
	mock.ExpectQuery(`INSERT INTO users \(id, username\)`).
		WithArgs(sqlmock.AnyArg(), "alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(aliceID, "alice"))

	// 2) POST /api/users again -> unique violation
	mock.ExpectQuery(`INSERT INTO users \(id, username\)`).
		WithArgs(sqlmock.AnyArg(), "alice").
		WillReturnError(&pq.Error{Code: "23505"})

	// 3) POST /api/users/{id}/exercises -> transactional dual write
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(aliceID).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO exercises`).
		WithArgs(sqlmock.AnyArg(), aliceID, "run", 30, exerciseDate).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "description", "duration", "date"}).
			AddRow("e1", aliceID, "run", 30, exerciseDate.Time))
	mock.ExpectExec(`UPDATE users`).
		WithArgs("e1", aliceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 4) GET /api/users/{id}/logs?from=2023-01-02 -> user lookup + filtered list
	mock.ExpectQuery(`SELECT id, username, log, log_count`).
		WithArgs(aliceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "log", "log_count"}).
			AddRow(aliceID, "alice", "{e1}", 1))
	mock.ExpectQuery(`WHERE user_id = \$1 AND date >= \$2 ORDER BY created_at, id`).
		WithArgs(aliceID, models.NewDate(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "description", "duration", "date"}))

	srv := newTestServer(t, db)
	defer srv.Close()

	// 1) Register alice
	body, _ := json.Marshal(map[string]string{"username": "alice"})
	resp, err := http.Post(srv.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || user.Username != "alice" || user.Count != 0 || len(user.Log) != 0 {
		t.Fatalf("create user: status %d, user %+v", resp.StatusCode, user)
	}

	// 2) Register alice again
	resp, err = http.Post(srv.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("duplicate user: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate user: status %d, want 409", resp.StatusCode)
	}

	// 3) Add exercise
	exBody, _ := json.Marshal(map[string]any{"description": "run", "duration": 30, "date": "2023-01-01"})
	resp, err = http.Post(srv.URL+"/api/users/"+aliceID+"/exercises", "application/json", bytes.NewReader(exBody))
	if err != nil {
		t.Fatalf("add exercise: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add exercise: status %d, want 200", resp.StatusCode)
	}

	// 4) Query logs from a later date: nothing matches
	resp, err = http.Get(srv.URL + "/api/users/" + aliceID + "/logs?from=2023-01-02")
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	var result models.LogResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode logs: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || result.Count != 0 || len(result.Log) != 0 {
		t.Fatalf("get logs: status %d, result %+v", resp.StatusCode, result)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_AlternateRoutes checks the legacy aliases.
func TestAPI_AlternateRoutes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(id, username\)`).
		WithArgs(sqlmock.AnyArg(), "bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
			AddRow("6a4b8f0e-0000-4000-8000-000000000002", "bob"))

	srv := newTestServer(t, db)
	defer srv.Close()

	body, _ := json.Marshal(map[string]string{"username": "bob"})
	resp, err := http.Post(srv.URL+"/api/exercise/new-user", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("new-user alias: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("new-user alias: status %d, want 200", resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_Health is a quick smoke test for the health endpoint.
func TestAPI_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := newTestServer(t, db)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
}

// TestAPI_Ready checks that /ready pings the DB and returns 200 when DB is reachable.
func TestAPI_Ready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()

	srv := newTestServer(t, db)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}

func newTestServer(t *testing.T, db *sql.DB) *httptest.Server {
	t.Helper()
	cfg := config.Config{RateLimitPerMinute: 1000}
	resolver := timestamp.Fixed{Date: models.NewDate(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC))}
	return httptest.NewServer(newRouter(db, cfg, resolver))
}
