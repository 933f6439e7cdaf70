package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/miky2184/chargeability-manager-api/internal/auth"
	"github.com/miky2184/chargeability-manager-api/internal/config"
	"github.com/miky2184/chargeability-manager-api/internal/db"
	"github.com/miky2184/chargeability-manager-api/internal/repo"
)

func newTestRouter(t *testing.T) (http.Handler, sqlmock.Sqlmock, sqlmock.Sqlmock, *auth.TokenManager) {
	t.Helper()

	userDB, userMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { userDB.Close() })

	execDB, execMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	execConn := sqlx.NewDb(execDB, "sqlmock")

	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	users := repo.NewUserRepo(sqlx.NewDb(userDB, "sqlmock"))
	exec := db.NewExecutor(func(ctx context.Context) (*sqlx.DB, error) { return execConn, nil })

	return New(config.Config{}, exec, users, tokens), userMock, execMock, tokens
}

func TestRouter_Health(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
}

func TestRouter_ProtectedRoutesChallenge(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	protected := []struct{ method, path string }{
		{"GET", "/users/me"},
		{"GET", "/forecast"},
		{"GET", "/chargeability"},
		{"GET", "/time-reports"},
		{"GET", "/wbs"},
		{"POST", "/wbs"},
		{"PUT", "/wbs/W1"},
		{"DELETE", "/wbs/W1"},
		{"GET", "/resources"},
		{"POST", "/resources"},
		{"PUT", "/resources/E1"},
		{"DELETE", "/resources/E1"},
	}

	for _, tc := range protected {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", tc.method, tc.path, rr.Code)
		}
		if rr.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Errorf("%s %s: missing bearer challenge", tc.method, tc.path)
		}
	}
}

func TestRouter_AuthenticatedWbsList(t *testing.T) {
	router, userMock, execMock, tokens := newTestRouter(t)

	userMock.ExpectQuery(`SELECT id, username, email, hashed_password, full_name, disabled`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "email", "hashed_password", "full_name", "disabled"}).
			AddRow(1, "alice", "alice@example.com", "hash", nil, false))

	execMock.ExpectBegin()
	execMock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	execMock.ExpectQuery(`SELECT wbs, wbs_type, project_name`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"wbs", "wbs_type", "project_name", "budget_mm", "budget_tot", "salvata"}).
			AddRow("W1", "T", "P", []byte("10"), []byte("100"), true))
	execMock.ExpectCommit()

	token, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/wbs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	var rows []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&rows); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(rows) != 1 || rows[0]["wbs"] != "W1" || rows[0]["salvata"] != true {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestRouter_UsersMe(t *testing.T) {
	router, userMock, _, tokens := newTestRouter(t)

	userMock.ExpectQuery(`SELECT id, username, email, hashed_password, full_name, disabled`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "username", "email", "hashed_password", "full_name", "disabled"}).
			AddRow(1, "alice", "alice@example.com", "very-secret-hash", nil, false))

	token, err := tokens.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["username"] != "alice" {
		t.Errorf("username: got %v", out["username"])
	}
	if _, leaked := out["hashed_password"]; leaked {
		t.Error("password hash must not appear in the response")
	}
}
