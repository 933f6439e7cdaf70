package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func mockConnect(t *testing.T) (ConnectFunc, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	conn := sqlx.NewDb(mockDB, "sqlmock")
	return func(ctx context.Context) (*sqlx.DB, error) { return conn, nil }, mock
}

func TestExecutor_Read(t *testing.T) {
	connect, mock := mockConnect(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT eid, work_hh`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("eid").OfType("TEXT", ""),
			sqlmock.NewColumn("work_hh").OfType("NUMERIC", []byte("0"))).
			AddRow("E001", []byte("160.5")).
			AddRow("E002", []byte("120")))
	mock.ExpectCommit()
	mock.ExpectClose()

	exec := NewExecutor(connect)
	rows, err := exec.Execute(context.Background(), SchemaChargeability,
		`SELECT eid, work_hh FROM chg_all`, nil, ModeRead)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0]["eid"] != "E001" {
		t.Errorf("eid: got %v", rows[0]["eid"])
	}
	if rows[0]["work_hh"] != 160.5 {
		t.Errorf("work_hh: got %v (%T), want 160.5", rows[0]["work_hh"], rows[0]["work_hh"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExecutor_ReadKeepsTextColumnsAsText(t *testing.T) {
	connect, mock := mockConnect(t)

	// eid is TEXT: a value like "00123" must round-trip unchanged, not come
	// back as the number 123.
	mock.ExpectBegin()
	mock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT eid, chg`).
		WillReturnRows(sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("eid").OfType("TEXT", ""),
			sqlmock.NewColumn("chg").OfType("NUMERIC", []byte("0"))).
			AddRow([]byte("00123"), []byte("0.85")))
	mock.ExpectCommit()

	exec := NewExecutor(connect)
	rows, err := exec.Execute(context.Background(), SchemaChargeability,
		`SELECT eid, chg FROM chg_all`, nil, ModeRead)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := rows[0]["eid"]; got != "00123" {
		t.Errorf("eid: got %v (%T), want the string \"00123\"", got, got)
	}
	if got := rows[0]["chg"]; got != 0.85 {
		t.Errorf("chg: got %v (%T), want 0.85", got, got)
	}
}

func TestExecutor_ReadEmpty(t *testing.T) {
	connect, mock := mockConnect(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM check_forecast`).
		WillReturnRows(sqlmock.NewRows([]string{"eid"}))
	mock.ExpectCommit()

	exec := NewExecutor(connect)
	rows, err := exec.Execute(context.Background(), SchemaChargeability,
		`SELECT * FROM check_forecast`, nil, ModeRead)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if rows == nil {
		t.Error("expected empty slice, not nil, so the endpoint serializes to []")
	}
	if len(rows) != 0 {
		t.Errorf("rows: got %d, want 0", len(rows))
	}
}

func TestExecutor_WriteCommits(t *testing.T) {
	connect, mock := mockConnect(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO wbs`).
		WithArgs("W1", "T", "P", 10.0, 100.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	exec := NewExecutor(connect)
	rows, err := exec.Execute(context.Background(), SchemaChargeability,
		`INSERT INTO wbs (wbs, wbs_type, project_name, budget_mm, budget_tot) VALUES ($1, $2, $3, $4, $5)`,
		[]any{"W1", "T", "P", 10.0, 100.0}, ModeWrite)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if rows != nil {
		t.Errorf("write mode must not return rows, got %v", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExecutor_WriteZeroRowsAffected(t *testing.T) {
	connect, mock := mockConnect(t)

	// Deleting an absent key still commits and succeeds.
	mock.ExpectBegin()
	mock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM resources`).
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	exec := NewExecutor(connect)
	_, err := exec.Execute(context.Background(), SchemaChargeability,
		`DELETE FROM resources WHERE eid = $1`, []any{"nope"}, ModeWrite)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExecutor_FailureIsOpaque(t *testing.T) {
	connect, mock := mockConnect(t)

	mock.ExpectBegin()
	mock.ExpectExec(`SET search_path TO`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO wbs`).
		WillReturnError(errors.New(`pq: relation "wbs" does not exist`))
	mock.ExpectRollback()

	exec := NewExecutor(connect)
	_, err := exec.Execute(context.Background(), SchemaChargeability,
		`INSERT INTO wbs (wbs) VALUES ($1)`, []any{"W1"}, ModeWrite)
	if !errors.Is(err, ErrQuery) {
		t.Fatalf("expected ErrQuery, got %v", err)
	}
	if err.Error() != "query failed" {
		t.Errorf("error must not leak detail, got %q", err.Error())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExecutor_SchemaAllowList(t *testing.T) {
	exec := NewExecutor(func(ctx context.Context) (*sqlx.DB, error) {
		t.Fatal("connect must not be called for a rejected schema")
		return nil, nil
	})

	_, err := exec.Execute(context.Background(), `public; DROP TABLE users`,
		`SELECT 1`, nil, ModeRead)
	if !errors.Is(err, ErrSchemaNotAllowed) {
		t.Fatalf("expected ErrSchemaNotAllowed, got %v", err)
	}
}

func TestNormalizeValue(t *testing.T) {
	if got := normalizeValue([]byte("12.5"), "NUMERIC"); got != 12.5 {
		t.Errorf("numeric bytes: got %v (%T)", got, got)
	}
	if got := normalizeValue([]byte("12.5"), "TEXT"); got != "12.5" {
		t.Errorf("numeric-looking text bytes: got %v (%T)", got, got)
	}
	if got := normalizeValue([]byte("00123"), "VARCHAR"); got != "00123" {
		t.Errorf("zero-padded text bytes: got %v (%T)", got, got)
	}
	if got := normalizeValue([]byte("hello"), "NUMERIC"); got != "hello" {
		t.Errorf("unparseable numeric bytes: got %v", got)
	}
	if got := normalizeValue([]byte("42"), ""); got != "42" {
		t.Errorf("bytes with unknown column type: got %v (%T)", got, got)
	}
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := normalizeValue(date, "DATE"); got != "2024-03-01" {
		t.Errorf("date: got %v", got)
	}
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	if got := normalizeValue(ts, "TIMESTAMP"); got != "2024-03-01T10:30:00Z" {
		t.Errorf("timestamp: got %v", got)
	}
	midnight := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := normalizeValue(midnight, "TIMESTAMP"); got != "2024-03-01T00:00:00Z" {
		t.Errorf("midnight timestamp: got %v", got)
	}
	if got := normalizeValue(int64(7), "INT8"); got != int64(7) {
		t.Errorf("int64: got %v", got)
	}
	if got := normalizeValue(nil, "TEXT"); got != nil {
		t.Errorf("nil: got %v", got)
	}
}
