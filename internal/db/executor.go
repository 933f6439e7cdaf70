package db

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/miky2184/chargeability-manager-api/internal/metrics"
)

// Mode selects what Execute does with the statement result.
type Mode int

const (
	// ModeRead fetches every result row and returns it to the caller.
	ModeRead Mode = iota
	// ModeWrite commits the statement and returns no rows.
	ModeWrite
)

func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}
	return "read"
}

var (
	// ErrQuery is the only error the Executor returns for database failures.
	// The underlying cause is logged server-side and never reaches the caller.
	ErrQuery = errors.New("query failed")

	// ErrSchemaNotAllowed is returned when the schema identifier is not on the
	// fixed allow-list. The identifier is never interpolated into SQL before
	// this check passes.
	ErrSchemaNotAllowed = errors.New("schema not allowed")
)

// Rows is an ordered sequence of column name -> value mappings.
type Rows []map[string]any

// Executor runs one schema-scoped statement per call over a fresh connection.
type Executor struct {
	connect ConnectFunc
}

func NewExecutor(connect ConnectFunc) *Executor {
	return &Executor{connect: connect}
}

// Execute opens a connection, sets the search path to schema, runs query with
// params bound positionally, and either returns all rows (ModeRead) or commits
// (ModeWrite). The connection is released on every exit path. Any database
// failure is logged and collapsed into ErrQuery.
func (e *Executor) Execute(ctx context.Context, schema, query string, params []any, mode Mode) (Rows, error) {
	if !SchemaAllowed(schema) {
		slog.Error("executor: schema not allowed", "schema", schema)
		return nil, ErrSchemaNotAllowed
	}

	start := time.Now()
	result, err := e.run(ctx, schema, query, params, mode)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		slog.Error("executor: query failed",
			"schema", schema,
			"mode", mode.String(),
			"error", err)
		err = ErrQuery
	}
	metrics.RecordQuery(schema, mode.String(), outcome, time.Since(start).Seconds())

	return result, err
}

func (e *Executor) run(ctx context.Context, schema, query string, params []any, mode Mode) (Rows, error) {
	conn, err := e.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Schema passed the allow-list check; quote it anyway.
	if _, err := tx.ExecContext(ctx, "SET search_path TO "+pq.QuoteIdentifier(schema)); err != nil {
		return nil, err
	}

	if mode == ModeWrite {
		if _, err := tx.ExecContext(ctx, query, params...); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	}

	rows, err := tx.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	dbTypes := make(map[string]string, len(colTypes))
	for _, ct := range colTypes {
		dbTypes[ct.Name()] = ct.DatabaseTypeName()
	}

	result := Rows{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for col, v := range row {
			row[col] = normalizeValue(v, dbTypes[col])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return result, nil
}

// normalizeValue coerces driver values into JSON-friendly types using the
// column's database type: NUMERIC arrives as []byte and becomes float64, DATE
// columns render as "YYYY-MM-DD", timestamps as RFC 3339. Text columns stay
// text even when the value looks numeric, so keys like eid keep their leading
// zeros.
func normalizeValue(v any, dbType string) any {
	switch t := v.(type) {
	case []byte:
		s := string(t)
		switch dbType {
		case "NUMERIC", "DECIMAL":
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
		return s
	case time.Time:
		if dbType == "DATE" {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
