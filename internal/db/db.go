package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Known schema identifiers. Every statement run through the Executor is scoped
// to one of these; anything else is rejected before SQL is built.
const (
	SchemaChargeability = "chargeability_manager"
)

var allowedSchemas = map[string]bool{
	SchemaChargeability: true,
}

// SchemaAllowed reports whether name is one of the fixed schema identifiers.
func SchemaAllowed(name string) bool {
	return allowedSchemas[name]
}

// DSN builds a lib/pq connection string.
func DSN(host, port, name, user, password string) string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable application_name=chargeability-manager-api",
		host, port, name, user, password,
	)
}

// Connect opens a pooled handle and verifies it with a ping. Used for the
// user store, which runs a lookup on every authenticated request.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// ConnectFunc dials a database handle for a single Executor call.
// The Executor closes the handle when the call finishes.
type ConnectFunc func(ctx context.Context) (*sqlx.DB, error)

// Dialer returns a ConnectFunc that opens a fresh connection per call,
// mirroring the one-connection-per-request model the API runs with.
func Dialer(dsn string) ConnectFunc {
	return func(ctx context.Context) (*sqlx.DB, error) {
		conn, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		conn.SetMaxOpenConns(1)
		return conn, nil
	}
}
