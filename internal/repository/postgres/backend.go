// Package postgres provides a Postgres-backed key-value store using a JSONB payload
// per key.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"go.uber.org/zap"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/herdbook?sslmode=disable"
)

// Backend persists payloads into a Postgres table.
type Backend struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBackend opens a Postgres-backed store using dsn (falls back to defaultDSN)
// and ensures the kv table exists.
func NewBackend(ctx context.Context, dsn string, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(defaultDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure kv table: %w", err)
	}
	return &Backend{db: db, logger: logger}, nil
}

// Get returns the payload stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx, `SELECT payload::text FROM kv WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, true, nil
}

// Put upserts the payload for key. Payloads that are not valid JSON are rejected by
// the JSONB column.
func (b *Backend) Put(ctx context.Context, key string, payload []byte) error {
	if _, err := b.db.ExecContext(ctx,
		`INSERT INTO kv(key, payload) VALUES($1, $2::jsonb) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, string(payload)); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	b.logger.Debug("payload stored", zap.String("key", key), zap.Int("bytes", len(payload)))
	return nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (b *Backend) DB() *sql.DB { return b.db }

// Close releases the connection pool.
func (b *Backend) Close() error { return b.db.Close() }
