package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_records (
	k TEXT PRIMARY KEY,
	v BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const (
	sqliteGet    = `SELECT v FROM kv_records WHERE k = ?;`
	sqlitePut    = `INSERT INTO kv_records (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP;`
	sqliteDelete = `DELETE FROM kv_records WHERE k = ?;`
)

// sqliteKV is the embedded single-node implementation of [KVStore], used
// for deployments without a PostgreSQL instance.
type sqliteKV struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteKV opens (or creates) the SQLite database at cfg.Path and
// ensures the kv_records table exists.
func NewSQLiteKV(ctx context.Context, cfg config.SQLite, log *logger.Logger) (KVStore, error) {
	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteKV").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// sqlite allows one writer; keep the pool at a single connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("error creating kv_records table: %w", err)
	}

	log.Info().Str("func", "NewSQLiteKV").Str("path", cfg.Path).Msg("opened sqlite store")

	return &sqliteKV{db: conn, logger: log}, nil
}

// Get implements [KVStore].
func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := s.db.QueryRowContext(ctx, sqliteGet, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

// Put implements [KVStore].
func (s *sqliteKV) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, sqlitePut, key, value); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// Delete implements [KVStore].
func (s *sqliteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, sqliteDelete, key); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// Close releases the database handle.
func (s *sqliteKV) Close() error {
	return s.db.Close()
}
