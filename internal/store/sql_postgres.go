package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/config"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/migrations"
)

// postgresKV is the PostgreSQL-backed implementation of [KVStore]. Every
// record lives in the kv_records table as an opaque bytea value.
type postgresKV struct {
	db                 *sql.DB
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewPostgresKV opens the PostgreSQL connection described by cfg, verifies
// it with a ping, runs the embedded goose migrations and returns the store.
func NewPostgresKV(ctx context.Context, cfg config.DB, log *logger.Logger) (KVStore, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewPostgresKV").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewPostgresKV").Msg("error connecting database (ping)")
		return nil, err
	}

	if err := migrations.Migrate(conn); err != nil {
		log.Err(err).Str("func", "NewPostgresKV").Msg("error running migrations")
		return nil, err
	}

	log.Info().Str("func", "NewPostgresKV").Msg("connected to database successfully")

	return &postgresKV{
		db:                 conn,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             log,
	}, nil
}

// Get implements [KVStore].
func (p *postgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := p.builder.
		Select("v").
		From("kv_records").
		Where(sq.Eq{"k": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	if err := p.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

// Put implements [KVStore] with an upsert, so callers never distinguish
// insert from update.
func (p *postgresKV) Put(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := p.builder.
		Insert("kv_records").
		Columns("k", "v").
		Values(key, value).
		Suffix("ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		if p.errorClassificator.Classify(err) == Retryable {
			log.Err(err).Str("key", key).Msg("transient error writing kv record")
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Delete implements [KVStore]. Removing an absent key succeeds.
func (p *postgresKV) Delete(ctx context.Context, key string) error {
	query, args, err := p.builder.
		Delete("kv_records").
		Where(sq.Eq{"k": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (p *postgresKV) Close() error {
	return p.db.Close()
}
