// Package postgres provides a Postgres-backed persistent store mirroring the
// in-memory semantics, with the root document snapshotted to a JSONB row.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"schedcore/internal/infra/persistence/memory"
	"schedcore/internal/migrate"
	"schedcore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/schedcore?sslmode=disable"
	stateBucket   = "store"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists state to Postgres while reusing the in-memory implementation
// for transactions.
type Store struct {
	*memory.Store
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewStore opens a Postgres-backed store using the provided DSN (falls back to
// defaultDSN), ensures the snapshot table exists, and hydrates the in-memory
// store through the migration loader.
func NewStore(dsn string, engine *domain.RulesEngine, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{Store: memory.NewStore(engine), db: db, logger: logger}
	if err := s.load(ctx, logger); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context, logger *zap.Logger) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, stateBucket).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("select state: %w", err)
	}
	s.ImportState(migrate.Normalize(payload, logger))
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(s.ExportState())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`,
		stateBucket, data,
	); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

// RunInTransaction applies fn within a transaction, then snapshots the full
// document to Postgres if successful.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(ctx); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// ImportState replaces the document and snapshots it immediately so imports
// survive a restart without waiting for the next transaction.
func (s *Store) ImportState(st *domain.Store) {
	s.Store.ImportState(st)
	if err := s.persist(context.Background()); err != nil {
		s.logger.Warn("persist imported state", zap.Error(err))
	}
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
