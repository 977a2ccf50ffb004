// Package sqlite provides a SQLite-backed persistent store. It reuses the
// in-memory implementation for transactions and snapshots the root document to
// a single table row after every successful commit.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"schedcore/internal/infra/persistence/memory"
	"schedcore/internal/migrate"
	"schedcore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ domain.PersistentStore = (*Store)(nil)

const stateBucket = "store"

// Store persists the scheduling document to SQLite as one JSON blob.
type Store struct {
	*memory.Store
	db     *sql.DB
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewStore opens (or creates) the database at path, normalizes whatever
// snapshot is found through the migration loader, and hydrates the in-memory
// store. A freshly normalized legacy snapshot is written back immediately so
// the upgrade happens once.
func NewStore(path string, engine *domain.RulesEngine, logger *zap.Logger) (*Store, error) {
	if path == "" {
		path = "schedcore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path, logger: logger}
	if err := s.load(logger); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(logger *zap.Logger) error {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE bucket = ?`, stateBucket).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("select state: %w", err)
	}
	s.ImportState(migrate.Normalize(payload, logger))
	return s.persist()
}

func (s *Store) persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(s.ExportState())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		stateBucket, data,
	); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

// RunInTransaction applies fn within a transaction, then snapshots the full
// document to SQLite if successful.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		return res, pErr
	}
	return res, nil
}

// ImportState replaces the document and snapshots it immediately so imports
// survive a restart without waiting for the next transaction.
func (s *Store) ImportState(st *domain.Store) {
	s.Store.ImportState(st)
	if err := s.persist(); err != nil {
		s.logger.Warn("persist imported state", zap.Error(err))
	}
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
