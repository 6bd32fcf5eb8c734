package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/onestep/internal/log"
	"github.com/sandeepkv93/onestep/internal/storage/migrations"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteConfig struct {
	Path   string
	Logger log.Logger
}

func (c *SQLiteConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// SQLiteKV stores each collection as one row of the collections table.
type SQLiteKV struct {
	db     *sql.DB
	logger log.Logger
	closed atomic.Bool
}

// OpenSQLite opens (creating if needed) the database file and migrates it.
func OpenSQLite(ctx context.Context, cfg SQLiteConfig) (*SQLiteKV, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrator.Up(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	kv, err := NewSQLiteKV(db, cfg.Logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	cfg.Logger.Debugf("SQLite store ready at %s", cfg.Path)
	return kv, nil
}

// NewSQLiteKV wraps an already migrated database.
func NewSQLiteKV(db *sql.DB, logger log.Logger) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if logger == nil {
		logger = log.Noop
	}
	return &SQLiteKV{db: db, logger: logger}, nil
}

// Close releases the database. Later calls on the store return ErrClosed.
func (s *SQLiteKV) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteKV) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if s.closed.Load() {
		return nil, false, ErrClosed
	}
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return []byte(payload), true, nil
}

func (s *SQLiteKV) Put(ctx context.Context, name string, payload []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, string(payload), time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, names ...string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if len(names) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	s.logger.Debugf("Deleted %d collections", len(names))
	return nil
}
