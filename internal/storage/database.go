package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ErrDatabaseClosed is returned by Execute once the database has been closed
var ErrDatabaseClosed = errors.New("database is closed")

// Querier is the subset of *sql.DB and *sql.Tx available to a unit of work
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// LockableDatabase guards a SQLite database with a single-writer/multiple-reader lock.
// Shared executions may overlap each other; an exclusive execution runs alone.
type LockableDatabase struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	logger *logrus.Logger
}

// OpenLockableDatabase opens (creating if needed) the database at dbPath and applies the schema
func OpenLockableDatabase(dbPath string, logger *logrus.Logger) (*LockableDatabase, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.WithField("path", dbPath).Debug("Database opened")
	return &LockableDatabase{
		db:     db,
		path:   dbPath,
		logger: logger,
	}, nil
}

// Execute runs fn while holding the lock. With exclusive set, fn runs inside a
// transaction that is committed when fn succeeds and rolled back otherwise.
func (d *LockableDatabase) Execute(exclusive bool, fn func(q Querier) error) error {
	if exclusive {
		d.mu.Lock()
		defer d.mu.Unlock()
	} else {
		d.mu.RLock()
		defer d.mu.RUnlock()
	}

	if d.db == nil {
		return ErrDatabaseClosed
	}

	if !exclusive {
		return fn(d.db)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				d.logger.WithError(rbErr).WithField("path", d.path).Warn("Failed to roll back transaction")
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// Path returns the database file path
func (d *LockableDatabase) Path() string {
	return d.path
}

// Close waits for running executions and closes the database
func (d *LockableDatabase) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}
