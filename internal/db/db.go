package db

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/weeklog/internal/config"
)

var (
	// ErrNotConnected is returned by data operations while no datastore is open
	ErrNotConnected = errors.New("not connected to a database")
	// ErrNoPath means no database path has been configured
	ErrNoPath = errors.New("no database path configured")
	// ErrDatabaseMissing means the configured database file does not exist
	ErrDatabaseMissing = errors.New("database file does not exist")
	// ErrMigration wraps schema migration failures
	ErrMigration = errors.New("schema migration failed")
	// ErrEntryNotFound is returned for unknown ids under MissingIDReport
	ErrEntryNotFound = errors.New("entry not found")
)

// MissingIDPolicy decides how Update and Delete treat ids that match no row
type MissingIDPolicy int

const (
	// MissingIDReport returns ErrEntryNotFound
	MissingIDReport MissingIDPolicy = iota
	// MissingIDIgnore treats the zero-row match as success
	MissingIDIgnore
)

// Store owns the single connection to the time entry datastore
type Store struct {
	db      *gorm.DB
	path    string
	lastErr error
	log     *slog.Logger
	gormLog logger.LogLevel
	missing MissingIDPolicy
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithGormLogLevel sets gorm's SQL logging level (silent by default)
func WithGormLogLevel(level logger.LogLevel) Option {
	return func(s *Store) { s.gormLog = level }
}

// WithMissingIDPolicy sets how unknown ids are reported
func WithMissingIDPolicy(p MissingIDPolicy) Option {
	return func(s *Store) { s.missing = p }
}

// New creates a store and connects to the configured database, if any.
// A failed connection is not an error here: the store stays disconnected
// and LastError reports why.
func New(cfg config.Config, opts ...Option) *Store {
	s := &Store{
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		gormLog: logger.Silent,
		missing: MissingIDReport,
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.DatabasePath != "" {
		_ = s.Connect(cfg.ResolvedPath())
	} else {
		s.lastErr = ErrNoPath
	}
	return s
}

// Connect opens the database at path and migrates its schema.
// Any previous connection is closed first. On failure the store is left
// disconnected.
func (s *Store) Connect(path string) error {
	if err := s.Close(); err != nil {
		s.log.Warn("closing previous database", "path", s.path, "error", err)
	}
	s.path = path

	err := s.open(path)
	s.lastErr = err
	if err != nil {
		s.log.Warn("database not connected", "path", path, "error", err)
		return err
	}

	s.log.Info("database connected", "path", path)
	return nil
}

func (s *Store) open(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if info, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDatabaseMissing, path)
		}
		return fmt.Errorf("failed to access database: %w", err)
	} else if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(s.gormLog),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	// One writer, one long-lived connection
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := migrate(gdb, s.log); err != nil {
		sqlDB.Close()
		return fmt.Errorf("%w: %v", ErrMigration, err)
	}

	s.db = gdb
	return nil
}

// Connected reports whether a schema-verified database is open
func (s *Store) Connected() bool {
	return s.db != nil
}

// Path returns the database path of the last connection attempt
func (s *Store) Path() string {
	return s.path
}

// LastError returns why the last connection attempt failed, or nil
func (s *Store) LastError() error {
	return s.lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateDatabase creates an empty database file (and its directory) at path.
// An existing file is left alone.
func CreateDatabase(path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return f.Close()
}
