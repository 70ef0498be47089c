package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverModernc is the pure Go driver registered by modernc.org/sqlite.
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"
)

// Options describes how to open a database file.
type Options struct {
	Path     string
	Driver   string
	ReadOnly bool
}

// Storage holds a single connection pinned from the pool. Inspection runs
// against exactly one connection, so every query goes through conn.
type Storage struct {
	db   *sql.DB
	conn *sql.Conn
}

// ValidDriver reports whether name is one of the registered SQLite drivers.
func ValidDriver(name string) bool {
	return name == DriverModernc || name == DriverMattn
}

// Open opens the database file and acquires one connection from it.
// sql.Open is lazy, so the file is only touched when the connection is taken.
func Open(ctx context.Context, opts Options) (*Storage, error) {
	if opts.Driver == "" {
		opts.Driver = DriverModernc
	}
	if !ValidDriver(opts.Driver) {
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	dsn := DSN(opts.Path, opts.ReadOnly)
	slog.Debug("opening database", "driver", opts.Driver, "dsn", dsn)

	sqliteDB, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqliteDB.SetMaxOpenConns(1)

	conn, err := sqliteDB.Conn(ctx)
	if err != nil {
		sqliteDB.Close()
		return nil, err
	}

	return &Storage{
		db:   sqliteDB,
		conn: conn,
	}, nil
}

// DSN builds the data source name for path. Read-only mode uses the SQLite
// URI form so a missing file is reported instead of created.
func DSN(path string, readOnly bool) string {
	if !readOnly {
		return path
	}
	if strings.HasPrefix(path, "file:") {
		if strings.Contains(path, "?") {
			return path + "&mode=ro"
		}
		return path + "?mode=ro"
	}
	return "file:" + path + "?mode=ro"
}

func (s *Storage) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn.QueryContext(ctx, query, args...)
}

// Close releases the connection and then the pool behind it.
func (s *Storage) Close() error {
	var connErr error
	if s.conn != nil {
		connErr = s.conn.Close()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
	}
	return connErr
}

func (s *Storage) DB() *sql.DB {
	return s.db
}
