package storage

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var testMigrations embed.FS

// NewTestDB creates a SQLite database file at path carrying the auth and
// session schema, for tests that inspect a real file.
func NewTestDB(path string) (*sql.DB, func(), error) {
	database, err := sql.Open(DriverMattn, path+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open test database: %w", err)
	}

	goose.SetBaseFS(testMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(database, "migrations"); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := func() {
		database.Close()
	}

	return database, cleanup, nil
}

// CreateTable creates a table with the given column definitions in
// declaration order. Each entry is a name and an optional declared type.
func CreateTable(database *sql.DB, table string, columns [][2]string) error {
	defs := ""
	for i, col := range columns {
		if i > 0 {
			defs += ", "
		}
		defs += QuoteIdent(col[0])
		if col[1] != "" {
			defs += " " + col[1]
		}
	}

	if _, err := database.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(table), defs)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}
