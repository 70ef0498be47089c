package service

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loganlanou/schemainspect/storage"
)

// setupTestDB creates a migrated database file in a temp dir.
func setupTestDB(t *testing.T) (string, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultDBPath)
	database, cleanup, err := storage.NewTestDB(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	return path, database
}

// setupTestService creates a service pointed at path that writes into the
// returned buffer.
func setupTestService(t *testing.T, path, table, driver string) (*Service, *bytes.Buffer) {
	t.Helper()

	config := &Config{
		DBPath:    path,
		TableName: table,
	}
	config.DB.Driver = driver

	var out bytes.Buffer
	return New(config, &out), &out
}

func outputLines(buf *bytes.Buffer) []string {
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
