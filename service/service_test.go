package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/loganlanou/schemainspect/internal/inspector"
	"github.com/loganlanou/schemainspect/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionReport = []string{
	"Field Name\tData Type",
	"------------------------",
	"session_key\t\tTEXT",
	"expire_date\t\tDATETIME",
	"user_id\t\tINTEGER",
	"auth_token\t\tTEXT",
}

func TestRun_Drivers(t *testing.T) {
	tests := []struct {
		name   string
		driver string
	}{
		{"modernc", storage.DriverModernc},
		{"mattn", storage.DriverMattn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, _ := setupTestDB(t)
			svc, out := setupTestService(t, path, DefaultTableName, tt.driver)

			res := svc.Run(context.Background())

			require.NoError(t, res.Err)
			assert.Equal(t, inspector.StateReported, res.State)
			assert.Equal(t, sessionReport, outputLines(out))
		})
	}
}

func TestRun_RandomTable(t *testing.T) {
	faker := gofakeit.New(7)
	types := []string{"TEXT", "INTEGER", "REAL", "BLOB", "NUMERIC", "VARCHAR(255)", "DATETIME", "BOOLEAN", ""}

	path, database := setupTestDB(t)

	n := faker.Number(1, 25)
	columns := make([][2]string, n)
	for i := range columns {
		columns[i] = [2]string{
			fmt.Sprintf("%s_%d", strings.ToLower(faker.Noun()), i),
			faker.RandomString(types),
		}
	}
	require.NoError(t, storage.CreateTable(database, "generated", columns))

	svc, out := setupTestService(t, path, "generated", storage.DriverModernc)
	res := svc.Run(context.Background())
	require.NoError(t, res.Err)

	lines := outputLines(out)
	require.Len(t, lines, n+2, "report should have a 2-line header plus one line per column")
	for i, col := range columns {
		assert.Equal(t, col[0]+"\t\t"+col[1], lines[i+2], "column %d", i)
		assert.Equal(t, i, res.Columns[i].Position)
	}
}

func TestRun_MissingTable(t *testing.T) {
	path, _ := setupTestDB(t)
	svc, out := setupTestService(t, path, "eyygo_missing", storage.DriverModernc)

	res := svc.Run(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, inspector.StateReported, res.State)
	assert.Equal(t, sessionReport[:2], outputLines(out))
}

func TestRun_Unopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", DefaultDBPath)
	svc, out := setupTestService(t, path, DefaultTableName, storage.DriverModernc)

	res := svc.Run(context.Background())

	assert.Equal(t, inspector.StateAborted, res.State)
	assert.ErrorIs(t, res.Err, inspector.ErrConnection)

	lines := outputLines(out)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Failed to connect to database: "), lines[0])
}

func TestRun_ReadOnlyDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBPath)
	svc, out := setupTestService(t, path, DefaultTableName, storage.DriverModernc)
	svc.config.DB.ReadOnly = true

	res := svc.Run(context.Background())

	assert.ErrorIs(t, res.Err, inspector.ErrConnection)
	assert.Len(t, outputLines(out), 1)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "read-only run should not create the database file")
}

func TestRun_ReadOnlyExistingFile(t *testing.T) {
	path, _ := setupTestDB(t)
	svc, out := setupTestService(t, path, DefaultTableName, storage.DriverModernc)
	svc.config.DB.ReadOnly = true

	res := svc.Run(context.Background())

	require.NoError(t, res.Err)
	assert.Equal(t, sessionReport, outputLines(out))
}

func TestRun_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBPath)
	garbage := strings.Repeat("this is not an sqlite database\n", 64)
	require.NoError(t, os.WriteFile(path, []byte(garbage), 0o644))

	svc, out := setupTestService(t, path, DefaultTableName, storage.DriverModernc)
	res := svc.Run(context.Background())

	assert.Equal(t, inspector.StateAborted, res.State)
	assert.Error(t, res.Err)

	lines := outputLines(out)
	require.Len(t, lines, 1, "a failed run prints a single line")
	assert.True(t, strings.HasPrefix(lines[0], "Failed to "), lines[0])
}

func TestRun_Idempotent(t *testing.T) {
	path, _ := setupTestDB(t)

	first, out1 := setupTestService(t, path, DefaultTableName, storage.DriverModernc)
	second, out2 := setupTestService(t, path, DefaultTableName, storage.DriverModernc)

	require.NoError(t, first.Run(context.Background()).Err)
	require.NoError(t, second.Run(context.Background()).Err)

	assert.Equal(t, out1.String(), out2.String())
}
