package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644))
}

func TestReadMigrationFiles_SortedByVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_add_index.sql", "CREATE INDEX idx ON t(a);")
	writeMigration(t, dir, "001_initial_schema.sql", "CREATE TABLE t (a TEXT);")
	writeMigration(t, dir, "notes.txt", "ignorado")

	migrations, err := readMigrationFiles(dir)

	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "initial_schema", migrations[0].Name)
	assert.Equal(t, "CREATE TABLE t (a TEXT);", migrations[0].SQL)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, "add_index", migrations[1].Name)
}

func TestReadMigrationFiles_RejectsUnversionedName(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "schema.sql", "CREATE TABLE t (a TEXT);")

	_, err := readMigrationFiles(dir)

	assert.ErrorContains(t, err, "want NNN_name.sql")
}

func TestReadMigrationFiles_RejectsNonNumericPrefix(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "abc_schema.sql", "CREATE TABLE t (a TEXT);")

	_, err := readMigrationFiles(dir)

	assert.Error(t, err)
}
