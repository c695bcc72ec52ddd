package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	database, err := Open(path, "test-key")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Ping())
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.EnsureSchema())
	// Running it again must not fail
	require.NoError(t, database.EnsureSchema())

	// Both tables exist
	for _, table := range []string{"clients", "services"} {
		var name string
		err := database.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestCloseIdempotent(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	require.NoError(t, err)

	require.NoError(t, database.Close())
	assert.NoError(t, database.Close())
}

func TestForeignKeysEnabled(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	require.NoError(t, err)
	defer database.Close()

	var enabled int
	require.NoError(t, database.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}
