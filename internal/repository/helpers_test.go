package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matiashmartinez/taller/internal/db"
	"github.com/matiashmartinez/taller/internal/domain"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema())
	t.Cleanup(func() { database.Close() })

	return database
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(suffix string) *domain.Client {
	return &domain.Client{
		FirstName:  "Ana",
		LastName:   "Gomez",
		NationalID: "1234567" + suffix,
		Phone:      "1144445555",
	}
}

func mustCreateClient(t *testing.T, repo *ClientRepo, suffix string) *domain.Client {
	t.Helper()
	client := newTestClient(suffix)
	require.NoError(t, repo.Create(context.Background(), client))
	return client
}
