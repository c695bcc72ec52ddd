package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiashmartinez/taller/internal/domain"
)

func TestClientRepoCreate(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	client := newTestClient("0")
	require.NoError(t, repo.Create(ctx, client))
	assert.Greater(t, client.ID, int64(0))

	got, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.FirstName, got.FirstName)
	assert.Equal(t, client.NationalID, got.NationalID)
	assert.False(t, got.Inactive)
}

func TestClientRepoCreateInvalid(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())

	client := newTestClient("0")
	client.NationalID = "12-345"
	err := repo.Create(context.Background(), client)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.Zero(t, client.ID)
}

func TestClientRepoCreateDuplicateNationalID(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	mustCreateClient(t, repo, "0")

	dup := newTestClient("0")
	dup.FirstName = "Otro"
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClientRepoGetByIDNotFound(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepoSoftDelete(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	client := mustCreateClient(t, repo, "0")

	require.NoError(t, repo.Deactivate(ctx, client.ID))

	// Deactivated clients are invisible to GetByID
	_, err := repo.GetByID(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// ...and to the default listing
	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	// ...but still present when inactive rows are requested
	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Inactive)

	// Restore brings it back
	require.NoError(t, repo.Reactivate(ctx, client.ID))
	got, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, got.Inactive)
}

func TestClientRepoDeactivateMissing(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())

	err := repo.Deactivate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepoListOrder(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	first := mustCreateClient(t, repo, "0")
	second := mustCreateClient(t, repo, "1")

	clients, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, first.ID, clients[0].ID)
	assert.Equal(t, second.ID, clients[1].ID)
}

func TestClientRepoUpdate(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	client := mustCreateClient(t, repo, "0")
	client.FirstName = "Maria"
	client.Phone = "1155556666"
	require.NoError(t, repo.Update(ctx, client))

	got, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.FirstName)
	assert.Equal(t, "1155556666", got.Phone)
}

func TestClientRepoUpdateMissing(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())

	client := newTestClient("0")
	client.ID = 99
	err := repo.Update(context.Background(), client)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepoDelete(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	client := mustCreateClient(t, repo, "0")
	require.NoError(t, repo.Delete(ctx, client.ID))

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, repo.Delete(ctx, client.ID), ErrNotFound)
}

func TestClientRepoDeleteWithServices(t *testing.T) {
	database := setupTestDB(t)
	clients := NewClientRepo(database, testLogger())
	services := NewServiceRepo(database, testLogger())
	ctx := context.Background()

	client := mustCreateClient(t, clients, "0")
	require.NoError(t, services.Create(ctx, domain.NewService("Oil change", client.ID)))

	// The foreign key protects clients that still own services
	err := clients.Delete(ctx, client.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClientRepoSearch(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	ana := mustCreateClient(t, repo, "0")
	maria := newTestClient("1")
	maria.FirstName = "Maria"
	maria.LastName = "Lopez"
	require.NoError(t, repo.Create(ctx, maria))

	t.Run("substring match on first name", func(t *testing.T) {
		got, err := repo.Search(ctx, SearchFirstName, "ar")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, maria.ID, got[0].ID)
	})

	t.Run("match on national id", func(t *testing.T) {
		got, err := repo.Search(ctx, SearchNationalID, "12345670")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, ana.ID, got[0].ID)
	})

	t.Run("excludes deactivated clients", func(t *testing.T) {
		require.NoError(t, repo.Deactivate(ctx, ana.ID))
		got, err := repo.Search(ctx, SearchLastName, "Gomez")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		got, err := repo.Search(ctx, SearchFirstName, "zzz")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestClientRepoMostRecent(t *testing.T) {
	repo := NewClientRepo(setupTestDB(t), testLogger())
	ctx := context.Background()

	_, err := repo.MostRecent(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	mustCreateClient(t, repo, "0")
	latest := mustCreateClient(t, repo, "1")

	got, err := repo.MostRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)

	// A deactivated latest client is skipped
	require.NoError(t, repo.Deactivate(ctx, latest.ID))
	got, err = repo.MostRecent(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, latest.ID, got.ID)
}

func TestParseSearchField(t *testing.T) {
	for _, name := range []string{"first_name", "last_name", "national_id"} {
		field, err := ParseSearchField(name)
		require.NoError(t, err)
		assert.Equal(t, name, field.String())
	}

	_, err := ParseSearchField("phone")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
