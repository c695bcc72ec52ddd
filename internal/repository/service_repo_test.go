package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiashmartinez/taller/internal/db"
	"github.com/matiashmartinez/taller/internal/domain"
)

type serviceRepoFixture struct {
	db       *db.DB
	clients  *ClientRepo
	services *ServiceRepo
	client   *domain.Client
}

func setupServiceRepo(t *testing.T) *serviceRepoFixture {
	t.Helper()

	database := setupTestDB(t)
	clients := NewClientRepo(database, testLogger())

	return &serviceRepoFixture{
		db:       database,
		clients:  clients,
		services: NewServiceRepo(database, testLogger()),
		client:   mustCreateClient(t, clients, "0"),
	}
}

func TestServiceRepoCreate(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	svc := domain.NewService("Oil change", f.client.ID)
	svc.Cost = 150.50
	require.NoError(t, f.services.Create(ctx, svc))
	assert.Greater(t, svc.ID, int64(0))

	got, err := f.services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oil change", got.Description)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, 150.50, got.Cost)
	assert.Equal(t, domain.Today().Format(domain.DateLayout), got.EntryDate.Format(domain.DateLayout))
	assert.Nil(t, got.EstimatedDate)
}

func TestServiceRepoCreateRequiresClient(t *testing.T) {
	f := setupServiceRepo(t)

	svc := domain.NewService("Orphan work", 0)
	err := f.services.Create(context.Background(), svc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestServiceRepoCreateUnknownClient(t *testing.T) {
	f := setupServiceRepo(t)

	// The client reference is validated by the foreign key
	svc := domain.NewService("Ghost client", 999)
	err := f.services.Create(context.Background(), svc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestServiceRepoEstimatedDateRoundTrip(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	estimated := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	svc := domain.NewService("Gearbox overhaul", f.client.ID)
	svc.EstimatedDate = &estimated
	require.NoError(t, f.services.Create(ctx, svc))

	got, err := f.services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EstimatedDate)
	assert.Equal(t, "2026-09-15", got.EstimatedDate.Format(domain.DateLayout))
}

func TestServiceRepoSoftDelete(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	svc := domain.NewService("Oil change", f.client.ID)
	require.NoError(t, f.services.Create(ctx, svc))
	require.NoError(t, f.services.Deactivate(ctx, svc.ID))

	_, err := f.services.GetByID(ctx, svc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	active, err := f.services.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.services.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Inactive)

	require.NoError(t, f.services.Reactivate(ctx, svc.ID))
	_, err = f.services.GetByID(ctx, svc.ID)
	assert.NoError(t, err)
}

func TestServiceRepoListForClient(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	other := mustCreateClient(t, f.clients, "1")

	mine := domain.NewService("Mine", f.client.ID)
	require.NoError(t, f.services.Create(ctx, mine))
	theirs := domain.NewService("Theirs", other.ID)
	require.NoError(t, f.services.Create(ctx, theirs))

	got, err := f.services.ListForClient(ctx, f.client.ID, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
}

func TestServiceRepoListByStatus(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	older := domain.NewService("Older pending", f.client.ID)
	older.EntryDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.services.Create(ctx, older))

	newer := domain.NewService("Newer pending", f.client.ID)
	newer.EntryDate = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.services.Create(ctx, newer))

	done := domain.NewService("Completed", f.client.ID)
	require.NoError(t, f.services.Create(ctx, done))
	require.NoError(t, f.services.SetStatus(ctx, done.ID, domain.StatusCompleted))

	hidden := domain.NewService("Deactivated pending", f.client.ID)
	require.NoError(t, f.services.Create(ctx, hidden))
	require.NoError(t, f.services.Deactivate(ctx, hidden.ID))

	got, err := f.services.ListByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest entry date first
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestServiceRepoListByStatusInvalid(t *testing.T) {
	f := setupServiceRepo(t)

	_, err := f.services.ListByStatus(context.Background(), "DONE")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestServiceRepoSetStatus(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	svc := domain.NewService("Oil change", f.client.ID)
	require.NoError(t, f.services.Create(ctx, svc))

	require.NoError(t, f.services.SetStatus(ctx, svc.ID, domain.StatusInProgress))
	got, err := f.services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)

	t.Run("invalid status leaves row untouched", func(t *testing.T) {
		err := f.services.SetStatus(ctx, svc.ID, "DONE")
		assert.ErrorIs(t, err, domain.ErrInvalid)

		got, err := f.services.GetByID(ctx, svc.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, got.Status)
	})

	t.Run("deactivated service cannot change status", func(t *testing.T) {
		require.NoError(t, f.services.Deactivate(ctx, svc.ID))
		err := f.services.SetStatus(ctx, svc.ID, domain.StatusCompleted)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceRepoUpdate(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	svc := domain.NewService("Oil change", f.client.ID)
	require.NoError(t, f.services.Create(ctx, svc))

	svc.Description = "Oil and filter change"
	svc.Cost = 300
	svc.Status = domain.StatusCompleted
	require.NoError(t, f.services.Update(ctx, svc))

	got, err := f.services.GetByID(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oil and filter change", got.Description)
	assert.Equal(t, 300.0, got.Cost)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestServiceRepoDelete(t *testing.T) {
	f := setupServiceRepo(t)
	ctx := context.Background()

	svc := domain.NewService("Oil change", f.client.ID)
	require.NoError(t, f.services.Create(ctx, svc))
	require.NoError(t, f.services.Delete(ctx, svc.ID))

	all, err := f.services.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, f.services.Delete(ctx, svc.ID), ErrNotFound)
}
