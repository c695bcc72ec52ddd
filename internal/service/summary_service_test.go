package service

import (
	"context"
	"testing"

	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/matiashmartinez/taller/internal/repository"
)

// mock implementations
type mockClientRepo struct {
	clients []*domain.Client
}

func (m *mockClientRepo) Create(ctx context.Context, client *domain.Client) error { return nil }
func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}
func (m *mockClientRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Client, error) {
	return m.clients, nil
}
func (m *mockClientRepo) Update(ctx context.Context, client *domain.Client) error { return nil }
func (m *mockClientRepo) Deactivate(ctx context.Context, id int64) error          { return nil }
func (m *mockClientRepo) Reactivate(ctx context.Context, id int64) error          { return nil }
func (m *mockClientRepo) Delete(ctx context.Context, id int64) error              { return nil }
func (m *mockClientRepo) Search(ctx context.Context, field repository.SearchField, value string) ([]*domain.Client, error) {
	return nil, nil
}
func (m *mockClientRepo) MostRecent(ctx context.Context) (*domain.Client, error) {
	return nil, repository.ErrNotFound
}

type mockServiceRepo struct {
	services []*domain.Service
}

func (m *mockServiceRepo) Create(ctx context.Context, service *domain.Service) error { return nil }
func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return nil, repository.ErrNotFound
}
func (m *mockServiceRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Service, error) {
	return m.services, nil
}
func (m *mockServiceRepo) ListForClient(ctx context.Context, clientID int64, includeInactive bool) ([]*domain.Service, error) {
	return nil, nil
}
func (m *mockServiceRepo) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Service, error) {
	return nil, nil
}
func (m *mockServiceRepo) Update(ctx context.Context, service *domain.Service) error { return nil }
func (m *mockServiceRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	return nil
}
func (m *mockServiceRepo) Deactivate(ctx context.Context, id int64) error { return nil }
func (m *mockServiceRepo) Reactivate(ctx context.Context, id int64) error { return nil }
func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error     { return nil }

func TestSummaryBuild(t *testing.T) {
	ctx := context.Background()

	clients := &mockClientRepo{clients: []*domain.Client{
		{ID: 1, FirstName: "Ana", LastName: "Gomez"},
		{ID: 2, FirstName: "Luis", LastName: "Perez"},
	}}
	services := &mockServiceRepo{services: []*domain.Service{
		{ID: 1, Status: domain.StatusPending, Cost: 100, ClientID: 1},
		{ID: 2, Status: domain.StatusInProgress, Cost: 150, ClientID: 1},
		{ID: 3, Status: domain.StatusCompleted, Cost: 300, ClientID: 2},
		{ID: 4, Status: domain.StatusCancelled, Cost: 50, ClientID: 2},
	}}

	svc := NewSummaryService(clients, services)
	summary, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if summary.ActiveClients != 2 {
		t.Errorf("ActiveClients = %d, want 2", summary.ActiveClients)
	}
	if summary.ActiveServices != 4 {
		t.Errorf("ActiveServices = %d, want 4", summary.ActiveServices)
	}
	if got := summary.ByStatus[domain.StatusPending]; got != 1 {
		t.Errorf("ByStatus[PENDING] = %d, want 1", got)
	}
	if summary.OpenCost != 250 {
		t.Errorf("OpenCost = %v, want 250 (pending + in progress)", summary.OpenCost)
	}
	if summary.TotalCost != 600 {
		t.Errorf("TotalCost = %v, want 600", summary.TotalCost)
	}
}

func TestSummaryBuildEmpty(t *testing.T) {
	svc := NewSummaryService(&mockClientRepo{}, &mockServiceRepo{})

	summary, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if summary.ActiveClients != 0 || summary.ActiveServices != 0 {
		t.Errorf("empty store should produce zero counts, got %+v", summary)
	}
	// Every status is present even when empty
	for _, status := range domain.Statuses {
		if _, ok := summary.ByStatus[status]; !ok {
			t.Errorf("ByStatus missing %s", status)
		}
	}
}

func TestRecentServices(t *testing.T) {
	services := &mockServiceRepo{services: []*domain.Service{
		{ID: 1}, {ID: 2}, {ID: 3},
	}}
	svc := NewSummaryService(&mockClientRepo{}, services)

	recent, err := svc.RecentServices(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentServices() error = %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	// Newest (highest id) first
	if recent[0].ID != 3 || recent[1].ID != 2 {
		t.Errorf("order = [%d %d], want [3 2]", recent[0].ID, recent[1].ID)
	}
}
