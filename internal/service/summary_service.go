package service

import (
	"context"

	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/matiashmartinez/taller/internal/repository"
)

// Summary aggregates the state of the workshop for the dashboard and the
// summary report.
type Summary struct {
	ActiveClients  int
	ActiveServices int
	ByStatus       map[domain.Status]int
	OpenCost       float64 // cost of pending and in-progress services
	TotalCost      float64 // cost of all active services
}

// SummaryService provides aggregations over clients and services
type SummaryService interface {
	Build(ctx context.Context) (*Summary, error)
	RecentServices(ctx context.Context, limit int) ([]*domain.Service, error)
}

type summaryService struct {
	clientRepo  repository.ClientRepository
	serviceRepo repository.ServiceRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(
	clientRepo repository.ClientRepository,
	serviceRepo repository.ServiceRepository,
) SummaryService {
	return &summaryService{
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
	}
}

func (s *summaryService) Build(ctx context.Context) (*Summary, error) {
	clients, err := s.clientRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ActiveClients:  len(clients),
		ActiveServices: len(services),
		ByStatus:       make(map[domain.Status]int),
	}
	for _, status := range domain.Statuses {
		summary.ByStatus[status] = 0
	}

	for _, svc := range services {
		summary.ByStatus[svc.Status]++
		summary.TotalCost += svc.Cost
		if svc.Status.Open() {
			summary.OpenCost += svc.Cost
		}
	}

	return summary, nil
}

// RecentServices returns up to limit active services, newest first.
func (s *summaryService) RecentServices(ctx context.Context, limit int) ([]*domain.Service, error) {
	services, err := s.serviceRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	recent := make([]*domain.Service, 0, limit)
	for i := len(services) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, services[i])
	}
	return recent, nil
}
