package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matiashmartinez/taller/internal/app"
	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/matiashmartinez/taller/internal/service"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	// Data
	summary        *service.Summary
	recentServices []*domain.Service
	clientNames    map[int64]string

	loading bool
	err     error
}

type dashboardDataMsg struct {
	summary        *service.Summary
	recentServices []*domain.Service
	clientNames    map[int64]string
	err            error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:         a,
		loading:     true,
		clientNames: make(map[int64]string),
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := dashboardDataMsg{
			clientNames: make(map[int64]string),
		}

		summary, err := m.app.SummaryService.Build(ctx)
		if err != nil {
			msg.err = fmt.Errorf("summary: %w", err)
			return msg
		}
		msg.summary = summary

		recent, err := m.app.SummaryService.RecentServices(ctx, 8)
		if err == nil {
			msg.recentServices = recent
			for _, svc := range recent {
				if _, ok := msg.clientNames[svc.ClientID]; !ok {
					client, err := m.app.ClientRepo.GetByID(ctx, svc.ClientID)
					if err == nil {
						msg.clientNames[client.ID] = client.FullName()
					}
				}
			}
		}

		return msg
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.recentServices = msg.recentServices
		m.clientNames = msg.clientNames
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	s += fmt.Sprintf(
		"  Active clients:   %-6d  Open cost:   %s\n  Active services:  %-6d  Total cost:  %s\n",
		m.summary.ActiveClients,
		formatMoney(m.summary.OpenCost),
		m.summary.ActiveServices,
		formatMoney(m.summary.TotalCost),
	)

	// Per-status counts
	s += "\n  "
	for i, status := range domain.Statuses {
		if i > 0 {
			s += "   "
		}
		s += fmt.Sprintf("%s: %d", statusBadge(status), m.summary.ByStatus[status])
	}
	s += "\n"

	// Recent services
	s += "\n" + m.renderRecentServices()

	return s
}

func (m *DashboardModel) renderRecentServices() string {
	header := "  Recent Services\n"
	if len(m.recentServices) == 0 {
		return header + subtitleStyle.Render("  No services yet. Press 's' to open the services screen.") + "\n"
	}

	s := header
	for _, svc := range m.recentServices {
		clientName := fmt.Sprintf("Client #%d", svc.ClientID)
		if name, ok := m.clientNames[svc.ClientID]; ok {
			clientName = name
		}

		s += fmt.Sprintf("  %-10s %-22s %-28s %s\n",
			formatDate(svc.EntryDate),
			truncateStr(clientName, 22),
			truncateStr(svc.Description, 28),
			statusBadge(svc.Status),
		)
	}

	return s
}
