package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matiashmartinez/taller/internal/app"
	"github.com/matiashmartinez/taller/internal/domain"
)

// serviceMode represents the current screen mode
type serviceMode int

const (
	serviceModeList serviceMode = iota
	serviceModeNew
	serviceModeEdit
)

// form field indices
const (
	svcFieldDescription = iota
	svcFieldClientID
	svcFieldCost
	svcFieldEstimated
	svcFieldStatus
	svcFieldCount
)

// ServicesModel displays a navigable list of service orders with
// create/edit forms, a status filter, and status cycling
type ServicesModel struct {
	app          *app.App
	services     []*domain.Service
	clientNames  map[int64]string
	cursor       int
	showInactive bool
	statusFilter *domain.Status // nil shows every status
	loading      bool
	err          error
	statusMsg    string

	// Form state
	mode       serviceMode
	fields     []textinput.Model
	fieldFocus int
	editingID  int64 // 0 for new service
}

type servicesDataMsg struct {
	services    []*domain.Service
	clientNames map[int64]string
	err         error
}

type serviceSavedMsg struct {
	id  int64
	err error
}

// NewServicesModel creates a new services screen model
func NewServicesModel(a *app.App) tea.Model {
	return &ServicesModel{
		app:         a,
		clientNames: make(map[int64]string),
		loading:     true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ServicesModel) IsCapturingInput() bool {
	return m.mode == serviceModeNew || m.mode == serviceModeEdit
}

func (m *ServicesModel) Init() tea.Cmd {
	return m.loadServices()
}

func (m *ServicesModel) loadServices() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var services []*domain.Service
		var err error
		if m.statusFilter != nil {
			services, err = m.app.ServiceRepo.ListByStatus(ctx, *m.statusFilter)
		} else {
			services, err = m.app.ServiceRepo.List(ctx, m.showInactive)
		}
		if err != nil {
			return servicesDataMsg{err: err}
		}

		// Resolve client names, including deactivated owners
		clients, err := m.app.ClientRepo.List(ctx, true)
		if err != nil {
			return servicesDataMsg{err: err}
		}
		names := make(map[int64]string, len(clients))
		for _, client := range clients {
			names[client.ID] = client.FullName()
		}

		return servicesDataMsg{services: services, clientNames: names}
	}
}

func (m *ServicesModel) initForm(editing *domain.Service) {
	m.fields = make([]textinput.Model, svcFieldCount)

	m.fields[svcFieldDescription] = textinput.New()
	m.fields[svcFieldDescription].Placeholder = "Oil change and filters"
	m.fields[svcFieldDescription].CharLimit = 120
	m.fields[svcFieldDescription].Width = 50

	m.fields[svcFieldClientID] = textinput.New()
	m.fields[svcFieldClientID].Placeholder = "client id"
	m.fields[svcFieldClientID].CharLimit = 10
	m.fields[svcFieldClientID].Width = 12

	m.fields[svcFieldCost] = textinput.New()
	m.fields[svcFieldCost].Placeholder = "1500.00"
	m.fields[svcFieldCost].CharLimit = 12
	m.fields[svcFieldCost].Width = 15

	m.fields[svcFieldEstimated] = textinput.New()
	m.fields[svcFieldEstimated].Placeholder = "YYYY-MM-DD (optional)"
	m.fields[svcFieldEstimated].CharLimit = 10
	m.fields[svcFieldEstimated].Width = 15

	m.fields[svcFieldStatus] = textinput.New()
	m.fields[svcFieldStatus].Placeholder = "PENDING"
	m.fields[svcFieldStatus].CharLimit = 12
	m.fields[svcFieldStatus].Width = 15

	// Pre-fill for editing
	if editing != nil {
		m.fields[svcFieldDescription].SetValue(editing.Description)
		m.fields[svcFieldClientID].SetValue(strconv.FormatInt(editing.ClientID, 10))
		m.fields[svcFieldCost].SetValue(fmt.Sprintf("%.2f", editing.Cost))
		if editing.EstimatedDate != nil {
			m.fields[svcFieldEstimated].SetValue(formatDate(*editing.EstimatedDate))
		}
		m.fields[svcFieldStatus].SetValue(string(editing.Status))
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = svcFieldDescription
	m.fields[svcFieldDescription].Focus()
}

func (m *ServicesModel) saveService() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		description := m.fields[svcFieldDescription].Value()
		clientIDStr := m.fields[svcFieldClientID].Value()
		costStr := m.fields[svcFieldCost].Value()
		estimatedStr := m.fields[svcFieldEstimated].Value()
		statusStr := m.fields[svcFieldStatus].Value()

		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			return serviceSavedMsg{err: fmt.Errorf("invalid client id: %s", clientIDStr)}
		}

		cost := 0.0
		if costStr != "" {
			cost, err = strconv.ParseFloat(costStr, 64)
			if err != nil {
				return serviceSavedMsg{err: fmt.Errorf("invalid cost: %s", costStr)}
			}
		}

		var estimated *time.Time
		if estimatedStr != "" {
			date, err := time.Parse(domain.DateLayout, estimatedStr)
			if err != nil {
				return serviceSavedMsg{err: fmt.Errorf("invalid estimated date: %s", estimatedStr)}
			}
			estimated = &date
		}

		status := domain.StatusPending
		if statusStr != "" {
			status, err = domain.ParseStatus(statusStr)
			if err != nil {
				return serviceSavedMsg{err: err}
			}
		}

		if m.editingID > 0 {
			// Update existing
			svc, err := m.app.ServiceRepo.GetByID(ctx, m.editingID)
			if err != nil {
				return serviceSavedMsg{err: err}
			}
			svc.Description = description
			svc.ClientID = clientID
			svc.Cost = cost
			svc.EstimatedDate = estimated
			svc.Status = status

			if err := m.app.ServiceRepo.Update(ctx, svc); err != nil {
				return serviceSavedMsg{err: err}
			}
			return serviceSavedMsg{id: svc.ID}
		}

		// Create new
		svc := domain.NewService(description, clientID)
		svc.Cost = cost
		svc.EstimatedDate = estimated
		svc.Status = status

		if err := m.app.ServiceRepo.Create(ctx, svc); err != nil {
			return serviceSavedMsg{err: err}
		}
		return serviceSavedMsg{id: svc.ID}
	}
}

func (m *ServicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == serviceModeNew || m.mode == serviceModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadServices()

	case servicesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.services = msg.services
			m.clientNames = msg.clientNames
			if m.cursor >= len(m.services) {
				m.cursor = max(0, len(m.services)-1)
			}
		}
		return m, nil

	case serviceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = serviceModeList
		m.statusMsg = fmt.Sprintf("Saved service #%d", msg.id)
		m.loading = true
		return m, m.loadServices()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.services)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = serviceModeNew
			m.initForm(nil)
			return m, m.fields[svcFieldDescription].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.services) > 0 && m.cursor < len(m.services) {
				m.mode = serviceModeEdit
				m.initForm(m.services[m.cursor])
				return m, m.fields[svcFieldDescription].Focus()
			}
		case msg.String() == "t":
			// Advance the selected service to the next status
			if len(m.services) > 0 && m.cursor < len(m.services) {
				return m, m.cycleStatus()
			}
		case msg.String() == "x":
			if len(m.services) > 0 && m.cursor < len(m.services) {
				return m, m.toggleInactive()
			}
		case msg.String() == "i":
			m.showInactive = !m.showInactive
			m.cursor = 0
			m.loading = true
			return m, m.loadServices()
		case msg.String() == "f":
			m.advanceFilter()
			m.cursor = 0
			m.loading = true
			return m, m.loadServices()
		}
	}

	return m, nil
}

// advanceFilter cycles the status filter: all -> PENDING -> IN_PROGRESS ->
// COMPLETED -> CANCELLED -> all
func (m *ServicesModel) advanceFilter() {
	if m.statusFilter == nil {
		first := domain.Statuses[0]
		m.statusFilter = &first
		return
	}
	for i, status := range domain.Statuses {
		if status == *m.statusFilter {
			if i == len(domain.Statuses)-1 {
				m.statusFilter = nil
			} else {
				next := domain.Statuses[i+1]
				m.statusFilter = &next
			}
			return
		}
	}
	m.statusFilter = nil
}

func (m *ServicesModel) cycleStatus() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		svc := m.services[m.cursor]

		next := domain.Statuses[0]
		for i, status := range domain.Statuses {
			if status == svc.Status {
				next = domain.Statuses[(i+1)%len(domain.Statuses)]
				break
			}
		}

		if err := m.app.ServiceRepo.SetStatus(ctx, svc.ID, next); err != nil {
			return servicesDataMsg{err: err}
		}
		return m.loadServices()()
	}
}

func (m *ServicesModel) toggleInactive() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		svc := m.services[m.cursor]

		if svc.Inactive {
			m.app.ServiceRepo.Reactivate(ctx, svc.ID)
		} else {
			m.app.ServiceRepo.Deactivate(ctx, svc.ID)
		}

		return m.loadServices()()
	}
}

func (m *ServicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case serviceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = serviceModeList
		m.statusMsg = fmt.Sprintf("Saved service #%d", msg.id)
		m.loading = true
		return m, m.loadServices()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = serviceModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % svcFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + svcFieldCount) % svcFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == svcFieldCount-1 {
				return m, m.saveService()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveService()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ServicesModel) View() string {
	if m.mode == serviceModeNew || m.mode == serviceModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ServicesModel) viewForm() string {
	var s string

	if m.mode == serviceModeNew {
		s += titleStyle.Render("New Service") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Service") + "\n\n"
	}

	labels := []string{"Description:", "Client ID:", "Cost:", "Estimated date:", "Status:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ServicesModel) viewList() string {
	if m.loading {
		return "Loading services..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	header := "Services"
	if m.statusFilter != nil {
		header += subtitleStyle.Render(fmt.Sprintf("  (only %s)", *m.statusFilter))
	} else if m.showInactive {
		header += subtitleStyle.Render("  (showing inactive)")
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.services) == 0 {
		s += subtitleStyle.Render("  No services found. Press 'n' to add one.") + "\n"
		s += subtitleStyle.Render("  Press 'f' to cycle the status filter, 'i' to toggle inactive") + "\n"
		return s
	}

	for i, svc := range m.services {
		s += m.renderService(i, svc) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  t: next status  x: deactivate/restore  f: filter  i: toggle inactive")

	return s
}

func (m *ServicesModel) renderService(index int, svc *domain.Service) string {
	selected := index == m.cursor

	clientName := fmt.Sprintf("Client #%d", svc.ClientID)
	if name, ok := m.clientNames[svc.ClientID]; ok {
		clientName = name
	}

	description := truncateStr(svc.Description, 40)
	if svc.Inactive {
		description += " (inactive)"
	}

	estimated := "-"
	if svc.EstimatedDate != nil {
		estimated = formatDate(*svc.EstimatedDate)
	}

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s  %s", indicator, description, statusBadge(svc.Status))
	line2 := fmt.Sprintf("    %s  |  Entered: %s  Estimated: %s  |  %s",
		truncateStr(clientName, 25),
		formatDate(svc.EntryDate),
		estimated,
		formatMoney(svc.Cost),
	)

	nameStyle := lipgloss.NewStyle()
	detailStyle := subtitleStyle
	if svc.Inactive {
		nameStyle = nameStyle.Foreground(mutedColor)
		detailStyle = lipgloss.NewStyle().Foreground(mutedColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + detailStyle.Render(line2)
}
