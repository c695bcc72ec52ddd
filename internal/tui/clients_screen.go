package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matiashmartinez/taller/internal/app"
	"github.com/matiashmartinez/taller/internal/domain"
	"github.com/matiashmartinez/taller/internal/repository"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
	clientModeSearch
)

// form field indices
const (
	fieldFirstName = iota
	fieldLastName
	fieldNationalID
	fieldPhone
	fieldCount
)

// searchFields is the cycle order for the search mode field selector
var searchFields = []repository.SearchField{
	repository.SearchFirstName,
	repository.SearchLastName,
	repository.SearchNationalID,
}

// ClientsModel displays a navigable list of clients with create/edit forms
// and a search mode
type ClientsModel struct {
	app          *app.App
	clients      []*domain.Client
	cursor       int
	showInactive bool
	serviceStats map[int64]*clientServiceStats
	loading      bool
	err          error
	statusMsg    string

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	editingID     int64 // 0 for new client
	autoNewClient bool  // open new client form after data loads

	// Search state
	searchInput textinput.Model
	searchField int  // index into searchFields
	searching   bool // list currently shows search results
}

type clientServiceStats struct {
	services int
	openCost float64
}

type clientsDataMsg struct {
	clients      []*domain.Client
	serviceStats map[int64]*clientServiceStats
	searching    bool
	err          error
}

type clientSavedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:          a,
		serviceStats: make(map[int64]*clientServiceStats),
		loading:      true,
	}
}

// IsCapturingInput returns true when the form or search input is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode != clientModeList
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientRepo.List(ctx, m.showInactive)
		if err != nil {
			return clientsDataMsg{err: err}
		}

		return clientsDataMsg{
			clients:      clients,
			serviceStats: m.loadStats(ctx, clients),
		}
	}
}

func (m *ClientsModel) runSearch(field repository.SearchField, value string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientRepo.Search(ctx, field, value)
		if err != nil {
			return clientsDataMsg{err: err}
		}

		return clientsDataMsg{
			clients:      clients,
			serviceStats: m.loadStats(ctx, clients),
			searching:    true,
		}
	}
}

// loadStats summarizes each client's service orders for the list view
func (m *ClientsModel) loadStats(ctx context.Context, clients []*domain.Client) map[int64]*clientServiceStats {
	stats := make(map[int64]*clientServiceStats)
	for _, client := range clients {
		services, err := m.app.ServiceRepo.ListForClient(ctx, client.ID, false)
		if err != nil {
			continue
		}
		cs := &clientServiceStats{services: len(services)}
		for _, svc := range services {
			if svc.Status.Open() {
				cs.openCost += svc.Cost
			}
		}
		stats[client.ID] = cs
	}
	return stats
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)

	m.fields[fieldFirstName] = textinput.New()
	m.fields[fieldFirstName].Placeholder = "First name"
	m.fields[fieldFirstName].CharLimit = 60
	m.fields[fieldFirstName].Width = 40

	m.fields[fieldLastName] = textinput.New()
	m.fields[fieldLastName].Placeholder = "Last name"
	m.fields[fieldLastName].CharLimit = 60
	m.fields[fieldLastName].Width = 40

	m.fields[fieldNationalID] = textinput.New()
	m.fields[fieldNationalID].Placeholder = "12345678"
	m.fields[fieldNationalID].CharLimit = 12
	m.fields[fieldNationalID].Width = 20

	m.fields[fieldPhone] = textinput.New()
	m.fields[fieldPhone].Placeholder = "(011) 4444-5555"
	m.fields[fieldPhone].CharLimit = 20
	m.fields[fieldPhone].Width = 25

	// Pre-fill for editing
	if editing != nil {
		m.fields[fieldFirstName].SetValue(editing.FirstName)
		m.fields[fieldLastName].SetValue(editing.LastName)
		m.fields[fieldNationalID].SetValue(editing.NationalID)
		m.fields[fieldPhone].SetValue(editing.Phone)
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = fieldFirstName
	m.fields[fieldFirstName].Focus()
}

func (m *ClientsModel) initSearch() {
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search text"
	m.searchInput.CharLimit = 60
	m.searchInput.Width = 40
	m.searchField = 0
	m.searchInput.Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		firstName := m.fields[fieldFirstName].Value()
		lastName := m.fields[fieldLastName].Value()
		nationalID := m.fields[fieldNationalID].Value()
		phone := m.fields[fieldPhone].Value()

		if m.editingID > 0 {
			// Update existing
			client, err := m.app.ClientRepo.GetByID(ctx, m.editingID)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			client.FirstName = firstName
			client.LastName = lastName
			client.NationalID = nationalID
			client.Phone = phone

			if err := m.app.ClientRepo.Update(ctx, client); err != nil {
				return clientSavedMsg{err: err}
			}
			return clientSavedMsg{name: client.FullName()}
		}

		// Create new
		client := domain.NewClient(firstName, lastName, nationalID)
		client.Phone = phone

		if err := m.app.ClientRepo.Create(ctx, client); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: client.FullName()}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		m.mode = clientModeNew
		m.initForm(nil)
		return m, m.fields[fieldFirstName].Focus()
	}

	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.updateForm(msg)
	case clientModeSearch:
		return m.updateSearch(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		m.searching = false
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.serviceStats = msg.serviceStats
			m.searching = msg.searching
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldFirstName].Focus()
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

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
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldFirstName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
				return m, m.fields[fieldFirstName].Focus()
			}
		case msg.String() == "x":
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				return m, m.toggleInactive()
			}
		case msg.String() == "i":
			m.showInactive = !m.showInactive
			m.cursor = 0
			m.loading = true
			return m, m.loadClients()
		case msg.String() == "/":
			m.mode = clientModeSearch
			m.initSearch()
			return m, m.searchInput.Focus()
		case key.Matches(msg, DefaultKeyMap.Back):
			if m.searching {
				m.searching = false
				m.loading = true
				return m, m.loadClients()
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field, save; otherwise advance
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsDataMsg:
		m.loading = false
		m.mode = clientModeList
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.serviceStats = msg.serviceStats
			m.searching = msg.searching
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = clientModeList
			return m, nil

		case "tab":
			// Cycle search field
			m.searchField = (m.searchField + 1) % len(searchFields)
			return m, nil

		case "enter":
			value := m.searchInput.Value()
			if value == "" {
				return m, nil
			}
			m.loading = true
			return m, m.runSearch(searchFields[m.searchField], value)
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *ClientsModel) toggleInactive() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		client := m.clients[m.cursor]

		if client.Inactive {
			m.app.ClientRepo.Reactivate(ctx, client.ID)
		} else {
			m.app.ClientRepo.Deactivate(ctx, client.ID)
		}

		// Reload
		return m.loadClients()()
	}
}

func (m *ClientsModel) View() string {
	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.viewForm()
	case clientModeSearch:
		return m.viewSearch()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 {
			s += titleStyle.Render("Welcome to taller!") + "\n"
			s += subtitleStyle.Render("  Let's register your first client to get started.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	labels := []string{"First name:", "Last name:", "National ID:", "Phone:"}
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

func (m *ClientsModel) viewSearch() string {
	var s string
	s += titleStyle.Render("Search Clients") + "\n\n"
	s += fmt.Sprintf("  Field: %s\n\n", searchFields[m.searchField])
	s += "  " + m.searchInput.View() + "\n\n"
	s += helpStyle.Render("  tab: cycle field  enter: search  esc: cancel")
	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	// Header
	header := "Clients"
	if m.searching {
		header += subtitleStyle.Render("  (search results)")
	} else if m.showInactive {
		header += subtitleStyle.Render("  (showing inactive)")
	}
	s += titleStyle.Render(header) + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients found. Press 'n' to add one.") + "\n"
		s += subtitleStyle.Render("  Press 'i' to toggle inactive clients, '/' to search") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: deactivate/restore  i: toggle inactive  /: search")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor

	name := client.FullName()
	if client.Inactive {
		name += " (inactive)"
	}

	stats := m.serviceStats[client.ID]
	services := 0
	openCost := 0.0
	if stats != nil {
		services = stats.services
		openCost = stats.openCost
	}

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, name)
	line2 := fmt.Sprintf("    ID %s  |  Phone: %s  |  Services: %d  Open: %s",
		client.NationalID, client.Phone, services, formatMoney(openCost))

	nameStyle := lipgloss.NewStyle()
	detailStyle := subtitleStyle
	if client.Inactive {
		nameStyle = nameStyle.Foreground(mutedColor)
		detailStyle = lipgloss.NewStyle().Foreground(mutedColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + detailStyle.Render(line2)
}
