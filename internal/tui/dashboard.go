// Package tui implements the interactive dashboard: an endpoint list that
// drills into per-model performance, trend, safety, and health views, all
// inside a single Bubbletea alt-screen session.
package tui

import (
	"fmt"

	"modelwatch/internal/api"
	"modelwatch/internal/domain"
	"modelwatch/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Navigation messages ---
//
// Sent by child models to request view transitions within the single
// Bubbletea program. The top-level dashboardModel handles them.

type navigateToDetailMsg struct {
	endpoint domain.EndpointInfo
}

// navigateBackMsg asks the app to return to the endpoint list.
type navigateBackMsg struct{}

// --- App view ---

type dashView int

const (
	dashViewEndpoints dashView = iota
	dashViewDetail
)

// dashboardModel is the top-level Bubbletea model that manages transitions
// between the endpoint list and the model detail view within one
// alt-screen session.
type dashboardModel struct {
	client      *api.Client
	backendName string

	view dashView

	// Child models.
	list   endpointListModel
	detail modelDetailModel

	width  int
	height int
}

// RunDashboard starts the monitoring dashboard TUI. It stays open until
// the user quits from the endpoint list.
func RunDashboard(client *api.Client, backendName string) error {
	m := dashboardModel{
		client:      client,
		backendName: backendName,
		view:        dashViewEndpoints,
		list:        newEndpointListModel(client, backendName),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func (m dashboardModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateChild(msg)

	case navigateToDetailMsg:
		return m.switchToDetail(msg.endpoint)

	case navigateBackMsg:
		return m.switchToList()
	}

	return m.updateChild(msg)
}

func (m dashboardModel) View() string {
	switch m.view {
	case dashViewDetail:
		return m.detail.View()
	default:
		return m.list.View()
	}
}

// --- View transitions ---

func (m dashboardModel) switchToList() (tea.Model, tea.Cmd) {
	m.view = dashViewEndpoints
	m.list = newEndpointListModel(m.client, m.backendName)
	m.list.width = m.width
	m.list.height = m.height
	return m, m.list.Init()
}

func (m dashboardModel) switchToDetail(endpoint domain.EndpointInfo) (tea.Model, tea.Cmd) {
	m.view = dashViewDetail
	m.detail = newModelDetailModel(m.client, m.backendName, endpoint)
	m.detail.width = m.width
	m.detail.height = m.height
	return m, m.detail.Init()
}

// --- Delegate to active child ---

func (m dashboardModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.view {
	case dashViewEndpoints:
		updated, cmd := m.list.Update(msg)
		m.list = updated.(endpointListModel)
		return m, cmd

	case dashViewDetail:
		updated, cmd := m.detail.Update(msg)
		m.detail = updated.(modelDetailModel)
		return m, cmd
	}

	return m, nil
}

// newSpinner returns the standard loading spinner used across TUI views.
func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)
	return s
}
