package tui

import (
	"context"
	"fmt"

	"modelwatch/internal/api"
	"modelwatch/internal/domain"
	"modelwatch/internal/tui/components"
	"modelwatch/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type endpointsLoadedMsg struct {
	endpoints []domain.EndpointInfo
}

type endpointsErrorMsg struct {
	err error
}

// --- Endpoint list model ---

type endpointListModel struct {
	client      *api.Client
	backendName string

	endpoints []domain.EndpointInfo
	cursor    int

	width  int
	height int

	loading       bool
	spinner       spinner.Model
	err           error
	status        string
	statusIsError bool
}

func newEndpointListModel(client *api.Client, backendName string) endpointListModel {
	return endpointListModel{
		client:      client,
		backendName: backendName,
		loading:     true,
		spinner:     newSpinner(),
	}
}

func (m endpointListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadEndpointsCmd())
}

func (m endpointListModel) loadEndpointsCmd() tea.Cmd {
	return func() tea.Msg {
		endpoints, err := m.client.ListEndpoints(context.Background())
		if err != nil {
			return endpointsErrorMsg{err}
		}
		return endpointsLoadedMsg{endpoints}
	}
}

func (m endpointListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.endpoints)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			m.err = nil
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.loadEndpointsCmd())
		case "enter":
			if len(m.endpoints) > 0 {
				ep := m.endpoints[m.cursor]
				return m, func() tea.Msg { return navigateToDetailMsg{endpoint: ep} }
			}
		}

	case endpointsLoadedMsg:
		m.loading = false
		m.endpoints = msg.endpoints
		m.cursor = 0
		if len(m.endpoints) == 0 {
			m.status = "No evaluation endpoints configured."
		} else {
			m.status = fmt.Sprintf("Loaded %d endpoints.", len(m.endpoints))
		}

	case endpointsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m endpointListModel) View() string {
	header := components.Header(m.width, "endpoints", m.backendName)

	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "enter", Desc: "open"},
		{Key: "r", Desc: "refresh"},
		{Key: "q", Desc: "quit"},
	})

	statusBar := components.StatusBar(m.width, m.status, m.statusIsError)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := m.height - headerH - footerH - statusH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.loading {
		content = fmt.Sprintf("\n  %s Loading endpoints...", m.spinner.View())
	} else if m.err != nil {
		content = fmt.Sprintf("\n  %s", styles.ErrorText.Render(m.err.Error()))
	} else if len(m.endpoints) == 0 {
		content = "\n  No evaluation endpoints configured on this backend."
	} else {
		content = m.renderTable(contentH)
	}

	// Pad content to fill height
	lines := lipgloss.Height(content)
	if lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar, footer)
}

func (m endpointListModel) renderTable(height int) string {
	if len(m.endpoints) == 0 {
		return ""
	}

	cols := []int{24, 24, 40}

	header := styles.TableHeader.Render(
		fmt.Sprintf("  %-*s %-*s %-*s",
			cols[0], "ENDPOINT",
			cols[1], "MODEL",
			cols[2], "DESCRIPTION",
		),
	)

	var rows []string
	rows = append(rows, header)

	// Simple pagination/viewport calculation
	start := 0
	if m.cursor >= height-2 {
		start = m.cursor - (height - 3)
	}
	end := start + height - 2
	if end > len(m.endpoints) {
		end = len(m.endpoints)
	}

	for i := start; i < end; i++ {
		e := m.endpoints[i]

		cursor := " "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render(">")
			rowStyle = styles.TableSelectedRow
		}

		row := fmt.Sprintf("%s %-*s %-*s %-*s",
			cursor,
			cols[0], e.EndpointName,
			cols[1], e.ModelName,
			cols[2], truncate(e.ModelDescription, cols[2]),
		)
		rows = append(rows, rowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
