package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"modelwatch/internal/api"
	"modelwatch/internal/domain"
	"modelwatch/internal/present"
	"modelwatch/internal/tui/components"
	"modelwatch/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

// fetchTag identifies which fetch a result belongs to: the endpoint it was
// issued for and the generation counter at issue time. A result whose tag
// no longer matches the view is late and must be dropped, never applied.
type fetchTag struct {
	endpoint string
	gen      int
}

type overviewLoadedMsg struct {
	fetchTag
	snap *domain.OverviewSnapshot
}

type overviewErrorMsg struct {
	fetchTag
	err error
}

type safetyLoadedMsg struct {
	fetchTag
	safety *domain.ModelSafety
}

type safetyErrorMsg struct {
	fetchTag
	err error
}

type healthLoadedMsg struct {
	fetchTag
	health *domain.ModelHealth
}

type healthErrorMsg struct {
	fetchTag
	err error
}

// --- Tabs ---

type detailTab int

const (
	tabPerformance detailTab = iota
	tabTrends
	tabSafety
	tabHealth
	tabCount
)

func (t detailTab) label() string {
	switch t {
	case tabPerformance:
		return "Performance"
	case tabTrends:
		return "Trends"
	case tabSafety:
		return "Safety"
	case tabHealth:
		return "Health"
	default:
		return ""
	}
}

// lastNSteps are the history depths the n key cycles through; 0 means all.
var lastNSteps = []int{0, 5, 10, 20}

// --- Model detail model ---

// modelDetailModel shows one endpoint's model across four tabs. The three
// snapshots load concurrently; each tab renders as soon as its own data
// arrives.
type modelDetailModel struct {
	client      *api.Client
	backendName string
	endpoint    domain.EndpointInfo

	tab detailTab
	sel present.Selection

	snap      *domain.OverviewSnapshot
	safety    *domain.ModelSafety
	health    *domain.ModelHealth
	snapErr   error
	safetyErr error
	healthErr error

	pending int
	gen     int
	spinner spinner.Model

	width  int
	height int
}

func newModelDetailModel(client *api.Client, backendName string, endpoint domain.EndpointInfo) modelDetailModel {
	return modelDetailModel{
		client:      client,
		backendName: backendName,
		endpoint:    endpoint,
		sel:         present.DefaultSelection(nil),
		pending:     3,
		spinner:     newSpinner(),
	}
}

func (m modelDetailModel) Init() tea.Cmd {
	return tea.Batch(append(m.fetchAll(), m.spinner.Tick)...)
}

func (m modelDetailModel) fetchAll() []tea.Cmd {
	client := m.client
	endpoint := m.endpoint
	tag := fetchTag{endpoint: endpoint.EndpointName, gen: m.gen}

	return []tea.Cmd{
		func() tea.Msg {
			snap, err := client.LoadOverview(context.Background(), endpoint.EndpointName, "")
			if err != nil {
				return overviewErrorMsg{tag, err}
			}
			return overviewLoadedMsg{tag, snap}
		},
		func() tea.Msg {
			safety, err := client.LoadSafety(context.Background(), endpoint.ModelName)
			if err != nil {
				return safetyErrorMsg{tag, err}
			}
			return safetyLoadedMsg{tag, safety}
		},
		func() tea.Msg {
			health, err := client.LoadHealth(context.Background(), endpoint.ModelName)
			if err != nil {
				return healthErrorMsg{tag, err}
			}
			return healthLoadedMsg{tag, health}
		},
	}
}

// stale reports whether a fetch result was issued for a different endpoint
// or an earlier refresh than the view currently shows.
func (m modelDetailModel) stale(tag fetchTag) bool {
	return tag.endpoint != m.endpoint.EndpointName || tag.gen != m.gen
}

func (m modelDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case overviewLoadedMsg:
		if m.stale(msg.fetchTag) {
			return m, nil
		}
		m.pending--
		m.snap = msg.snap
		m.snapErr = nil
		// Reset the selection to the fresh snapshot's metric set; the
		// previous snapshot's metrics may no longer exist.
		m.sel = present.DefaultSelection(msg.snap).Clamp(msg.snap)

	case overviewErrorMsg:
		if m.stale(msg.fetchTag) {
			return m, nil
		}
		m.pending--
		m.snapErr = msg.err

	case safetyLoadedMsg:
		if m.stale(msg.fetchTag) {
			return m, nil
		}
		m.pending--
		m.safety = msg.safety
		m.safetyErr = nil

	case safetyErrorMsg:
		if m.stale(msg.fetchTag) {
			return m, nil
		}
		m.pending--
		m.safetyErr = msg.err

	case healthLoadedMsg:
		if m.stale(msg.fetchTag) {
			return m, nil
		}
		m.pending--
		m.health = msg.health
		m.healthErr = nil

	case healthErrorMsg:
		if m.stale(msg.fetchTag) {
			return m, nil
		}
		m.pending--
		m.healthErr = msg.err

	case spinner.TickMsg:
		if m.pending > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m modelDetailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		return m, func() tea.Msg { return navigateBackMsg{} }

	case "tab", "right", "l":
		m.tab = (m.tab + 1) % tabCount

	case "shift+tab", "left", "h":
		m.tab = (m.tab + tabCount - 1) % tabCount

	case "1":
		m.tab = tabPerformance
	case "2":
		m.tab = tabTrends
	case "3":
		m.tab = tabSafety
	case "4":
		m.tab = tabHealth

	case "s":
		m.sel.ShowRollingStats = !m.sel.ShowRollingStats

	case "+", "=":
		if m.sel.RollingWindow < present.MaxRollingWindow {
			m.sel.RollingWindow++
		}

	case "-":
		if m.sel.RollingWindow > present.MinRollingWindow {
			m.sel.RollingWindow--
		}

	case "n":
		m.sel.LastN = nextLastN(m.sel.LastN)
		m.sel = m.sel.Clamp(m.snap)

	case "a":
		m.sel.Slices = toggleSlices(m.sel.Slices, m.snap)

	case "r":
		m.gen++
		m.pending = 3
		m.snapErr, m.safetyErr, m.healthErr = nil, nil, nil
		return m, tea.Batch(append(m.fetchAll(), m.spinner.Tick)...)
	}

	return m, nil
}

// nextLastN advances the history depth to the next step in the cycle.
func nextLastN(current int) int {
	for i, step := range lastNSteps {
		if step == current {
			return lastNSteps[(i+1)%len(lastNSteps)]
		}
	}
	return lastNSteps[0]
}

// toggleSlices flips between the overall slice only and every slice the
// snapshot knows about.
func toggleSlices(current []string, snap *domain.OverviewSnapshot) []string {
	if snap == nil {
		return current
	}
	if len(current) == 1 && current[0] == domain.SliceOverall {
		return append([]string(nil), snap.MetricCards.Slices...)
	}
	return []string{domain.SliceOverall}
}

// --- View ---

func (m modelDetailModel) View() string {
	breadcrumb := m.endpoint.EndpointName + " > " + m.endpoint.ModelName
	header := components.Header(m.width, breadcrumb, m.backendName)

	bindings := []components.KeyBinding{
		{Key: "tab", Desc: "next tab"},
		{Key: "esc", Desc: "back"},
	}
	if m.tab == tabTrends {
		bindings = append(bindings,
			components.KeyBinding{Key: "s", Desc: "rolling stats"},
			components.KeyBinding{Key: "+/-", Desc: "window"},
			components.KeyBinding{Key: "n", Desc: "history"},
			components.KeyBinding{Key: "a", Desc: "slices"},
		)
	}
	bindings = append(bindings,
		components.KeyBinding{Key: "r", Desc: "refresh"},
		components.KeyBinding{Key: "q", Desc: "quit"},
	)
	footer := components.Footer(m.width, bindings)

	tabs := m.renderTabs()

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	tabsH := lipgloss.Height(tabs)
	contentH := m.height - headerH - footerH - tabsH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.pending > 0 {
		content = fmt.Sprintf("\n  %s Loading model snapshots...", m.spinner.View())
	} else {
		switch m.tab {
		case tabPerformance:
			content = m.renderPerformance()
		case tabTrends:
			content = m.renderTrends()
		case tabSafety:
			content = m.renderSafety()
		case tabHealth:
			content = m.renderHealth()
		}
	}

	lines := lipgloss.Height(content)
	if lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, footer)
}

func (m modelDetailModel) renderTabs() string {
	parts := make([]string, 0, int(tabCount))
	for t := tabPerformance; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t.label())
		if t == m.tab {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.TabInactive.Render(label))
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, " "))
}

func (m modelDetailModel) renderPerformance() string {
	if m.snapErr != nil {
		return "\n  " + styles.ErrorText.Render(m.snapErr.Error())
	}
	if m.snap == nil || !m.snap.HasData {
		return "\n  No evaluations recorded for this endpoint yet."
	}

	cards := present.BuildOverviewCards(m.snap)
	if len(cards) == 0 {
		return "\n  No overall-slice metrics in this snapshot."
	}

	cardWidth := m.width - 6
	if cardWidth > 76 {
		cardWidth = 76
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, m.renderCard(c, cardWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m modelDetailModel) renderCard(c present.Card, width int) string {
	name := c.DisplayName
	if name == "" {
		name = c.Name
	}

	title := styles.Label.Render(name) + "  " + styles.TrendGlyph(string(c.Trend))
	value := styles.Value.Bold(true).Render(fmt.Sprintf("%.3f", c.Value)) +
		styles.MutedText.Render(fmt.Sprintf("  threshold %.3f  n=%d  ", c.Threshold, c.SampleSize)) +
		styles.PassIndicator(c.Passed)

	body := []string{title, value}
	if len(c.Sparkline) >= 2 {
		body = append(body, components.Sparkline(c.Sparkline, width-6))
	}
	if c.Tooltip != "" {
		body = append(body, styles.MutedText.Render(c.Tooltip))
	}

	return styles.Card.Width(width).Render(strings.Join(body, "\n"))
}

func (m modelDetailModel) renderTrends() string {
	if m.snapErr != nil {
		return "\n  " + styles.ErrorText.Render(m.snapErr.Error())
	}
	if m.snap == nil || !m.snap.HasData {
		return "\n  No evaluations recorded for this endpoint yet."
	}

	sel := m.sel.Clamp(m.snap)
	series, err := present.BuildTimeSeries(m.snap, sel)
	if err != nil {
		return "\n  " + styles.ErrorText.Render(err.Error())
	}
	if len(series) == 0 {
		return "\n  Nothing selected."
	}

	settings := fmt.Sprintf("  history: %s   rolling: %s (window %d)   slices: %d",
		lastNLabel(sel.LastN), onOff(sel.ShowRollingStats), sel.RollingWindow, len(sel.Slices))

	chartWidth := m.width - 4
	parts := []string{styles.MutedText.Render(settings)}
	for _, group := range groupSeries(series) {
		parts = append(parts, components.SeriesChart(group[0].Label, group, chartWidth))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// groupSeries splits the flat series list into chart groups: each raw
// series carries its rolling overlays with it.
func groupSeries(series []present.Series) [][]present.Series {
	var groups [][]present.Series
	for _, s := range series {
		if s.Kind == present.SeriesRaw || len(groups) == 0 {
			groups = append(groups, []present.Series{s})
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], s)
	}
	return groups
}

func lastNLabel(n int) string {
	if n == 0 {
		return "all"
	}
	return fmt.Sprintf("last %d", n)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m modelDetailModel) renderSafety() string {
	if m.safetyErr != nil {
		return "\n  " + styles.ErrorText.Render(m.safetyErr.Error())
	}
	if m.safety == nil {
		return "\n  No safety snapshot available."
	}

	evaluated := "never"
	if m.safety.LastEvaluated != nil {
		evaluated = m.safety.LastEvaluated.Format(time.RFC1123)
	}
	recency := styles.ErrorText.Render("stale")
	if m.safety.IsRecentlyEvaluated {
		recency = styles.SuccessText.Render("recent")
	}

	head := []string{
		styles.Label.Render("Overall status  ") + styles.HealthStyle(strings.ToLower(m.safety.OverallStatus)).Render(m.safety.OverallStatus),
		styles.Label.Render("Last evaluated  ") + styles.Value.Render(evaluated) + "  " + recency,
		"",
	}

	rows := []string{styles.TableHeader.Render(fmt.Sprintf("  %-32s %-10s %-10s %s", "METRIC", "VALUE", "THRESHOLD", "STATUS"))}
	for _, metric := range m.safety.Metrics {
		rows = append(rows, styles.TableCell.Render(
			fmt.Sprintf("  %-32s %-10.3f %-10.3f %s",
				metric.Label(), metric.Value, metric.Threshold, styles.PassIndicator(metric.Passed)),
		))
	}
	if len(m.safety.Metrics) == 0 {
		rows = append(rows, styles.MutedText.Render("  no safety metrics reported"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(head, rows...)...)
}

func (m modelDetailModel) renderHealth() string {
	if m.healthErr != nil {
		return "\n  " + styles.ErrorText.Render(m.healthErr.Error())
	}
	if m.health == nil {
		return "\n  No health snapshot available."
	}

	head := []string{
		styles.Label.Render("Last evaluated  ") + styles.Value.Render(m.health.LastEvaluated.Format(time.RFC1123)),
		"",
	}

	rows := []string{styles.TableHeader.Render(fmt.Sprintf("  %-32s %-12s %-8s %s", "CHECK", "VALUE", "UNIT", "STATUS"))}
	for _, metric := range m.health.Metrics {
		rows = append(rows, styles.TableCell.Render(
			fmt.Sprintf("  %-32s %-12.2f %-8s %s",
				metric.Name, metric.Value, metric.Unit,
				styles.HealthStyle(metric.Status).Render(metric.Status)),
		))
	}
	if len(m.health.Metrics) == 0 {
		rows = append(rows, styles.MutedText.Render("  no health checks reported"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(head, rows...)...)
}
