// Package historyui provides the Bubble Tea attempt-history interface.
package historyui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuisplit/tuisplit/internal/stats"
	"github.com/tuisplit/tuisplit/internal/store"
	"github.com/tuisplit/tuisplit/internal/timing"
)

const durationPattern = "h:m:s.dd"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	store  *store.Store
	runKey string

	attempts []store.Attempt
	errMsg   string

	table table.Model

	width  int
	height int
}

// NewModel constructs a history UI model. An empty runKey lists
// attempts across all runs.
func NewModel(st *store.Store, runKey string) *Model {
	m := &Model{
		store:  st,
		runKey: runKey,
	}
	m.table = buildAttemptTable(nil, runKey == "", 0, 1)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := headerStyle.Render("↑/↓ scroll · g/G top/bottom · q quit")
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg) + "\n" + footer
	}
	return strings.Join([]string{header, m.table.View(), footer}, "\n")
}

func (m *Model) refresh() {
	attempts, err := m.store.ListAttempts(context.Background(), m.runKey)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load attempts: %v", err)
		return
	}
	m.attempts = attempts
	m.errMsg = ""
	m.updateLayout()
}

func (m *Model) updateLayout() {
	width := m.width
	height := m.height - m.headerHeight() - m.footerHeight()
	if height < 2 {
		height = 2
	}
	m.table = buildAttemptTable(m.attempts, m.runKey == "", width, height)
	m.table.Focus()
}

func (m *Model) headerHeight() int {
	h := lipgloss.Height(titleStyle.Render("X")) + 1
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) footerHeight() int {
	if m.errMsg != "" {
		return 2
	}
	return 1
}

func (m *Model) renderHeader() string {
	title := "History"
	if m.runKey != "" {
		title = m.runKey
	}
	summary := headerStyle.Render(fmt.Sprintf("%d attempts · %.0f%% completed",
		len(m.attempts), stats.CompletionRate(m.attempts)*100))
	return titleStyle.Render(title) + "\n" + summary
}

func buildAttemptTable(attempts []store.Attempt, showRun bool, width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Date", Width: 17},
		{Title: "Duration", Width: 12},
		{Title: "Done", Width: 4},
	}
	if showRun {
		columns = append(columns, table.Column{Title: "Run", Width: maxInt(8, width-44)})
	}
	rows := make([]table.Row, 0, len(attempts))
	for _, a := range attempts {
		done := ""
		if a.Completed {
			done = "✓"
		}
		row := table.Row{
			fmt.Sprintf("%d", a.ID),
			a.StartedAt.Local().Format("2006-01-02 15:04"),
			timing.Format(timing.Span(a.DurationMs), durationPattern),
			done,
		}
		if showRun {
			row = append(row, a.RunKey)
		}
		rows = append(rows, row)
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(attemptTableStyles())
	return t
}

func attemptTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
