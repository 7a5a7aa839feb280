package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tuisplit/tuisplit/internal/config"
	"github.com/tuisplit/tuisplit/internal/run"
	"github.com/tuisplit/tuisplit/internal/split"
	"github.com/tuisplit/tuisplit/internal/splitsfile"
	"github.com/tuisplit/tuisplit/internal/store"
	"github.com/tuisplit/tuisplit/internal/timing"
)

// refreshInterval drives the display clock.
const refreshInterval = 16 * time.Millisecond

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model implements the Bubble Tea timer UI.
type Model struct {
	timer      *run.Timer
	cfg        config.FileConfig
	store      *store.Store
	splitsPath string

	rowCfg split.RowConfig

	attemptStart time.Time

	width  int
	height int
}

// NewModel constructs a timer TUI model.
func NewModel(timer *run.Timer, cfg config.FileConfig, st *store.Store, splitsPath string) *Model {
	m := &Model{
		timer:      timer,
		cfg:        cfg,
		store:      st,
		splitsPath: splitsPath,
	}
	m.rowCfg = split.RowConfig{
		Split:       &m.cfg.Format.Split,
		Segment:     &m.cfg.Format.Segment,
		SplitFormat: cfg.General.SplitFormat,
		UseGameTime: cfg.General.TimingMethod == "game-time",
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.abandonAttempt()
		return m, tea.Quit
	case tea.KeySpace:
		m.handleSplit()
		return m, nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.abandonAttempt()
			return m, tea.Quit
		case "u":
			m.timer.UndoSplit()
		case "k":
			m.timer.SkipSplit()
		case "p":
			m.timer.TogglePause()
		case "r":
			m.handleReset()
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleSplit() {
	switch m.timer.Phase() {
	case run.NotRunning:
		m.timer.Start()
		m.attemptStart = time.Now()
	case run.Running:
		m.timer.Split()
	}
}

// handleReset finalizes the attempt: history goes to the store, new
// golds and PBs back into the splits file.
func (m *Model) handleReset() {
	if m.timer.Phase() == run.NotRunning {
		return
	}
	completed := m.timer.Phase() == run.Ended
	m.saveAttempt(completed)
	m.timer.Reset()
}

// abandonAttempt persists a run in progress before quitting.
func (m *Model) abandonAttempt() {
	if m.timer.Phase() == run.NotRunning {
		return
	}
	m.saveAttempt(m.timer.Phase() == run.Ended)
	m.timer.Reset()
}

func (m *Model) saveAttempt(completed bool) {
	r := m.timer.Run()
	duration := m.timer.CurrentAttemptDuration()

	if m.store != nil {
		attempt := store.Attempt{
			RunKey:     r.Key(),
			StartedAt:  m.attemptStart,
			EndedAt:    time.Now(),
			DurationMs: duration.Millis(),
			Completed:  completed,
			Method:     m.cfg.General.TimingMethod,
		}
		segments := attemptSegments(r)
		if _, err := m.store.InsertAttempt(context.Background(), attempt, segments); err != nil {
			logErrf("failed to save attempt: %v\n", err)
		}
	}

	if r.RecordAttempt(completed) && m.splitsPath != "" {
		if err := splitsfile.Save(m.splitsPath, r); err != nil {
			logErrf("failed to save splits file: %v\n", err)
		}
	}
}

// attemptSegments flattens the run's live splits for the store.
// Skipped segments keep zero times.
func attemptSegments(r *run.Run) []store.AttemptSegment {
	segments := make([]store.AttemptSegment, 0, len(r.Segments))
	var prev timing.Span
	known := true
	for i := range r.Segments {
		seg := &r.Segments[i]
		out := store.AttemptSegment{Idx: i, Name: seg.Name}
		if cumulative := seg.SplitTime.RealTime; cumulative != nil {
			out.SplitMs = cumulative.Millis()
			if known {
				out.SegmentMs = cumulative.SubClamped(prev).Millis()
			}
			prev = *cumulative
			known = true
		} else {
			known = false
		}
		segments = append(segments, out)
	}
	return segments
}

// View implements tea.Model.
func (m *Model) View() string {
	r := m.timer.Run()
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Game))
	b.WriteString("\n")
	b.WriteString(categoryStyle.Render(r.Category))
	b.WriteString("\n\n")

	rows := split.BuildRows(m.timer, m.rowCfg)
	b.WriteString(renderRows(rows, m.rowWidth()))
	b.WriteString("\n")

	b.WriteString(m.renderSegmentInfo())
	b.WriteString("\n\n")
	b.WriteString(m.renderClock(rows))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("space split · u undo · k skip · p pause · r reset · q quit"))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

func (m *Model) rowWidth() int {
	width := 42
	if m.width > 0 && m.width-8 < width {
		width = m.width - 8
	}
	if width < 20 {
		width = 20
	}
	return width
}

// renderSegmentInfo shows the in-progress segment's own baselines.
func (m *Model) renderSegmentInfo() string {
	seg := m.timer.CurrentSegment()
	if seg == nil {
		return ""
	}
	method := m.timer.CurrentTimingMethod()

	gold := seg.BestSegment.For(method)
	comparison := seg.Comparison(m.timer.CurrentComparison()).For(method)

	// The comparison is cumulative; show this segment's own share.
	var segComparison *timing.Span
	if comparison != nil {
		prev := timing.Span(0)
		if idx := m.timer.CurrentSplitIndex(); idx > 0 {
			if p := m.timer.Run().Segments[idx-1].Comparison(m.timer.CurrentComparison()).For(method); p != nil {
				prev = *p
			}
		}
		segComparison = comparison.Sub(prev).Abs().Ptr()
	}

	spec := &m.cfg.Format.Segment
	parts := []string{
		infoLabelStyle.Render("Best: ") + infoValueStyle.Render(formatInfo(gold, spec)),
		infoLabelStyle.Render("PB: ") + infoValueStyle.Render(formatInfo(segComparison, spec)),
	}
	return strings.Join(parts, "  ")
}

func formatInfo(span *timing.Span, spec *timing.FormatSpec) string {
	pattern := spec.Pattern()
	if span != nil {
		pattern = spec.PatternFor(*span)
	}
	return timing.FormatOpt(span, pattern)
}

// renderClock draws the big attempt readout, colored by the current
// row's classification.
func (m *Model) renderClock(rows []split.Row) string {
	attempt := m.timer.CurrentAttemptDuration()
	pattern := m.cfg.Format.Timer.PatternFor(attempt)
	readout := timing.FormatSigned(attempt, pattern)

	color := neutralStyle.GetForeground()
	switch m.timer.Phase() {
	case run.Running, run.Paused, run.Ended:
		color = m.clockColorFrom(rows)
	}
	style := timerStyle.Foreground(color)

	// The fraction reads as a smaller unit, so it gets the dimmer
	// weight while the whole-second part stays bold.
	out := style.Render(readout)
	if dot := strings.IndexByte(readout, '.'); dot >= 0 {
		out = style.Render(readout[:dot]) + style.Bold(false).Faint(true).Render(readout[dot:])
	}
	if m.timer.Phase() == run.Paused {
		out += " " + pausedBadgeStyle.Render("paused")
	}
	return out
}

// clockColorFrom picks the clock color: the live row's classification
// when it has one, otherwise green while ahead of the comparison.
func (m *Model) clockColorFrom(rows []split.Row) lipgloss.TerminalColor {
	for _, row := range rows {
		if row.Current && row.Class != split.None {
			return classStyle(row.Class).GetForeground()
		}
	}
	if m.timer.Phase() == run.Ended {
		for i := len(rows) - 1; i >= 0; i-- {
			if rows[i].Class != split.None {
				return classStyle(rows[i].Class).GetForeground()
			}
		}
	}
	return aheadGainStyle.GetForeground()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
