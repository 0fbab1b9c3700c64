package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gradelint/internal/check"
)

type progressModel struct {
	title   string
	events  <-chan check.Event
	spinner spinner.Model
	prog    progress.Model
	items   []checkItem
	index   map[string]int
	width   int
	done    bool
}

type checkItem struct {
	name     string
	status   check.Status
	problems int
	elapsed  time.Duration
}

type eventMsg check.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders the progress of
// a check run. The model quits when events is closed.
func NewProgressModel(title string, checks []string, events <-chan check.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]checkItem, 0, len(checks))
	index := make(map[string]int, len(checks))
	for i, name := range checks {
		items = append(items, checkItem{name: name, status: check.StatusQueued})
		index[name] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(check.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 8
	detailWidth := 20
	nameWidth := max(m.width-statusWidth-detailWidth-6, 20)

	for _, item := range m.items {
		name := truncate(item.name, nameWidth)
		pad := strings.Repeat(" ", max(nameWidth-runewidth.StringWidth(name), 0))
		status := styleStatus(item.status).Render(fmt.Sprintf("%8s", item.status))
		fmt.Fprintf(&b, "  %s %s%s %s\n", status, name, pad, item.detail())
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (it checkItem) detail() string {
	switch it.status {
	case check.StatusDone:
		return fmt.Sprintf("%d problems, %s", it.problems, it.elapsed.Round(time.Millisecond))
	case check.StatusFailed:
		return "engine error"
	default:
		return ""
	}
}

func (m *progressModel) finished() int {
	n := 0
	for _, it := range m.items {
		if it.status == check.StatusDone || it.status == check.StatusFailed {
			n++
		}
	}
	return n
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev check.Event) tea.Cmd {
	idx, ok := m.index[ev.Check]
	if !ok {
		return nil
	}
	it := &m.items[idx]
	it.status = ev.Status
	it.problems = ev.Problems
	it.elapsed = ev.Elapsed
	return m.prog.SetPercent(float64(m.finished()) / float64(len(m.items)))
}

func styleStatus(status check.Status) lipgloss.Style {
	switch status {
	case check.StatusDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case check.StatusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case check.StatusRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
