// Package progressui provides the Bubble Tea attack progress interface.
package progressui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/dante-signal31/cifra/internal/model"
)

const (
	refreshInterval = 100 * time.Millisecond
	maxBarWidth     = 60
	minBarWidth     = 10
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cancelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type tickMsg time.Time

type resultMsg struct {
	err error
}

// Model implements the Bubble Tea attack progress UI.
type Model struct {
	title   string
	tracker *Tracker
	cancel  context.CancelFunc
	result  <-chan error

	spinner spinner.Model
	bar     progress.Model
	event   model.ProgressEvent

	width    int
	quitting bool
	finished bool
	err      error
}

// NewModel constructs a progress UI model over a running attack. The
// cancel function stops the attack; its result is read from result.
func NewModel(title string, tracker *Tracker, cancel context.CancelFunc, result <-chan error) *Model {
	return &Model{
		title:   title,
		tracker: tracker,
		cancel:  cancel,
		result:  result,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		bar:     progress.New(progress.WithGradient("#6E6E6E", "#C89A3A")),
		event:   tracker.Snapshot(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scheduleTick(), m.waitForResult)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = barWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			// Cancel and keep running until the attack acknowledges,
			// so its goroutine never outlives the program.
			m.quitting = true
			m.cancel()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		m.event = m.tracker.Snapshot()
		return m, scheduleTick()
	case resultMsg:
		m.finished = true
		m.err = msg.err
		m.event = m.tracker.Snapshot()
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.event.Total > 0 {
		percent := float64(m.event.Done) / float64(m.event.Total)
		if percent > 1 {
			percent = 1
		}
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString("\n")
	}
	b.WriteString(counterStyle.Render(m.statusLine()))
	b.WriteString("\n")
	if m.quitting {
		b.WriteString(cancelStyle.Render("cancelling..."))
	} else {
		b.WriteString(helpStyle.Render("press q to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) statusLine() string {
	tried := fmt.Sprintf("%d keys tried", m.event.Done)
	if m.event.Total > 0 {
		tried = fmt.Sprintf("%d of %d keys tried", m.event.Done, m.event.Total)
	}
	return fmt.Sprintf("%s · %s", tried, m.event.Elapsed.Round(time.Second))
}

func (m *Model) waitForResult() tea.Msg {
	return resultMsg{err: <-m.result}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func barWidth(total int) int {
	w := total - 4
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

// Run executes attack behind a live progress view, or directly when
// stdout is not a terminal. The returned error is the attack's own;
// cancelling from the view surfaces context.Canceled.
func Run(ctx context.Context, title string, tracker *Tracker, attack func(context.Context) error) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return attack(ctx)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- attack(ctx) }()

	program := tea.NewProgram(NewModel(title, tracker, cancel, result), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		cancel()
		<-result
		return fmt.Errorf("failed to run progress view: %w", err)
	}
	return final.(*Model).err
}
