// Package ui provides progress display and console summaries for report runs.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// IsTTY returns true if stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stderr.Fd())
}

// --- Plain text fallback ---

// PlainProgress prints progress messages to a callback function.
// Used when stderr is not a TTY (e.g., piped output).
type PlainProgress struct {
	print func(string)
}

// NewPlainProgress creates a new PlainProgress with the given print callback.
func NewPlainProgress(print func(string)) *PlainProgress {
	return &PlainProgress{print: print}
}

// Update prints a progress message for a completed collection command.
func (p *PlainProgress) Update(completed, total int, command string) {
	p.print(fmt.Sprintf("[%d/%d] Collected %s", completed, total, command))
}

// Done prints a completion message.
func (p *PlainProgress) Done(total int) {
	p.print(fmt.Sprintf("Done! Collected %d metrics.", total))
}

// --- TUI progress ---

// ProgressMsg is sent to the bubbletea program when a collection command
// completes.
type ProgressMsg struct {
	Completed int
	Total     int
	Command   string
}

// DoneMsg is sent to the bubbletea program when collection finishes.
type DoneMsg struct{}

type progressModel struct {
	progress  progress.Model
	completed int
	total     int
	command   string
	done      bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewTUIModel creates a new bubbletea model for the collection progress TUI.
func NewTUIModel(total int) progressModel {
	return progressModel{
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(50),
			progress.WithoutPercentage(),
		),
		total: total,
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
	case ProgressMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		m.command = msg.Command
		pct := float64(m.completed) / float64(m.total)
		return m, m.progress.SetPercent(pct)
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return fmt.Sprintf("\n  %s\n\n",
			titleStyle.Render(fmt.Sprintf("Done! Collected %d metrics.", m.total)))
	}

	pad := strings.Repeat(" ", 2)
	counter := infoStyle.Render(fmt.Sprintf("%d/%d", m.completed, m.total))
	desc := m.command
	if desc == "" {
		desc = "Starting..."
	}

	return "\n" +
		pad + titleStyle.Render("Collecting repository data") + "\n" +
		pad + m.progress.View() + "  " + counter + "\n" +
		pad + infoStyle.Render("Executing: "+desc) + "\n\n"
}

// RunTUI creates and returns a bubbletea program for the progress TUI.
// The program outputs to stderr so the report on stdout stays clean.
func RunTUI(total int) *tea.Program {
	m := NewTUIModel(total)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	return p
}
