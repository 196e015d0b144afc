// internal/ui/summary.go
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	xterm "golang.org/x/term"

	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

var (
	stepStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	severityStyles = map[model.Severity]lipgloss.Style{
		model.SeverityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		model.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		model.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
)

// Step prints a numbered pipeline phase header to w.
func Step(w io.Writer, n int, msg string) {
	fmt.Fprintf(w, "%s %s\n", stepStyle.Render(fmt.Sprintf("Step %d:", n)), msg)
}

// PrintSummary writes the human-readable run summary to w: key repository
// facts followed by the triggered warnings styled by severity. Long lines
// are cut to the terminal width so the summary survives narrow panes.
func PrintSummary(w io.Writer, report model.Report) {
	width := terminalWidth()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", stepStyle.Render("Summary"))
	fmt.Fprintf(w, "  Repository: %s\n", report.Repository.Get("repo_name").Text())
	fmt.Fprintf(w, "  Branch: %s\n", report.Repository.Get("current_branch").Text())
	fmt.Fprintf(w, "  Total commits: %s\n", report.Repository.Get("total_commits").Text())
	fmt.Fprintf(w, "  Authors: %s\n", report.Repository.Get("total_authors").Text())
	fmt.Fprintf(w, "  Warnings: %d\n", len(report.Warnings))

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warn := range report.Warnings {
			style, ok := severityStyles[warn.Severity]
			if !ok {
				style = dimStyle
			}
			label := style.Render(severityLabel(warn.Severity))
			fmt.Fprintf(w, "  %s %s\n", label, truncate(warn.Title, width-12))
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(fmt.Sprintf("%d collection errors (see report)", len(report.Errors))))
	}
}

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return "HIGH:"
	case model.SeverityMedium:
		return "MEDIUM:"
	case model.SeverityLow:
		return "LOW:"
	default:
		return string(s) + ":"
	}
}

func terminalWidth() int {
	width, _, err := xterm.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
