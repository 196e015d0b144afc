package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var infoBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("69")).
	Padding(1, 2)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show information about this tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := lipgloss.NewStyle().Bold(true).Render("aix - Git Repository Analysis Agent") + "\n\n" +
				"Features:\n" +
				"  - Git metrics collection via declarative report definitions\n" +
				"  - Derived lifetime and recent activity metrics\n" +
				"  - Rule-based warnings with recommended actions\n" +
				"  - LLM-generated narrative insights\n" +
				"  - Markdown, JSON, and XML report output"
			fmt.Fprintln(os.Stdout, infoBoxStyle.Render(body))
			return nil
		},
	}
}
