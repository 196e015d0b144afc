package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available report definitions",
		RunE:  runList,
	}
	cmd.Flags().String("reports-dir", "reports", "Directory holding extra report definitions")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	reportsDir, _ := cmd.Flags().GetString("reports-dir")

	entries, skipped := definition.Discover(reportsDir)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSOURCE\tDESCRIPTION")
	for _, e := range entries {
		source := "built-in"
		if e.Path != "" {
			source = filepath.Base(e.Path)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Def.Name, source, e.Def.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, msg := range skipped {
		fmt.Fprintf(os.Stderr, "warning: skipping definition %s\n", msg)
	}

	fmt.Fprintf(os.Stderr, "\nFound %d report(s)\n", len(entries))
	return nil
}
