package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bhadzhiev/uv-aix-agent/internal/codestats"
	"github.com/bhadzhiev/uv-aix-agent/internal/collect"
	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
	"github.com/bhadzhiev/uv-aix-agent/internal/insight"
	"github.com/bhadzhiev/uv-aix-agent/internal/license"
	"github.com/bhadzhiev/uv-aix-agent/internal/metrics"
	"github.com/bhadzhiev/uv-aix-agent/internal/model"
	"github.com/bhadzhiev/uv-aix-agent/internal/output"
	"github.com/bhadzhiev/uv-aix-agent/internal/remote"
	"github.com/bhadzhiev/uv-aix-agent/internal/rules"
	"github.com/bhadzhiev/uv-aix-agent/internal/ui"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [report]",
		Short: "Execute a repository analysis report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
	cmd.Flags().String("dir", ".", "Repository directory or clone URL to analyze")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("format", "markdown", "Output format (markdown, json, xml)")
	cmd.Flags().String("reports-dir", "reports", "Directory holding extra report definitions")
	cmd.Flags().Bool("no-insights", false, "Skip LLM insight generation")
	cmd.Flags().Bool("no-scan", false, "Skip code statistics and license detection")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose progress output")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dir, _ := cmd.Flags().GetString("dir")
	outPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	reportsDir, _ := cmd.Flags().GetString("reports-dir")
	noInsights, _ := cmd.Flags().GetBool("no-insights")
	noScan, _ := cmd.Flags().GetBool("no-scan")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if format != "markdown" && format != "json" && format != "xml" {
		return fmt.Errorf("unsupported format: %s (use markdown, json, or xml)", format)
	}

	source := dir
	if remote.IsURL(dir) {
		fmt.Fprintf(os.Stderr, "Cloning %s...\n", dir)
		cloned, cleanup, err := remote.Clone(ctx, dir, remote.Token())
		if err != nil {
			return err
		}
		defer cleanup()
		dir = cloned
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	if err := collect.VerifyRepository(dir); err != nil {
		return fmt.Errorf("%s is not a git repository: %w", dir, err)
	}
	if !remote.IsURL(source) {
		source = dir
	}

	var requested string
	if len(args) > 0 {
		requested = args[0]
	}
	def, err := selectDefinition(reportsDir, requested)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Running report: %s (%s)\n", def.Name, dir)

	ui.Step(os.Stderr, 1, "Collecting repository data...")
	ms := collectMetrics(ctx, dir, def, verbose)

	ui.Step(os.Stderr, 2, "Calculating derived metrics...")
	lifetime, recent := metrics.Calculate(ms)

	ui.Step(os.Stderr, 3, "Evaluating warning rules...")
	warnings := rules.Evaluate(rules.Facts{
		Metrics:  ms,
		Lifetime: lifetime,
		Recent:   recent,
	}, def.Rules)

	report := model.Report{
		ID:          uuid.NewString(),
		Name:        def.Name,
		Version:     def.Version,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RepoPath:    source,
		Repository:  ms,
		Lifetime:    lifetime,
		Recent:      recent,
		Warnings:    warnings,
		Errors:      ms.Errors(),
	}

	if !noScan {
		ui.Step(os.Stderr, 4, "Scanning codebase...")
		report.License = license.Detect(dir)
		if stats, err := codestats.New().Scan(ctx, dir); err == nil {
			report.Codebase = stats
		} else if verbose {
			fmt.Fprintf(os.Stderr, "warning: code scan failed: %v\n", err)
		}
	}

	if !noInsights {
		ui.Step(os.Stderr, 5, "Generating insights...")
		attachInsights(ctx, &report, def)
	}

	ui.Step(os.Stderr, 6, "Formatting report...")
	if err := writeReport(report, format, outPath); err != nil {
		return err
	}

	ui.PrintSummary(os.Stderr, report)
	return nil
}

// collectMetrics runs the collection phase with a TUI progress bar on a
// terminal and plain line output otherwise.
func collectMetrics(ctx context.Context, dir string, def *definition.Definition, verbose bool) *model.MetricSet {
	if !ui.IsTTY() {
		plain := ui.NewPlainProgress(func(msg string) {
			if verbose {
				fmt.Fprintln(os.Stderr, msg)
			}
		})
		collector := collect.New(dir, collect.WithProgress(func(completed, total int, name string) {
			plain.Update(completed, total, name)
		}))
		ms := collector.Collect(ctx, def)
		if verbose {
			plain.Done(ms.Len())
		}
		return ms
	}

	return collectWithProgram(ctx, dir, def, ui.RunTUI(len(def.Commands)))
}

// progressProgram is the slice of tea.Program that collection needs.
type progressProgram interface {
	Send(msg tea.Msg)
	Run() (tea.Model, error)
}

// collectWithProgram runs collection in a goroutine that feeds progress
// messages to prog while prog.Run drives the display. It returns only
// after the collector goroutine finishes: Run may come back early with an
// error when the terminal cannot be driven, and the metric set must not
// be read before collection is done.
func collectWithProgram(ctx context.Context, dir string, def *definition.Definition, prog progressProgram, opts ...collect.Option) *model.MetricSet {
	done := make(chan struct{})
	var ms *model.MetricSet
	go func() {
		defer close(done)
		opts := append(opts, collect.WithProgress(func(completed, total int, name string) {
			prog.Send(ui.ProgressMsg{Completed: completed, Total: total, Command: name})
		}))
		collector := collect.New(dir, opts...)
		ms = collector.Collect(ctx, def)
		prog.Send(ui.DoneMsg{})
	}()
	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: progress display failed: %v\n", err)
	}
	<-done
	return ms
}

// selectDefinition resolves which report definition to run: by name or
// path when requested, interactively when several are available on a
// terminal, and the built-in default otherwise.
func selectDefinition(reportsDir, requested string) (*definition.Definition, error) {
	entries, skipped := definition.Discover(reportsDir)
	for _, msg := range skipped {
		fmt.Fprintf(os.Stderr, "warning: skipping definition %s\n", msg)
	}

	if requested != "" {
		for _, e := range entries {
			if e.Def.Name == requested || (e.Path != "" && (filepath.Base(e.Path) == requested || e.Path == requested)) {
				return e.Def, nil
			}
		}
		// Allow a direct path outside the reports directory.
		if def, err := definition.Load(requested); err == nil {
			return def, nil
		}
		return nil, fmt.Errorf("report %q not found (run 'aix list' to see available reports)", requested)
	}

	if len(entries) > 1 && ui.IsTTY() {
		options := make([]huh.Option[int], len(entries))
		for i, e := range entries {
			label := e.Def.Name
			if e.Path == "" {
				label += " (built-in)"
			}
			options[i] = huh.NewOption(label, i)
		}

		var choice int
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select a report").
				Options(options...).
				Value(&choice),
		))
		if err := form.Run(); err != nil {
			return nil, fmt.Errorf("select report: %w", err)
		}
		return entries[choice].Def, nil
	}

	return entries[0].Def, nil
}

// attachInsights serializes the report so far, asks the configured
// generator for narrative analysis, and attaches the result. Failures
// are reported on stderr and otherwise ignored.
func attachInsights(ctx context.Context, report *model.Report, def *definition.Definition) {
	gen, err := insight.FromEnvironment(def.Agent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: insights unavailable: %v\n", err)
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: insights unavailable: %v\n", err)
		return
	}

	insights, err := gen.Generate(ctx, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: insight generation failed: %v\n", err)
		return
	}
	report.Insights = insights
}

func writeReport(report model.Report, format, outPath string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch format {
	case "json":
		err = output.WriteJSON(w, report)
	case "xml":
		err = output.WriteXML(w, report)
	default:
		err = output.WriteMarkdown(w, report)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if outPath != "" {
		fmt.Fprintf(os.Stderr, "Report saved to: %s\n", outPath)
	}
	return nil
}
