// internal/output/markdown.go
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

// WriteMarkdown writes the report as GitHub-flavored markdown to w.
func WriteMarkdown(w io.Writer, report model.Report) error {
	fmt.Fprintf(w, "# %s\n\n", report.Name)
	fmt.Fprintf(w, "**Repository:** %s\n", report.RepoPath)
	if report.License != "" {
		fmt.Fprintf(w, "**License:** %s\n", report.License)
	}
	fmt.Fprintf(w, "**Generated:** %s\n", report.GeneratedAt)
	fmt.Fprintf(w, "**Report ID:** %s\n\n", report.ID)

	// Raw collected metrics, in collection order
	fmt.Fprintf(w, "## Repository Data\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	for _, name := range report.Repository.Names() {
		fmt.Fprintf(w, "| %s | %s |\n", name, report.Repository.Get(name).Text())
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "## Lifetime Metrics\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|------:|\n")
	fmt.Fprintf(w, "| commits_per_author | %.2f |\n", report.Lifetime.CommitsPerAuthor)
	fmt.Fprintf(w, "| merge_commit_ratio | %.2f |\n", report.Lifetime.MergeCommitRatio)
	fmt.Fprintf(w, "| repo_age_days | %d |\n\n", report.Lifetime.RepoAgeDays)

	fmt.Fprintf(w, "## Recent Metrics\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|------:|\n")
	fmt.Fprintf(w, "| commit_velocity | %.2f |\n", report.Recent.CommitVelocity)
	fmt.Fprintf(w, "| change_density | %.2f |\n", report.Recent.ChangeDensity)
	fmt.Fprintf(w, "| author_participation_rate | %.2f |\n\n", report.Recent.AuthorParticipationRate)

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "## Warnings\n\n")
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "### %s: %s\n\n", strings.ToUpper(string(warn.Severity)), warn.Title)
			fmt.Fprintf(w, "%s (`%s`)\n\n", warn.Description, warn.ID)
			for _, a := range warn.Actions {
				fmt.Fprintf(w, "- **%s**: %s\n", a.Priority, a.Description)
			}
			fmt.Fprintln(w)
		}
	}

	if report.Insights != nil {
		fmt.Fprintf(w, "## Insights\n\n")
		fmt.Fprintf(w, "%s\n\n", report.Insights.Summary)
		if len(report.Insights.Risks) > 0 {
			fmt.Fprintf(w, "### Risks\n\n")
			for _, r := range report.Insights.Risks {
				fmt.Fprintf(w, "- %s\n", r)
			}
			fmt.Fprintln(w)
		}
		if len(report.Insights.Improvements) > 0 {
			fmt.Fprintf(w, "### Improvements\n\n")
			for _, im := range report.Insights.Improvements {
				fmt.Fprintf(w, "- %s\n", im)
			}
			fmt.Fprintln(w)
		}
	}

	if report.Codebase != nil {
		fmt.Fprintf(w, "## Codebase\n\n")
		fmt.Fprintf(w, "| Language | Files | Code | Comments | Blanks | Complexity |\n")
		fmt.Fprintf(w, "|----------|------:|-----:|---------:|-------:|-----------:|\n")
		for _, lang := range report.Codebase.Languages {
			fmt.Fprintf(w, "| %s | %d | %d | %d | %d | %d |\n",
				lang.Name, lang.Files, lang.Code, lang.Comments, lang.Blanks, lang.Complexity)
		}
		t := report.Codebase.Totals
		fmt.Fprintf(w, "| **Total** | %d | %d | %d | %d | %d |\n\n",
			t.Files, t.Code, t.Comments, t.Blanks, t.Complexity)
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "## Errors\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "- %s\n", e)
		}
		fmt.Fprintln(w)
	}

	return nil
}
