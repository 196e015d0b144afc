// internal/metrics/metrics.go
package metrics

import (
	"math"
	"time"

	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

const dateLayout = "2006-01-02"

// Calculate computes the derived metrics from raw collected values. Every
// formula degrades to zero when a denominator is zero or an input is missing
// or non-numeric; a bad raw value never aborts the run.
func Calculate(ms *model.MetricSet) (model.LifetimeMetrics, model.RecentMetrics) {
	totalCommits := number(ms, "total_commits")
	totalAuthors := number(ms, "total_authors")
	mergeCommits := number(ms, "merge_commits")
	commits7d := number(ms, "commits_7d")
	authors7d := number(ms, "authors_7d")
	filesChanged7d := number(ms, "files_changed_7d")

	lifetime := model.LifetimeMetrics{
		CommitsPerAuthor: ratio(totalCommits, totalAuthors),
		MergeCommitRatio: ratio(mergeCommits, totalCommits),
		RepoAgeDays:      ageDays(ms.Get("first_commit_date"), ms.Get("latest_commit_date")),
	}

	recent := model.RecentMetrics{
		CommitVelocity:          ratio(commits7d, 7),
		ChangeDensity:           ratio(filesChanged7d, commits7d),
		AuthorParticipationRate: ratio(authors7d, totalAuthors),
	}

	return lifetime, recent
}

// number reads a metric as a float64, treating missing and string values
// as zero.
func number(ms *model.MetricSet, name string) float64 {
	f, ok := ms.Get(name).Float()
	if !ok {
		return 0
	}
	return f
}

// ratio returns a/b rounded to two decimals, or 0 when b is zero.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return round2(a / b)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ageDays returns the number of days between the first and latest commit
// dates. Missing or unparseable dates yield 0, as does a latest date that
// somehow precedes the first.
func ageDays(first, latest model.Value) int {
	if first.Kind() != model.KindString || latest.Kind() != model.KindString {
		return 0
	}
	start, err := time.Parse(dateLayout, first.Text())
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, latest.Text())
	if err != nil {
		return 0
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
