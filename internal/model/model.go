// internal/model/model.go
package model

// Severity classifies how serious a warning is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Priority ranks a recommended action within a warning.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Action is a recommended remediation step attached to a warning.
type Action struct {
	Priority    Priority `json:"priority" yaml:"priority"`
	Description string   `json:"description" yaml:"description"`
}

// Warning is a triggered rule projected into the report: same id, severity,
// title, description, and actions as the rule that fired.
type Warning struct {
	ID          string   `json:"id"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Actions     []Action `json:"actions"`
}

// LifetimeMetrics are derived metrics computed over the whole history.
type LifetimeMetrics struct {
	CommitsPerAuthor float64 `json:"commits_per_author"`
	MergeCommitRatio float64 `json:"merge_commit_ratio"`
	RepoAgeDays      int     `json:"repo_age_days"`
}

// RecentMetrics are derived metrics computed over the last seven days.
type RecentMetrics struct {
	CommitVelocity          float64 `json:"commit_velocity"`
	ChangeDensity           float64 `json:"change_density"`
	AuthorParticipationRate float64 `json:"author_participation_rate"`
}

// Insights holds the narrative analysis produced by the language model.
type Insights struct {
	Summary      string   `json:"summary"`
	Risks        []string `json:"risks,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	Generator    string   `json:"generator,omitempty"`
}

// LanguageStats holds code statistics for a single language.
type LanguageStats struct {
	Name       string `json:"name"`
	Files      int64  `json:"files"`
	Lines      int64  `json:"lines"`
	Code       int64  `json:"code"`
	Comments   int64  `json:"comments"`
	Blanks     int64  `json:"blanks"`
	Complexity int64  `json:"complexity"`
}

// CodeTotals holds aggregate code statistics across all languages.
type CodeTotals struct {
	Files         int64 `json:"files"`
	Lines         int64 `json:"lines"`
	Code          int64 `json:"code"`
	Comments      int64 `json:"comments"`
	Blanks        int64 `json:"blanks"`
	Complexity    int64 `json:"complexity"`
	FilteredFiles int64 `json:"filtered_files,omitempty"`
}

// CodebaseStats holds working-tree code statistics for the repository.
type CodebaseStats struct {
	Languages []LanguageStats `json:"languages"`
	Totals    CodeTotals      `json:"totals"`
}

// Report is the top-level output structure for one analysis run.
type Report struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	GeneratedAt string          `json:"generated_at"`
	RepoPath    string          `json:"repo_path"`
	License     string          `json:"license,omitempty"`
	Repository  *MetricSet      `json:"repository_data"`
	Lifetime    LifetimeMetrics `json:"lifetime_metrics"`
	Recent      RecentMetrics   `json:"recent_metrics"`
	Warnings    []Warning       `json:"warnings"`
	Insights    *Insights       `json:"insights,omitempty"`
	Codebase    *CodebaseStats  `json:"codebase,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
}
