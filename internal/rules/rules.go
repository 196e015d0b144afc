// internal/rules/rules.go

// Package rules evaluates declarative warning rules against collected and
// derived repository metrics. Rules are data, not code: adding a rule means
// editing a report definition, not this package.
package rules

import (
	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

// Condition types understood by the evaluator. Anything else never matches.
const (
	CondEquals          = "equals"
	CondGreaterThan     = "greater_than"
	CondLessThanOrEqual = "less_than_or_equal"
	CondHasErrors       = "has_errors"
	CondEmpty           = "empty"
	CondHasNullValues   = "has_null_values"
)

// Condition is a single predicate over the metric facts. The numeric
// comparison types read Field and Value; the collection predicates ignore
// them.
type Condition struct {
	Type  string  `yaml:"type" json:"type"`
	Field string  `yaml:"field,omitempty" json:"field,omitempty"`
	Value float64 `yaml:"value,omitempty" json:"value,omitempty"`
}

// Rule is a severity-tagged predicate over the metric facts plus the
// warning content emitted when it fires. A rule fires only when every
// condition in When is true; a rule with no conditions never fires.
type Rule struct {
	ID          string         `yaml:"id" json:"id"`
	Severity    model.Severity `yaml:"severity" json:"severity"`
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	When        []Condition    `yaml:"when" json:"when"`
	Actions     []model.Action `yaml:"actions" json:"actions"`
}

// Facts is the combined view the evaluator reads: the raw metric set and
// the derived metric groups. Derived metric names shadow raw metrics of
// the same name.
type Facts struct {
	Metrics  *model.MetricSet
	Lifetime model.LifetimeMetrics
	Recent   model.RecentMetrics
}

// lookup resolves a field name to a numeric value. Derived metrics resolve
// by their report names; everything else falls through to the raw set.
// The second return is false for missing or non-numeric fields.
func (f Facts) lookup(field string) (float64, bool) {
	switch field {
	case "commits_per_author":
		return f.Lifetime.CommitsPerAuthor, true
	case "merge_commit_ratio":
		return f.Lifetime.MergeCommitRatio, true
	case "repo_age_days":
		return float64(f.Lifetime.RepoAgeDays), true
	case "commit_velocity":
		return f.Recent.CommitVelocity, true
	case "change_density":
		return f.Recent.ChangeDensity, true
	case "author_participation_rate":
		return f.Recent.AuthorParticipationRate, true
	}
	return f.Metrics.Get(field).Float()
}

// Evaluate runs the rules in order against the facts and returns the
// warnings for every rule whose conditions all hold. The output preserves
// rule order and never deduplicates; two rules may fire for the same
// underlying cause. Evaluate is a pure function of its inputs.
func Evaluate(f Facts, rules []Rule) []model.Warning {
	var warnings []model.Warning
	for _, r := range rules {
		if !fires(f, r) {
			continue
		}
		warnings = append(warnings, model.Warning{
			ID:          r.ID,
			Severity:    r.Severity,
			Title:       r.Title,
			Description: r.Description,
			Actions:     append([]model.Action(nil), r.Actions...),
		})
	}
	return warnings
}

func fires(f Facts, r Rule) bool {
	if len(r.When) == 0 {
		return false
	}
	for _, c := range r.When {
		if !holds(f, c) {
			return false
		}
	}
	return true
}

// holds evaluates one condition. A missing or non-numeric field makes a
// numeric comparison false rather than an error, and an unknown condition
// type never matches; under-reporting beats crashing.
func holds(f Facts, c Condition) bool {
	switch c.Type {
	case CondEquals:
		v, ok := f.lookup(c.Field)
		return ok && v == c.Value
	case CondGreaterThan:
		v, ok := f.lookup(c.Field)
		return ok && v > c.Value
	case CondLessThanOrEqual:
		v, ok := f.lookup(c.Field)
		return ok && v <= c.Value
	case CondHasErrors, CondEmpty:
		return len(f.Metrics.Errors()) > 0 || f.Metrics.Len() == 0
	case CondHasNullValues:
		return f.Metrics.HasMissing()
	default:
		return false
	}
}
