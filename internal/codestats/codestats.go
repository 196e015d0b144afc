// internal/codestats/codestats.go

// Package codestats produces per-language code statistics for a working
// tree using scc's processor. Vendored and generated files are excluded
// from the counts so the report reflects code the team actually owns.
package codestats

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/boyter/scc/v3/processor"
	"github.com/go-enry/go-enry/v2"

	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

var initOnce sync.Once

// Scanner walks a repository directory and aggregates code statistics.
type Scanner struct{}

// New creates a Scanner. scc's ProcessConstants must run exactly once per
// process, even when scanners are created concurrently.
func New() *Scanner {
	initOnce.Do(func() {
		processor.ProcessConstants()
	})
	return &Scanner{}
}

// Scan walks dir, detects languages, and returns aggregated statistics.
// Unreadable files are skipped; vendored and generated paths count toward
// FilteredFiles only.
func (s *Scanner) Scan(ctx context.Context, dir string) (*model.CodebaseStats, error) {
	langMap := map[string]*model.LanguageStats{}
	var filtered int64

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable files
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if info.IsDir() {
			base := info.Name()
			if base == ".git" || base == "node_modules" || base == "vendor" || base == ".hg" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if enry.IsVendor(rel) {
			filtered++
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if enry.IsGenerated(rel, content) {
			filtered++
			return nil
		}

		possibleLanguages, _ := processor.DetectLanguage(info.Name())
		if len(possibleLanguages) == 0 {
			return nil
		}

		job := &processor.FileJob{
			Filename:          info.Name(),
			Content:           content,
			Bytes:             int64(len(content)),
			PossibleLanguages: possibleLanguages,
		}

		job.Language = processor.DetermineLanguage(job.Filename, job.Language, job.PossibleLanguages, job.Content)
		if job.Language == "" {
			return nil
		}

		processor.CountStats(job)

		if job.Binary {
			return nil
		}

		lang, ok := langMap[job.Language]
		if !ok {
			lang = &model.LanguageStats{Name: job.Language}
			langMap[job.Language] = lang
		}

		lang.Files++
		lang.Lines += job.Lines
		lang.Code += job.Code
		lang.Comments += job.Comment
		lang.Blanks += job.Blank
		lang.Complexity += job.Complexity

		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := &model.CodebaseStats{Totals: model.CodeTotals{FilteredFiles: filtered}}
	for _, lang := range langMap {
		stats.Languages = append(stats.Languages, *lang)
		stats.Totals.Files += lang.Files
		stats.Totals.Lines += lang.Lines
		stats.Totals.Code += lang.Code
		stats.Totals.Comments += lang.Comments
		stats.Totals.Blanks += lang.Blanks
		stats.Totals.Complexity += lang.Complexity
	}

	sort.Slice(stats.Languages, func(i, j int) bool {
		if stats.Languages[i].Code != stats.Languages[j].Code {
			return stats.Languages[i].Code > stats.Languages[j].Code
		}
		return strings.Compare(stats.Languages[i].Name, stats.Languages[j].Name) < 0
	})

	return stats, nil
}
