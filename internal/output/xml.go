// internal/output/xml.go
package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

// WriteXML writes the report in the legacy XML layout: metadata,
// repository_data, lifetime_metrics, recent_metrics, warnings, errors.
// Metric names become element names, so they must stay lowercase
// identifiers in the definitions.
func WriteXML(w io.Writer, report model.Report) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "git_comprehensive_report"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	if err := encodeSection(enc, "metadata", func() error {
		if err := encodeText(enc, "name", report.Name); err != nil {
			return err
		}
		if err := encodeText(enc, "id", report.ID); err != nil {
			return err
		}
		if err := encodeText(enc, "generated_at", report.GeneratedAt); err != nil {
			return err
		}
		if err := encodeText(enc, "version", report.Version); err != nil {
			return err
		}
		if report.License != "" {
			if err := encodeText(enc, "license", report.License); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := encodeSection(enc, "repository_data", func() error {
		for _, name := range report.Repository.Names() {
			if err := encodeText(enc, name, report.Repository.Get(name).Text()); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := encodeSection(enc, "lifetime_metrics", func() error {
		if err := encodeText(enc, "commits_per_author", formatFloat(report.Lifetime.CommitsPerAuthor)); err != nil {
			return err
		}
		if err := encodeText(enc, "merge_commit_ratio", formatFloat(report.Lifetime.MergeCommitRatio)); err != nil {
			return err
		}
		return encodeText(enc, "repo_age_days", strconv.Itoa(report.Lifetime.RepoAgeDays))
	}); err != nil {
		return err
	}

	if err := encodeSection(enc, "recent_metrics", func() error {
		if err := encodeText(enc, "commit_velocity", formatFloat(report.Recent.CommitVelocity)); err != nil {
			return err
		}
		if err := encodeText(enc, "change_density", formatFloat(report.Recent.ChangeDensity)); err != nil {
			return err
		}
		return encodeText(enc, "author_participation_rate", formatFloat(report.Recent.AuthorParticipationRate))
	}); err != nil {
		return err
	}

	if err := encodeSection(enc, "warnings", func() error {
		for _, warn := range report.Warnings {
			if err := encodeWarning(enc, warn); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if len(report.Errors) > 0 {
		if err := encodeSection(enc, "errors", func() error {
			for _, e := range report.Errors {
				if err := encodeText(enc, "error", e); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

func encodeWarning(enc *xml.Encoder, warn model.Warning) error {
	return encodeSection(enc, "warning", func() error {
		if err := encodeText(enc, "id", warn.ID); err != nil {
			return err
		}
		if err := encodeText(enc, "severity", string(warn.Severity)); err != nil {
			return err
		}
		if err := encodeText(enc, "title", warn.Title); err != nil {
			return err
		}
		if err := encodeText(enc, "description", warn.Description); err != nil {
			return err
		}
		return encodeSection(enc, "actions", func() error {
			for _, a := range warn.Actions {
				if err := encodeSection(enc, "action", func() error {
					if err := encodeText(enc, "priority", string(a.Priority)); err != nil {
						return err
					}
					return encodeText(enc, "description", a.Description)
				}); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func encodeSection(enc *xml.Encoder, name string, body func() error) error {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeText(enc *xml.Encoder, name, value string) error {
	return enc.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: name}})
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
