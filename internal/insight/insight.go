// internal/insight/insight.go

// Package insight asks a language model to read the assembled report and
// produce narrative findings: a summary, risks, and suggested improvements.
// Generation is best-effort; callers render the report without insights
// when it fails.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

// Generator produces insights from the serialized report.
type Generator interface {
	Name() string
	Generate(ctx context.Context, reportJSON []byte) (*model.Insights, error)
}

// FromEnvironment picks a generator: the Anthropic API when
// ANTHROPIC_API_KEY is set, otherwise the first supported AI CLI on PATH.
func FromEnvironment(agent definition.Agent) (Generator, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return NewAnthropic(key, agent), nil
	}
	return DetectCLI()
}

// payload is the JSON shape the model is asked to return.
type payload struct {
	Summary      string   `json:"summary"`
	Risks        []string `json:"risks"`
	Improvements []string `json:"improvements"`
}

const instructions = `You are a senior engineer reviewing the health of a Git repository. You will receive a JSON report containing raw collected metrics ("repository_data"), derived metrics ("lifetime_metrics", "recent_metrics"), and rule-based warnings ("warnings").

Analyze the data and respond with a JSON object of this exact shape:
{
  "summary": "2-4 sentences describing the repository's overall state and activity",
  "risks": ["specific risk grounded in the data", ...],
  "improvements": ["concrete, actionable improvement", ...]
}

Ground every statement in the numbers provided. Keep risks and improvements to at most five entries each. Respond with ONLY raw JSON, no markdown code fences, no commentary.`

// buildPrompt embeds the report JSON into the analysis instructions.
func buildPrompt(reportJSON []byte) string {
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\nReport:\n")
	b.Write(reportJSON)
	return b.String()
}

// parseResponse decodes the model's reply, tolerating markdown code fences
// around the JSON.
func parseResponse(text string) (*model.Insights, error) {
	cleaned := stripFences(strings.TrimSpace(text))

	var p payload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("decode insights response: %w", err)
	}
	if p.Summary == "" {
		return nil, fmt.Errorf("insights response has no summary")
	}

	return &model.Insights{
		Summary:      p.Summary,
		Risks:        p.Risks,
		Improvements: p.Improvements,
	}, nil
}

// stripFences removes a wrapping markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := strings.TrimPrefix(s, "```")
	idx := strings.IndexByte(rest, '\n')
	if idx < 0 {
		return s
	}
	tag := strings.TrimSpace(rest[:idx])
	if tag != "json" && tag != "" {
		return s
	}
	body := strings.TrimSuffix(strings.TrimSpace(rest[idx+1:]), "```")
	return strings.TrimSpace(body)
}
