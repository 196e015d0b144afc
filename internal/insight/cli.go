// internal/insight/cli.go
package insight

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

// supportedCLIs is the ordered list of AI CLI tools we can fall back to
// when no API key is configured.
var supportedCLIs = []string{"claude", "codex", "gemini"}

// LookupFunc resolves a command name to its path. Compatible with exec.LookPath.
type LookupFunc func(name string) (string, error)

// CLI generates insights by piping the report JSON to an AI CLI tool on
// the local PATH.
type CLI struct {
	tool string
}

// DetectCLI finds the first supported AI CLI available on the system PATH
// and returns a generator using it.
func DetectCLI() (*CLI, error) {
	return DetectCLIWith(exec.LookPath)
}

// DetectCLIWith is DetectCLI with an injectable lookup, for tests.
func DetectCLIWith(lookup LookupFunc) (*CLI, error) {
	for _, tool := range supportedCLIs {
		if _, err := lookup(tool); err == nil {
			return &CLI{tool: tool}, nil
		}
	}
	return nil, fmt.Errorf("no supported AI CLI found; install one of: %s", strings.Join(supportedCLIs, ", "))
}

// Name identifies the generator in report output.
func (c *CLI) Name() string {
	return "cli:" + c.tool
}

// buildArgs returns the command name and argument slice for a
// non-interactive invocation of the tool with the given prompt.
func buildArgs(tool, prompt string) (string, []string) {
	switch tool {
	case "codex":
		return "codex", []string{"exec", prompt}
	case "gemini":
		return "gemini", []string{"-p", prompt}
	default: // "claude" and fallback
		return "claude", []string{"-p", prompt}
	}
}

// Generate runs the CLI tool, pipes the report JSON to its stdin, and
// parses the structured response from stdout.
func (c *CLI) Generate(ctx context.Context, reportJSON []byte) (*model.Insights, error) {
	prompt := instructions + "\n\nThe report JSON arrives on stdin."

	name, args := buildArgs(c.tool, prompt)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(reportJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s failed: %w: %s", c.tool, err, msg)
		}
		return nil, fmt.Errorf("%s failed: %w", c.tool, err)
	}

	insights, err := parseResponse(stdout.String())
	if err != nil {
		return nil, err
	}
	insights.Generator = c.Name()
	return insights, nil
}
