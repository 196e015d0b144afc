// internal/collect/collect.go

// Package collect runs a report definition's shell commands against a
// repository and gathers their outputs into a MetricSet. Collection is
// sequential and never fatal: a failed command records a missing value and
// an error string, and the remaining commands still run.
package collect

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"

	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

// ExecFunc runs one shell command in a directory and returns its trimmed
// stdout. Implementations should honor the context for cancellation.
type ExecFunc func(ctx context.Context, dir, command string, timeout time.Duration) (string, error)

// ProgressFunc is called after each command completes.
type ProgressFunc func(completed, total int, name string)

// Collector executes collection commands for a single repository directory.
type Collector struct {
	dir      string
	exec     ExecFunc
	progress ProgressFunc
}

// Option configures a Collector.
type Option func(*Collector)

// WithExec replaces the shell executor, mainly for tests.
func WithExec(fn ExecFunc) Option {
	return func(c *Collector) { c.exec = fn }
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Collector) { c.progress = fn }
}

// New creates a Collector for the repository at dir.
func New(dir string, opts ...Option) *Collector {
	c := &Collector{dir: dir, exec: shellExec}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs every command of the definition in order and returns the
// resulting MetricSet. Integer-kind outputs that are not plain digits
// parse as 0 (mirrors counting commands that print nothing useful);
// empty string-kind outputs become "unknown"; failed commands store the
// missing value and record an error.
func (c *Collector) Collect(ctx context.Context, def *definition.Definition) *model.MetricSet {
	ms := model.NewMetricSet()

	for i, cmd := range def.Commands {
		out, err := c.exec(ctx, c.dir, cmd.Run, time.Duration(cmd.Timeout)*time.Second)
		if err != nil {
			ms.Set(cmd.Name, model.MissingValue())
			ms.AddError(fmt.Sprintf("command '%s' failed: %v", cmd.Name, err))
		} else {
			ms.Set(cmd.Name, parseOutput(cmd.Parse, out))
		}

		if c.progress != nil {
			c.progress(i+1, len(def.Commands), cmd.Name)
		}
	}

	return ms
}

func parseOutput(kind definition.ParseKind, out string) model.Value {
	out = strings.TrimSpace(out)
	switch kind {
	case definition.ParseInt:
		n, err := strconv.ParseInt(out, 10, 64)
		if err != nil {
			return model.IntValue(0)
		}
		return model.IntValue(n)
	default:
		if out == "" {
			return model.StringValue("unknown")
		}
		return model.StringValue(out)
	}
}

// shellExec runs command through the shell so pipes and fallbacks in the
// definition work as written.
func shellExec(ctx context.Context, dir, command string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("timed out after %s", timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}

	return stdout.String(), nil
}

// VerifyRepository checks that dir is inside a git repository before any
// commands run.
func VerifyRepository(dir string) error {
	_, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("open repository at %s: %w", dir, err)
	}
	return nil
}
