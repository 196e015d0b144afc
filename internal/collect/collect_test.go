package collect

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

func testDefinition() *definition.Definition {
	return &definition.Definition{
		Name: "Test",
		Commands: []definition.Command{
			{Name: "repo_name", Run: "echo demo", Parse: definition.ParseString, Timeout: 5},
			{Name: "total_commits", Run: "count commits", Parse: definition.ParseInt, Timeout: 5},
			{Name: "last_tag", Run: "describe", Parse: definition.ParseString, Timeout: 5},
			{Name: "merge_commits", Run: "count merges", Parse: definition.ParseInt, Timeout: 5},
		},
	}
}

func fakeExec(outputs map[string]string, failures map[string]error) ExecFunc {
	return func(_ context.Context, _, command string, _ time.Duration) (string, error) {
		if err, ok := failures[command]; ok {
			return "", err
		}
		return outputs[command], nil
	}
}

func TestCollect(t *testing.T) {
	outputs := map[string]string{
		"echo demo":     "demo\n",
		"count commits": " 245\n",
		"describe":      "",
		"count merges":  "not a number",
	}

	c := New("/repo", WithExec(fakeExec(outputs, nil)))
	ms := c.Collect(context.Background(), testDefinition())

	if got := ms.Get("repo_name").Text(); got != "demo" {
		t.Errorf("repo_name = %q, want demo", got)
	}
	if got, _ := ms.Get("total_commits").Float(); got != 245 {
		t.Errorf("total_commits = %v, want 245", got)
	}
	if got := ms.Get("last_tag").Text(); got != "unknown" {
		t.Errorf("empty string output = %q, want unknown", got)
	}
	if got, _ := ms.Get("merge_commits").Float(); got != 0 {
		t.Errorf("unparseable int output = %v, want 0", got)
	}
	if errs := ms.Errors(); len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
}

func TestCollectFailureRecordsErrorAndContinues(t *testing.T) {
	failures := map[string]error{
		"count commits": errors.New("exit status 128"),
	}
	outputs := map[string]string{
		"echo demo":    "demo",
		"describe":     "v1.2.0",
		"count merges": "3",
	}

	c := New("/repo", WithExec(fakeExec(outputs, failures)))
	ms := c.Collect(context.Background(), testDefinition())

	if !ms.Get("total_commits").IsMissing() {
		t.Error("failed command should store the missing value")
	}
	if got := ms.Get("last_tag").Text(); got != "v1.2.0" {
		t.Errorf("command after the failure = %q, want v1.2.0", got)
	}

	errs := ms.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one", errs)
	}
	want := "command 'total_commits' failed: exit status 128"
	if errs[0] != want {
		t.Errorf("error = %q, want %q", errs[0], want)
	}
}

func TestCollectPreservesCommandOrder(t *testing.T) {
	c := New("/repo", WithExec(fakeExec(map[string]string{}, nil)))
	ms := c.Collect(context.Background(), testDefinition())

	want := []string{"repo_name", "total_commits", "last_tag", "merge_commits"}
	got := ms.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollectReportsProgress(t *testing.T) {
	var calls []string
	progress := func(completed, total int, name string) {
		if total != 4 {
			t.Errorf("total = %d, want 4", total)
		}
		calls = append(calls, name)
		if completed != len(calls) {
			t.Errorf("completed = %d after %d calls", completed, len(calls))
		}
	}

	c := New("/repo", WithExec(fakeExec(map[string]string{}, nil)), WithProgress(progress))
	c.Collect(context.Background(), testDefinition())

	if len(calls) != 4 || calls[0] != "repo_name" || calls[3] != "merge_commits" {
		t.Errorf("progress calls = %v", calls)
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name string
		kind definition.ParseKind
		out  string
		want model.Value
	}{
		{"plain int", definition.ParseInt, "42", model.IntValue(42)},
		{"padded int", definition.ParseInt, "  17\n", model.IntValue(17)},
		{"negative int", definition.ParseInt, "-1", model.IntValue(-1)},
		{"garbage int", definition.ParseInt, "abc", model.IntValue(0)},
		{"empty int", definition.ParseInt, "", model.IntValue(0)},
		{"string", definition.ParseString, "main\n", model.StringValue("main")},
		{"empty string", definition.ParseString, "  \n", model.StringValue("unknown")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseOutput(tt.kind, tt.out); got != tt.want {
				t.Errorf("parseOutput(%q, %q) = %v, want %v", tt.kind, tt.out, got, tt.want)
			}
		})
	}
}

func TestShellExec(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		out, err := shellExec(context.Background(), t.TempDir(), "echo hello | tr a-z A-Z", 5*time.Second)
		if err != nil {
			t.Fatalf("shellExec: %v", err)
		}
		if strings.TrimSpace(out) != "HELLO" {
			t.Errorf("out = %q, want HELLO", out)
		}
	})

	t.Run("includes stderr in error", func(t *testing.T) {
		_, err := shellExec(context.Background(), t.TempDir(), "echo boom >&2; exit 3", 5*time.Second)
		if err == nil {
			t.Fatal("want error")
		}
		if !strings.Contains(err.Error(), "boom") {
			t.Errorf("error = %q, want stderr text", err)
		}
	})

	t.Run("times out", func(t *testing.T) {
		_, err := shellExec(context.Background(), t.TempDir(), "sleep 5", 100*time.Millisecond)
		if err == nil {
			t.Fatal("want timeout error")
		}
		if !strings.Contains(err.Error(), "timed out") {
			t.Errorf("error = %q, want timeout message", err)
		}
	})
}
