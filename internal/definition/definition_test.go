package definition

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAppliesDefaults(t *testing.T) {
	def, err := Parse([]byte(`
name: Minimal
commands:
  - name: branch
    run: git rev-parse --abbrev-ref HEAD
  - name: commits
    run: git rev-list --count HEAD
    parse: int
    timeout: 5
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if def.Commands[0].Parse != ParseString {
		t.Errorf("default parse = %q, want string", def.Commands[0].Parse)
	}
	if def.Commands[0].Timeout != 60 {
		t.Errorf("default timeout = %d, want 60", def.Commands[0].Timeout)
	}
	if def.Commands[1].Parse != ParseInt {
		t.Errorf("explicit parse = %q, want int", def.Commands[1].Parse)
	}
	if def.Commands[1].Timeout != 5 {
		t.Errorf("explicit timeout = %d, want 5", def.Commands[1].Timeout)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			yaml:    "name: [unclosed",
			wantErr: "decode definition",
		},
		{
			name:    "missing name",
			yaml:    "commands:\n  - name: a\n    run: git status",
			wantErr: "no name",
		},
		{
			name:    "no commands",
			yaml:    "name: Empty",
			wantErr: "no commands",
		},
		{
			name:    "unnamed command",
			yaml:    "name: Bad\ncommands:\n  - run: git status",
			wantErr: "has no name",
		},
		{
			name:    "command without run",
			yaml:    "name: Bad\ncommands:\n  - name: a",
			wantErr: "no run line",
		},
		{
			name:    "duplicate command",
			yaml:    "name: Bad\ncommands:\n  - name: a\n    run: git status\n  - name: a\n    run: git log",
			wantErr: "duplicate command name",
		},
		{
			name:    "rule without id",
			yaml:    "name: Bad\ncommands:\n  - name: a\n    run: git status\nrules:\n  - severity: low",
			wantErr: "has no id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultDefinition(t *testing.T) {
	def := Default()

	if def.Name != "Git Comprehensive Report" {
		t.Errorf("name = %q", def.Name)
	}
	if def.Version != "1.0" {
		t.Errorf("version = %q", def.Version)
	}
	if def.Agent.Model != "claude-sonnet-4-5" {
		t.Errorf("agent model = %q", def.Agent.Model)
	}

	wantCommands := []string{
		"repo_name", "current_branch", "remote_url",
		"first_commit_date", "latest_commit_date",
		"total_commits", "total_authors",
		"local_branches", "remote_branches",
		"total_tags", "last_tag", "merge_commits",
		"commits_7d", "authors_7d", "files_changed_7d",
		"working_tree_status",
	}
	if len(def.Commands) != len(wantCommands) {
		t.Fatalf("commands = %d, want %d", len(def.Commands), len(wantCommands))
	}
	for i, want := range wantCommands {
		if def.Commands[i].Name != want {
			t.Errorf("command %d = %q, want %q", i, def.Commands[i].Name, want)
		}
	}

	wantRules := []string{
		"bash_tool_unavailable", "incomplete_metrics", "low_commit_activity",
		"single_contributor", "high_commits_per_author", "no_merge_commits",
		"high_change_density",
	}
	if len(def.Rules) != len(wantRules) {
		t.Fatalf("rules = %d, want %d", len(def.Rules), len(wantRules))
	}
	for i, want := range wantRules {
		if def.Rules[i].ID != want {
			t.Errorf("rule %d = %q, want %q", i, def.Rules[i].ID, want)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("zz.yaml", "name: Zed\ncommands:\n  - name: a\n    run: git status")
	write("aa.yml", "name: Aye\ncommands:\n  - name: a\n    run: git status")
	write("broken.yaml", "name: [")
	write("notes.txt", "not a definition")

	entries, skipped := Discover(dir)

	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Path != "" || entries[0].Def.Name != "Git Comprehensive Report" {
		t.Errorf("entry 0 should be the embedded default, got %q %q", entries[0].Path, entries[0].Def.Name)
	}
	if entries[1].Def.Name != "Aye" || entries[2].Def.Name != "Zed" {
		t.Errorf("file entries out of order: %q, %q", entries[1].Def.Name, entries[2].Def.Name)
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0], "broken.yaml") {
		t.Errorf("skipped = %v, want broken.yaml entry", skipped)
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	entries, skipped := Discover(filepath.Join(t.TempDir(), "nope"))
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want just the embedded default", len(entries))
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
}
