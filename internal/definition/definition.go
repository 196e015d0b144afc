// internal/definition/definition.go

// Package definition loads declarative report definitions: which shell
// commands to collect, which warning rules to evaluate, and how to ask the
// model for insights. The built-in comprehensive definition is embedded;
// more can be dropped into a reports directory as YAML files.
package definition

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bhadzhiev/uv-aix-agent/internal/rules"
	"gopkg.in/yaml.v3"
)

//go:embed comprehensive.yaml
var comprehensiveYAML []byte

const defaultTimeoutSeconds = 60

// ParseKind tells the collector how to interpret a command's stdout.
type ParseKind string

const (
	ParseString ParseKind = "string"
	ParseInt    ParseKind = "int"
)

// Command is one collection step: a named shell command with a timeout.
type Command struct {
	Name    string    `yaml:"name"`
	Run     string    `yaml:"run"`
	Parse   ParseKind `yaml:"parse,omitempty"`
	Timeout int       `yaml:"timeout,omitempty"` // seconds
}

// Agent configures the insight generation call.
type Agent struct {
	Model       string  `yaml:"model,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
	Temperature float64 `yaml:"temperature,omitempty"`
}

// Definition is a complete report definition.
type Definition struct {
	Name        string       `yaml:"name"`
	Version     string       `yaml:"version"`
	Description string       `yaml:"description"`
	Agent       Agent        `yaml:"agent"`
	Commands    []Command    `yaml:"commands"`
	Rules       []rules.Rule `yaml:"rules"`
}

// Parse decodes and validates a YAML report definition. Missing command
// parse kinds default to string and missing timeouts to 60 seconds.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	if def.Name == "" {
		return nil, fmt.Errorf("definition has no name")
	}
	if len(def.Commands) == 0 {
		return nil, fmt.Errorf("definition %q has no commands", def.Name)
	}

	seen := map[string]bool{}
	for i := range def.Commands {
		cmd := &def.Commands[i]
		if cmd.Name == "" {
			return nil, fmt.Errorf("definition %q: command %d has no name", def.Name, i)
		}
		if cmd.Run == "" {
			return nil, fmt.Errorf("definition %q: command %q has no run line", def.Name, cmd.Name)
		}
		if seen[cmd.Name] {
			return nil, fmt.Errorf("definition %q: duplicate command name %q", def.Name, cmd.Name)
		}
		seen[cmd.Name] = true
		if cmd.Parse == "" {
			cmd.Parse = ParseString
		}
		if cmd.Timeout <= 0 {
			cmd.Timeout = defaultTimeoutSeconds
		}
	}

	for i, r := range def.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("definition %q: rule %d has no id", def.Name, i)
		}
	}

	return &def, nil
}

// Default returns the embedded comprehensive definition. The embedded YAML
// is part of the binary, so a parse failure is a build defect.
func Default() *Definition {
	def, err := Parse(comprehensiveYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded comprehensive definition: %v", err))
	}
	return def
}

// Entry pairs a definition with where it came from. Path is empty for the
// embedded default.
type Entry struct {
	Path string
	Def  *Definition
}

// Discover returns the embedded default plus every parseable .yaml/.yml
// file under dir, sorted by file name. A missing directory is not an
// error; malformed files are skipped with their error recorded in skipped.
func Discover(dir string) (entries []Entry, skipped []string) {
	entries = []Entry{{Def: Default()}}

	files, err := os.ReadDir(dir)
	if err != nil {
		return entries, nil
	}

	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		def, err := Load(path)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		entries = append(entries, Entry{Path: path, Def: def})
	}
	return entries, skipped
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Parse(data)
}
