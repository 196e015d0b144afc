package main

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bhadzhiev/uv-aix-agent/internal/collect"
	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
)

// stubProgram stands in for the bubbletea program. Run can be made to
// fail immediately, before any DoneMsg arrives.
type stubProgram struct {
	runErr error
}

func (p *stubProgram) Send(msg tea.Msg) {}

func (p *stubProgram) Run() (tea.Model, error) {
	return nil, p.runErr
}

func slowExec(delay time.Duration) collect.ExecFunc {
	return func(_ context.Context, _, command string, _ time.Duration) (string, error) {
		time.Sleep(delay)
		return "1", nil
	}
}

func TestCollectWithProgramWaitsForCollection(t *testing.T) {
	def := &definition.Definition{
		Name: "Test",
		Commands: []definition.Command{
			{Name: "total_commits", Run: "count commits", Parse: definition.ParseInt, Timeout: 5},
			{Name: "total_authors", Run: "count authors", Parse: definition.ParseInt, Timeout: 5},
		},
	}

	tests := []struct {
		name string
		prog *stubProgram
	}{
		{"display runs to completion", &stubProgram{}},
		{"display fails before collection finishes", &stubProgram{runErr: errors.New("open /dev/tty: no such device")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := collectWithProgram(context.Background(), "/repo", def, tt.prog,
				collect.WithExec(slowExec(20*time.Millisecond)))

			if ms == nil {
				t.Fatal("metric set is nil")
			}
			if ms.Len() != len(def.Commands) {
				t.Fatalf("collected %d metrics, want %d", ms.Len(), len(def.Commands))
			}
			if errs := ms.Errors(); len(errs) != 0 {
				t.Errorf("errors = %v, want none", errs)
			}
		})
	}
}
