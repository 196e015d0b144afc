// internal/insight/anthropic.go
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bhadzhiev/uv-aix-agent/internal/definition"
	"github.com/bhadzhiev/uv-aix-agent/internal/model"
)

const (
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 4096

	maxAttempts    = 3
	initialBackoff = time.Second
)

// Anthropic generates insights through the Anthropic Messages API.
type Anthropic struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropic creates a generator using the given API key and the agent
// settings from the report definition.
func NewAnthropic(apiKey string, agent definition.Agent) *Anthropic {
	mdl := agent.Model
	if mdl == "" {
		mdl = defaultModel
	}
	maxTokens := int64(agent.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Anthropic{
		client:      anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:       mdl,
		maxTokens:   maxTokens,
		temperature: agent.Temperature,
	}
}

// Name identifies the generator in report output.
func (g *Anthropic) Name() string {
	return "anthropic:" + g.model
}

// Generate sends the report JSON to the model and parses the structured
// response. Transient API failures are retried with exponential backoff.
func (g *Anthropic) Generate(ctx context.Context, reportJSON []byte) (*model.Insights, error) {
	prompt := buildPrompt(reportJSON)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if g.temperature > 0 {
		params.Temperature = anthropic.Float(g.temperature)
	}

	var resp *anthropic.Message
	var err error
	backoff := initialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err = g.client.Messages.New(ctx, params)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < maxAttempts {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	insights, err := parseResponse(text)
	if err != nil {
		return nil, err
	}
	insights.Generator = g.Name()
	return insights, nil
}
