// Package gemini implements the remote scorer against Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/jobs"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/llm"
	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/telemetry"
)

const (
	// DefaultModel trades quality for speed and input size.
	DefaultModel = "gemini-1.5-flash"

	requestTimeout  = 30 * time.Second
	temperature     = float32(0.7)
	maxOutputTokens = int32(2000)
)

// Client is an llm.Scorer backed by the Gemini API. A circuit breaker
// stops hammering the API once it starts failing; an open breaker looks
// like any other unavailability to the caller.
type Client struct {
	client  *genai.Client
	model   string
	breaker *gobreaker.CircuitBreaker[*genai.GenerateContentResponse]
}

var _ llm.Scorer = (*Client)(nil)

// New constructs a Gemini-backed scorer.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}

	settings := gobreaker.Settings{
		Name:    "gemini-score",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			telemetry.Warn("scorer circuit breaker state changed", map[string]any{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	}

	return &Client{
		client:  client,
		model:   model,
		breaker: gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](settings),
	}, nil
}

// ScoreJobs issues a single bounded scoring call. No retries: one failed
// attempt means the caller falls back to local scoring immediately.
func (c *Client) ScoreJobs(ctx context.Context, candidateText string, list []jobs.JobRecord) (string, error) {
	prompt, err := llm.BuildPrompt(candidateText, list)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	temp := temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: maxOutputTokens,
		SafetySettings: []*genai.SafetySetting{
			{
				Category:  genai.HarmCategoryHarassment,
				Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
			},
		},
	}

	result, err := c.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	})
	if err != nil {
		telemetry.Warn("gemini scoring call failed", map[string]any{"error": err.Error()})
		return "", fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
	}

	text := result.Text()
	if text == "" {
		// Covers safety blocks and empty candidate lists alike.
		return "", fmt.Errorf("%w: empty response content", llm.ErrUnavailable)
	}
	return text, nil
}
