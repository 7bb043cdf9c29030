// Package coach implements the weekly-review port against the Anthropic
// Messages API.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"forge/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Defaults for the remote call.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-sonnet-4-20250514"
	DefaultTimeout = 30 * time.Second
	maxTokens      = 1000
)

const systemPrompt = `You are a calm, disciplined fitness and productivity coach. Given weekly tracking data, return a JSON object:
{ "summary": "2-3 sentence paragraph of what went well and where they slipped", "suggestions": [{"title": "...", "text": "1 sentence"}] (exactly 2-3), "planAdjustment": "1-2 sentence practical tweak for next week" }
Be concise, actionable, supportive. No medical advice. No fluff. Return only valid JSON.`

// ErrBadResponse indicates the coach answered with something that is not a
// review.
var ErrBadResponse = errors.New("coach: unparseable response")

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the remote coach once per review; there is no retry.
type Client struct {
	api   anthropic.Client
	model string
}

var _ domain.Coach = (*Client)(nil)

// New returns a Client, filling unset fields with defaults. An empty APIKey
// leaves the SDK to read ANTHROPIC_API_KEY.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/"),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return &Client{api: anthropic.NewClient(opts...), model: cfg.Model}
}

// WeeklyReview sends payload and parses the JSON review in the reply.
func (c *Client) WeeklyReview(ctx context.Context, payload string) (domain.ReviewDraft, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(payload)),
		},
	})
	if err != nil {
		return domain.ReviewDraft{}, fmt.Errorf("coach: %w", err)
	}

	text := "{}"
	if len(msg.Content) > 0 && msg.Content[0].Text != "" {
		text = msg.Content[0].Text
	}
	return ParseDraft(text)
}

// ParseDraft decodes the review JSON from the model text, ignoring any
// ```json fences around it.
func ParseDraft(text string) (domain.ReviewDraft, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	var draft domain.ReviewDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &draft); err != nil {
		return domain.ReviewDraft{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if draft.PlanAdjustment != nil && strings.TrimSpace(*draft.PlanAdjustment) == "" {
		draft.PlanAdjustment = nil
	}
	return draft, nil
}
