// Package api asks Claude for the advisory priority suggestion, either
// directly or through AWS Bedrock.
package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"
)

// DefaultModel is used when no model is configured. Triage prompts are
// short, so the small model is plenty.
const DefaultModel = anthropic.ModelClaudeHaiku4_5_20251001

// ErrMissingAPIKey is returned when a direct client has no key to send.
var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY environment variable is not set")

// bedrockProfiles maps the models triage offers to their Bedrock
// cross-region inference profiles. Other names pass through unchanged.
var bedrockProfiles = map[anthropic.Model]anthropic.Model{
	anthropic.ModelClaudeHaiku4_5_20251001:  "us.anthropic.claude-haiku-4-5-20251001-v1:0",
	anthropic.ModelClaudeSonnet4_5_20250929: "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
}

// Haiku 4.5 list prices, USD per million tokens.
const (
	inputPricePerM  = 1.0
	outputPricePerM = 5.0
)

// ClientConfig selects the backend and model for suggestion calls.
type ClientConfig struct {
	// Model defaults to DefaultModel.
	Model anthropic.Model
	// APIKey falls back to ANTHROPIC_API_KEY. Ignored for Bedrock.
	APIKey string
	// BaseURL overrides the endpoint (proxies, tests).
	BaseURL string
	// MaxRetries overrides the SDK retry count when non-nil.
	MaxRetries *int
	// Bedrock routes calls through AWS when non-nil.
	Bedrock *BedrockConfig
}

// BedrockConfig names the AWS credentials used for Bedrock.
type BedrockConfig struct {
	Region  string
	Profile string
}

// Client sends suggestion requests and meters what they cost.
type Client struct {
	sdk   anthropic.Client
	model anthropic.Model

	mu    sync.Mutex
	usage Usage
}

// NewClient builds a Client for cfg. For Bedrock, ctx bounds loading the
// AWS shared configuration.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	opts, err := backendOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries != nil {
		opts = append(opts, option.WithMaxRetries(*cfg.MaxRetries))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if cfg.Bedrock != nil {
		if profile, ok := bedrockProfiles[model]; ok {
			model = profile
		}
	}

	return &Client{sdk: anthropic.NewClient(opts...), model: model}, nil
}

func backendOptions(ctx context.Context, cfg ClientConfig) ([]option.RequestOption, error) {
	if b := cfg.Bedrock; b != nil {
		var load []func(*config.LoadOptions) error
		if b.Region != "" {
			load = append(load, config.WithRegion(b.Region))
		}
		if b.Profile != "" {
			load = append(load, config.WithSharedConfigProfile(b.Profile))
		}
		return []option.RequestOption{bedrock.WithLoadDefaultConfig(ctx, load...)}, nil
	}

	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return []option.RequestOption{option.WithAPIKey(key)}, nil
}

// Model returns the model name sent with each request.
func (c *Client) Model() anthropic.Model {
	return c.model
}

// complete sends one system+user exchange and returns the reply text with
// surrounding whitespace trimmed.
func (c *Client) complete(ctx context.Context, system, user string, maxTokens int64) (string, error) {
	resp, err := c.sdk.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}
	c.record(resp.Usage)

	var text strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func (c *Client) record(u anthropic.Usage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usage.Calls++
	c.usage.InputTokens += u.InputTokens
	c.usage.OutputTokens += u.OutputTokens
}

// Usage returns the totals recorded so far.
func (c *Client) Usage() Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

// Usage totals the suggestion calls made by one Client.
type Usage struct {
	Calls        int
	InputTokens  int64
	OutputTokens int64
}

// Cost estimates the spend in USD at Haiku 4.5 list pricing.
func (u Usage) Cost() float64 {
	return float64(u.InputTokens)/1_000_000*inputPricePerM +
		float64(u.OutputTokens)/1_000_000*outputPricePerM
}

func (u Usage) String() string {
	return fmt.Sprintf("%d call(s), %d input / %d output tokens, ~$%.4f",
		u.Calls, u.InputTokens, u.OutputTokens, u.Cost())
}
