package main

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/triage/internal/api"
	"github.com/ShayCichocki/triage/internal/classify"
	"github.com/ShayCichocki/triage/internal/config"
	"github.com/ShayCichocki/triage/internal/workflow"
)

// newSuggester builds the suggestion backend named by suggest.mode. When a
// remote backend can't be built it returns the local suggester together
// with the error, so callers can warn and carry on.
func newSuggester(ctx context.Context, cfg *config.Config) (workflow.Suggester, *api.Client, error) {
	local := classify.LocalSuggester{}

	switch cfg.Suggest.Mode {
	case config.SuggestLocal, "":
		return local, nil, nil

	case config.SuggestAnthropic:
		key, err := config.GetAPIKey(cfg)
		if err != nil {
			return local, nil, err
		}
		client, err := api.NewClient(ctx, api.ClientConfig{
			Model:  anthropic.Model(cfg.Anthropic.Model),
			APIKey: key,
		})
		if err != nil {
			return local, nil, fmt.Errorf("create API client: %w", err)
		}
		return api.NewSuggester(client), client, nil

	case config.SuggestBedrock:
		client, err := api.NewClient(ctx, api.ClientConfig{
			Model: anthropic.Model(cfg.Anthropic.Model),
			Bedrock: &api.BedrockConfig{
				Region:  cfg.AWS.Region,
				Profile: cfg.AWS.Profile,
			},
		})
		if err != nil {
			return local, nil, fmt.Errorf("create Bedrock client: %w", err)
		}
		return api.NewSuggester(client), client, nil

	default:
		return local, nil, fmt.Errorf("unknown suggest.mode %q", cfg.Suggest.Mode)
	}
}
