package models

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"

	"github.com/example/taskrecap/internal/config"
)

const defaultAnthropicMaxTokens = 4096

// NewAnthropic creates a new Anthropic ChatModel via the Eino claude extension.
func NewAnthropic(ctx context.Context, cfg config.ProviderConfig, auth ResolvedAuth) (model.ToolCallingChatModel, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	claudeConfig := &claude.Config{
		APIKey:    auth.Value,
		Model:     cfg.Model,
		MaxTokens: maxTokens,
	}

	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		claudeConfig.BaseURL = &baseURL
	}

	if cfg.Options != nil {
		if temp, ok := cfg.Options["temperature"].(float64); ok {
			t := float32(temp)
			claudeConfig.Temperature = &t
		}
	}

	return claude.NewChatModel(ctx, claudeConfig)
}
