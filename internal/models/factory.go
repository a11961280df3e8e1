// Package models creates Eino chat models from provider configuration.
package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"

	"github.com/example/taskrecap/internal/config"
)

// CreateModel creates a model.ToolCallingChatModel from a provider config.
func CreateModel(ctx context.Context, cfg config.ProviderConfig) (model.ToolCallingChatModel, error) {
	switch strings.ToLower(cfg.Driver) {
	case "openai":
		auth, err := ResolveAuth(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve auth: %w", err)
		}
		return NewOpenAI(ctx, cfg, auth)
	case "anthropic":
		auth, err := ResolveAuth(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve auth: %w", err)
		}
		return NewAnthropic(ctx, cfg, auth)
	case "ollama":
		return NewOllama(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
}

// DefaultProvider returns the provider config selected by ModelsConfig.Default.
func DefaultProvider(cfg config.ModelsConfig) (config.ProviderConfig, error) {
	if len(cfg.Providers) == 0 {
		return config.ProviderConfig{}, fmt.Errorf("no model providers configured")
	}
	name := cfg.Default
	if name == "" && len(cfg.Providers) == 1 {
		for n := range cfg.Providers {
			name = n
		}
	}
	p, ok := cfg.Providers[name]
	if !ok {
		return config.ProviderConfig{}, fmt.Errorf("default provider %q not configured", name)
	}
	return p, nil
}
