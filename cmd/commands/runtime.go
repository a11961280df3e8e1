package commands

import (
	"context"
	"fmt"

	"github.com/example/taskrecap/internal/agent"
	"github.com/example/taskrecap/internal/config"
	"github.com/example/taskrecap/internal/models"
	"github.com/example/taskrecap/internal/sheet"
	"github.com/example/taskrecap/internal/threads"
)

// buildRunner assembles the spreadsheet client and the reasoning loop from
// config. Both the bot daemon and the one-shot ask command go through it.
func buildRunner(ctx context.Context, cfg *config.Config) (*agent.Runner, *sheet.Client, error) {
	store := sheet.NewClient(cfg.Sheet)

	provider, err := models.DefaultProvider(cfg.Models)
	if err != nil {
		return nil, nil, err
	}
	chatModel, err := models.CreateModel(ctx, provider)
	if err != nil {
		return nil, nil, fmt.Errorf("init chat model: %w", err)
	}

	prompt, err := agent.LoadSystemPrompt(cfg.Agent.PromptsFile)
	if err != nil {
		return nil, nil, err
	}

	runner := agent.NewRunner(agent.RunnerConfig{
		Model:        chatModel,
		Tools:        agent.NewTools(store),
		Store:        threads.NewFileStore(config.ThreadsPath()),
		ThreadID:     cfg.Agent.ThreadID,
		SystemPrompt: prompt,
		MaxSteps:     cfg.Agent.MaxSteps,
	})
	return runner, store, nil
}
