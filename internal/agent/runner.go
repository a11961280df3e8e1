// Package agent runs the tool-calling loop that turns chat messages into
// spreadsheet operations.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/example/taskrecap/internal/threads"
)

// ErrAgent marks failures inside a reasoning run, as opposed to plain
// spreadsheet or transport errors.
var ErrAgent = errors.New("agent run failed")

const defaultMaxSteps = 12

// Runner drives a conversation thread through the reasoning loop: model
// inference, tool execution, repeat until the model answers without calling
// a tool. Every turn is appended to the thread transcript so context
// survives restarts.
type Runner struct {
	model        model.ToolCallingChatModel
	tools        []tool.BaseTool
	store        threads.Store
	threadID     string
	systemPrompt string
	maxSteps     int

	// Runs share one transcript; serialize them so interleaved writes
	// cannot corrupt the conversation order.
	mu sync.Mutex
}

// RunnerConfig assembles a Runner.
type RunnerConfig struct {
	Model        model.ToolCallingChatModel
	Tools        []tool.BaseTool
	Store        threads.Store
	ThreadID     string
	SystemPrompt string
	MaxSteps     int
}

func NewRunner(cfg RunnerConfig) *Runner {
	r := &Runner{
		model:        cfg.Model,
		tools:        cfg.Tools,
		store:        cfg.Store,
		threadID:     cfg.ThreadID,
		systemPrompt: cfg.SystemPrompt,
		maxSteps:     cfg.MaxSteps,
	}
	if r.maxSteps <= 0 {
		r.maxSteps = defaultMaxSteps
	}
	return r
}

// Run processes one natural-language command and returns the model's final
// answer. The command and everything the loop produces are persisted to the
// thread transcript. An empty answer means the model produced no content.
func (r *Runner) Run(ctx context.Context, command string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := uuid.NewString()[:8]
	log := slog.With("run_id", runID, "thread", r.threadID)
	log.Info("agent run started")

	persisted, err := r.store.Load(r.threadID)
	if err != nil {
		return "", fmt.Errorf("%w: load thread %s: %v", ErrAgent, r.threadID, err)
	}
	messages := make([]*schema.Message, 0, len(persisted)+1)
	for _, m := range persisted {
		messages = append(messages, m.ToSchemaMessage())
	}

	userMsg := schema.UserMessage(command)
	if err := r.persist(userMsg); err != nil {
		return "", err
	}
	messages = append(messages, userMsg)

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{Tools: r.tools})
	if err != nil {
		return "", fmt.Errorf("%w: create tools node: %v", ErrAgent, err)
	}
	toolInfos := make([]*schema.ToolInfo, 0, len(r.tools))
	for _, t := range r.tools {
		info, err := t.Info(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: tool info: %v", ErrAgent, err)
		}
		toolInfos = append(toolInfos, info)
	}

	var final string
	for step := 0; step < r.maxSteps; step++ {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrAgent, ctx.Err())
		default:
		}

		input := append(
			[]*schema.Message{schema.SystemMessage(r.systemPrompt)},
			Curate(messages)...,
		)
		resp, err := r.model.Generate(ctx, input, model.WithTools(toolInfos))
		if err != nil {
			return "", fmt.Errorf("%w: generate (step %d): %v", ErrAgent, step+1, err)
		}
		if err := r.persist(resp); err != nil {
			return "", err
		}
		messages = append(messages, resp)

		if len(resp.ToolCalls) == 0 {
			final = resp.Content
			log.Info("agent run finished", "steps", step+1)
			return final, nil
		}

		for _, tc := range resp.ToolCalls {
			log.Info("tool call", "tool", tc.Function.Name)
		}
		results, err := toolsNode.Invoke(ctx, resp)
		if err != nil {
			// Feed the failure back instead of aborting so the model can
			// recover or apologize.
			log.Warn("tool execution failed", "error", err)
			results = []*schema.Message{
				schema.ToolMessage(fmt.Sprintf("Error executing tools: %v", err), resp.ToolCalls[0].ID),
			}
		}
		for _, res := range results {
			if err := r.persist(res); err != nil {
				return "", err
			}
		}
		messages = append(messages, results...)
	}

	// Step budget exhausted without a plain answer. Hand back whatever the
	// last message says rather than nothing.
	log.Warn("agent run hit max steps", "max_steps", r.maxSteps)
	if len(messages) > 0 {
		final = messages[len(messages)-1].Content
	}
	return final, nil
}

func (r *Runner) persist(msg *schema.Message) error {
	if err := r.store.Append(r.threadID, threads.NewMessageFromSchema(msg)); err != nil {
		return fmt.Errorf("%w: persist %s message: %v", ErrAgent, msg.Role, err)
	}
	return nil
}
