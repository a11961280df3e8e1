package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/example/taskrecap/internal/config"
)

// NewInitCommand returns the onboarding subcommand.
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Initialize the taskrecap home directory (~/.taskrecap)",
		Action: runInit,
	}
}

func runInit(_ context.Context, _ *cli.Command) error {
	root := config.BasePath()
	created := false

	dirs := []string{
		root,
		config.ThreadsPath(),
	}
	for _, d := range dirs {
		if _, err := os.Stat(d); err != nil {
			if err := os.MkdirAll(d, 0o755); err != nil {
				return fmt.Errorf("create dir %s: %w", d, err)
			}
			fmt.Printf("  Created %s\n", d)
			created = true
		}
	}

	files := []struct {
		path    string
		content string
		mode    os.FileMode
	}{
		{config.ConfigPath(), defaultConfig, 0o644},
		{config.DotenvPath(), defaultDotenv, 0o600},
		{config.PromptsPath(), defaultPrompts, 0o644},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			if err := os.WriteFile(f.path, []byte(f.content), f.mode); err != nil {
				return fmt.Errorf("write %s: %w", f.path, err)
			}
			fmt.Printf("  Created %s\n", f.path)
			created = true
		}
	}

	if !created {
		fmt.Printf("Already initialized — %s is complete. Nothing to do.\n", root)
		return nil
	}

	fmt.Printf(`
Home set up at %s

Next steps:
  1. Drop your API keys in %s/.env
  2. Point "sheet" in %s/config.jsonc at your spreadsheet
  3. Run: taskrecap bot
`, root, root, root)
	return nil
}

const defaultConfig = `{
	// taskrecap configuration

	"telegram": {
		"token": "${{ .Env.TELEGRAM_TOKEN }}",
		"admin_contact": "@FakhriMN25"
	},

	"models": {
		"default": "gpt",
		"providers": {
			"gpt": {
				"driver": "openai",
				"model": "gpt-4o-mini",
				"auth": { "api_key": "${OPENAI_API_KEY}" },
				"max_tokens": 4000,
				"options": {
					"temperature": 0.1,
					"presence_penalty": 0.8
				}
			}

			// Local model via Ollama (no auth required)
			// "local": {
			// 	"driver": "ollama",
			// 	"model": "llama3.1:8b",
			// 	"base_url": "http://localhost:11434"
			// }
		}
	},

	"sheet": {
		"spreadsheet_id": "",
		"credentials_file": "",
		"sheet_name": "Recap Task Agent"
	},

	"gateway": {
		"host": "127.0.0.1",
		"port": 8700
	},

	"agent": {
		"thread_id": "task_tim_john"
	}

	// Daily digest of unfinished tasks, posted to a group chat.
	// "reminder": {
	// 	"schedule": "0 9 * * 1-5",
	// 	"chat_id": 0,
	// 	"assignees": []
	// }
}
`

const defaultDotenv = `# taskrecap environment variables
# This file is loaded automatically. Existing env vars are never overridden.

# TELEGRAM_TOKEN=123456:ABC...
# OPENAI_API_KEY=sk-...
# ANTHROPIC_API_KEY=sk-ant-...
`

const defaultPrompts = `{
	"agent_task": {
		"system_message": ""
	}
}
`
