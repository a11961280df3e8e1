package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/tailscale/hujson"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC config file, expands ${{ .Env.VAR }} templates,
// standardizes it to plain JSON, unmarshals it into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variable templates (before standardizing, since templates are in strings)
	expanded := expandEnvTemplates(string(data))

	standardized, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("standardize config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Gateway.Host == "" {
		cfg.Gateway.Host = "127.0.0.1"
	}
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = 8700
	}
	if cfg.Sheet.SheetName == "" {
		cfg.Sheet.SheetName = "Recap Task Agent"
	}
	if cfg.Sheet.Reporter == "" {
		cfg.Sheet.Reporter = "Fakhri"
	}
	if cfg.Sheet.Role == "" {
		cfg.Sheet.Role = "PIC"
	}
	if cfg.Sheet.Timeout.Duration() == 0 {
		cfg.Sheet.Timeout = Duration(10 * time.Second)
	}
	if cfg.Sheet.ShareLink == "" && cfg.Sheet.SpreadsheetID != "" {
		cfg.Sheet.ShareLink = "https://docs.google.com/spreadsheets/d/" + cfg.Sheet.SpreadsheetID + "/edit"
	}
	if cfg.Agent.ThreadID == "" {
		cfg.Agent.ThreadID = "task_tim_john"
	}
	if cfg.Agent.MaxSteps == 0 {
		cfg.Agent.MaxSteps = 12
	}
	if cfg.Agent.PromptsFile == "" {
		cfg.Agent.PromptsFile = PromptsPath()
	}
	if cfg.Telegram.AdminContact == "" {
		cfg.Telegram.AdminContact = "@FakhriMN25"
	}
}
