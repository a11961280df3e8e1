package config

import "time"

// Config is the root configuration for the task assistant.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Models   ModelsConfig   `json:"models"`
	Sheet    SheetConfig    `json:"sheet"`
	Agent    AgentConfig    `json:"agent"`
	Gateway  GatewayConfig  `json:"gateway"`
	Reminder ReminderConfig `json:"reminder"`
}

// TelegramConfig holds the chat platform settings.
type TelegramConfig struct {
	Token        string `json:"token"` // Bot API token or ${{ .Env.VAR }} template
	AdminContact string `json:"admin_contact,omitempty"`
}

// ModelsConfig holds model provider configuration.
type ModelsConfig struct {
	Default   string                    `json:"default"`
	Providers map[string]ProviderConfig `json:"providers"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Driver    string         `json:"driver"` // "openai", "anthropic", "ollama"
	Model     string         `json:"model"`
	BaseURL   string         `json:"base_url,omitempty"`
	Auth      AuthConfig     `json:"auth"`
	MaxTokens int            `json:"max_tokens,omitempty"`
	Timeout   Duration       `json:"timeout,omitempty"`
	Options   map[string]any `json:"options,omitempty"`
}

// AuthConfig configures API key resolution.
type AuthConfig struct {
	APIKey string `json:"api_key,omitempty"` // Direct API key or ${VAR} reference
	Token  string `json:"token,omitempty"`   // OAuth/Bearer token
}

// SheetConfig holds the Google Sheets task store settings.
type SheetConfig struct {
	SpreadsheetID   string   `json:"spreadsheet_id"`
	CredentialsFile string   `json:"credentials_file"` // service-account JSON path
	SheetName       string   `json:"sheet_name,omitempty"`
	ShareLink       string   `json:"share_link,omitempty"` // link echoed in confirmations
	Reporter        string   `json:"reporter,omitempty"`   // fixed reporter column value
	Role            string   `json:"role,omitempty"`       // fixed role column value
	Timeout         Duration `json:"timeout,omitempty"`
}

// AgentConfig holds agent loop settings.
type AgentConfig struct {
	ThreadID    string `json:"thread_id,omitempty"`    // conversation memory key
	PromptsFile string `json:"prompts_file,omitempty"` // JSON file with system messages
	MaxSteps    int    `json:"max_steps,omitempty"`    // bound on the tool-call cycle
}

// GatewayConfig holds the status HTTP server settings.
type GatewayConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ReminderConfig configures the undone-task digest.
type ReminderConfig struct {
	Schedule  string   `json:"schedule,omitempty"` // 5-field cron expression, empty = disabled
	ChatID    int64    `json:"chat_id,omitempty"`  // Telegram chat receiving the digest
	Assignees []string `json:"assignees,omitempty"`
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}
