package config

import (
	"os"
	"path/filepath"
)

// BasePath returns the root directory for assistant data.
// It uses $TASKRECAP_PATH if set, otherwise defaults to ~/.taskrecap.
func BasePath() string {
	if v := os.Getenv("TASKRECAP_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".taskrecap")
	}
	return filepath.Join(home, ".taskrecap")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(BasePath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(BasePath(), ".env")
}

// PromptsPath returns the default path to the system prompts file.
func PromptsPath() string {
	return filepath.Join(BasePath(), "prompts.json")
}

// ThreadsPath returns the directory holding conversation transcripts.
func ThreadsPath() string {
	return filepath.Join(BasePath(), "threads")
}
