package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := `# comment
DOTENV_TEST_A=hello
DOTENV_TEST_B="quoted value"
export DOTENV_TEST_C='single'
malformed line
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("DOTENV_TEST_A", "preexisting")
	os.Unsetenv("DOTENV_TEST_B")
	os.Unsetenv("DOTENV_TEST_C")
	t.Cleanup(func() {
		os.Unsetenv("DOTENV_TEST_B")
		os.Unsetenv("DOTENV_TEST_C")
	})

	if err := LoadDotenv(path); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}

	if got := os.Getenv("DOTENV_TEST_A"); got != "preexisting" {
		t.Errorf("existing var overridden: %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_B"); got != "quoted value" {
		t.Errorf("DOTENV_TEST_B = %q", got)
	}
	if got := os.Getenv("DOTENV_TEST_C"); got != "single" {
		t.Errorf("DOTENV_TEST_C = %q", got)
	}
}

func TestLoadDotenvMissingFile(t *testing.T) {
	if err := LoadDotenv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
}
