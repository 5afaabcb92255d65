package environments

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/onurcolak/termii-gateway/pkg/logger"
	"github.com/onurcolak/termii-gateway/pkg/termii"
)

func TestLoad_ReadsTermiiSettings(t *testing.T) {
	t.Setenv("TERMII_BASE_URL", "https://termii.example.com")
	t.Setenv("TERMII_API_KEY", "live-key")
	t.Setenv("TERMII_TIMEOUT_SECONDS", "5")
	t.Setenv("MONITOR_LOW_BALANCE", "250.5")
	t.Setenv("MONITOR_AUTO_START", "true")

	cfg := Load()

	if cfg.Termii.BaseURL != "https://termii.example.com" {
		t.Errorf("unexpected base URL %q", cfg.Termii.BaseURL)
	}
	if cfg.Termii.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.Termii.Timeout)
	}
	if cfg.Monitor.LowBalance != 250.5 {
		t.Errorf("expected low balance 250.5, got %v", cfg.Monitor.LowBalance)
	}
	if !cfg.Monitor.AutoStart {
		t.Errorf("expected monitor auto start")
	}

	client := cfg.Termii.Client()
	if client.BaseURL != "https://termii.example.com" || client.APIKey != "live-key" {
		t.Errorf("unexpected client config %+v", client)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TERMII_BASE_URL", termii.DefaultBaseURL)
	t.Setenv("MONITOR_INTERVAL_MINUTES", "not-a-number")

	cfg := Load()

	if cfg.Monitor.Interval != 15*time.Minute {
		t.Errorf("expected fallback interval 15m, got %v", cfg.Monitor.Interval)
	}
	if cfg.Termii.BaseURL != termii.DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.Termii.BaseURL)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("ALERT_TIMEOUT", "750ms")

	if got := GetEnvAsDuration("ALERT_TIMEOUT", time.Second); got != 750*time.Millisecond {
		t.Errorf("expected 750ms, got %v", got)
	}
	if got := GetEnvAsDuration("ALERT_TIMEOUT_UNSET", time.Second); got != time.Second {
		t.Errorf("expected fallback 1s, got %v", got)
	}
}

func TestLoadDotEnv_MalformedFileIsLogged(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BAD-KEY=value\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	var buf bytes.Buffer
	restore := logger.SetOutput(&buf)
	defer restore()

	loadDotEnv(path)

	if !strings.Contains(buf.String(), "Failed to load .env file") {
		t.Fatalf("expected a warning for the malformed file, got %q", buf.String())
	}
}

func TestLoadDotEnv_MissingFileIsSilent(t *testing.T) {
	var buf bytes.Buffer
	restore := logger.SetOutput(&buf)
	defer restore()

	loadDotEnv(filepath.Join(t.TempDir(), ".env"))

	if buf.Len() != 0 {
		t.Fatalf("expected no output for a missing file, got %q", buf.String())
	}
}

func TestLoadDotEnv_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TERMII_DOTENV_SAMPLE=from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("TERMII_DOTENV_SAMPLE") })

	loadDotEnv(path)

	if got := GetEnv("TERMII_DOTENV_SAMPLE", ""); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
