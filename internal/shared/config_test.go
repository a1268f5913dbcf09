package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.BaseURL != "http://localhost:8080" {
			t.Errorf("expected base URL http://localhost:8080, got %s", config.Server.BaseURL)
		}

		if config.Server.TimeoutSeconds != 30 {
			t.Errorf("expected timeout 30, got %d", config.Server.TimeoutSeconds)
		}

		if config.Search.PageSize != 9 {
			t.Errorf("expected search page size 9, got %d", config.Search.PageSize)
		}

		if config.Search.DebounceMS != 300 {
			t.Errorf("expected debounce 300ms, got %d", config.Search.DebounceMS)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Server.BaseURL != defaultConfig.Server.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
base_url = "https://backlog.example.com"
token = "qst_abc123"
timeout_seconds = 10
rate_limit = 2.5

[search]
page_size = 20
debounce_ms = 150
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.BaseURL != "https://backlog.example.com" {
			t.Errorf("expected custom base URL, got %s", config.Server.BaseURL)
		}
		if config.Server.Token != "qst_abc123" {
			t.Errorf("expected custom token, got %s", config.Server.Token)
		}
		if config.Server.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %f", config.Server.RateLimit)
		}
		if config.Search.PageSize != 20 {
			t.Errorf("expected page size 20, got %d", config.Search.PageSize)
		}
	})

	t.Run("LoadConfigMissingFile", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("loading a missing config file should fail")
		}
	})

	t.Run("LoadConfigInvalidTOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("loading invalid TOML should fail")
		}
	})
}
