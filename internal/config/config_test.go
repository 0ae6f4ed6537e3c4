package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CLINIC_API_URL", "CLINIC_TIMEOUT_SECONDS", "CLINIC_LOG_LEVEL", "CLINIC_OFFLINE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.APIBaseURL != DefaultAPIBaseURL {
			t.Errorf("APIBaseURL: got %q, want %q", cfg.APIBaseURL, DefaultAPIBaseURL)
		}
		if cfg.Timeout() != 15*time.Second {
			t.Errorf("Timeout: got %v, want 15s", cfg.Timeout())
		}
		if cfg.LogLevel != "info" {
			t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
		}
	})

	t.Run("existing file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		if err := Save(dir, &Config{APIBaseURL: "http://clinic.test", TimeoutSeconds: 3, LogLevel: "debug"}); err != nil {
			t.Fatalf("setup: save failed: %v", err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.APIBaseURL != "http://clinic.test" {
			t.Errorf("APIBaseURL: got %q", cfg.APIBaseURL)
		}
		if cfg.Timeout() != 3*time.Second {
			t.Errorf("Timeout: got %v, want 3s", cfg.Timeout())
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		if err := Save(dir, &Config{APIBaseURL: "http://file.test"}); err != nil {
			t.Fatalf("setup: save failed: %v", err)
		}
		t.Setenv("CLINIC_API_URL", "http://env.test")
		t.Setenv("CLINIC_OFFLINE", "true")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.APIBaseURL != "http://env.test" {
			t.Errorf("APIBaseURL: got %q, want env value", cfg.APIBaseURL)
		}
		if !cfg.Offline {
			t.Error("Offline: expected true from environment")
		}
	})

	t.Run("dotenv file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CLINIC_TIMEOUT_SECONDS=7\n"), 0644); err != nil {
			t.Fatalf("setup: write .env failed: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("CLINIC_TIMEOUT_SECONDS") })

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.TimeoutSeconds != 7 {
			t.Errorf("TimeoutSeconds: got %d, want 7", cfg.TimeoutSeconds)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		if err := os.MkdirAll(Dir(dir), 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, configFile), []byte("{not json"), 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}
		if _, err := Load(dir); err == nil {
			t.Error("expected error for invalid json")
		}
	})
}

func TestSetAPIBaseURL(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := Save(dir, &Config{LogLevel: "warn"}); err != nil {
		t.Fatalf("setup: save failed: %v", err)
	}

	if err := SetAPIBaseURL(dir, "https://api.clinic.example"); err != nil {
		t.Fatalf("SetAPIBaseURL failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIBaseURL != "https://api.clinic.example" {
		t.Errorf("APIBaseURL: got %q", cfg.APIBaseURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel should be preserved, got %q", cfg.LogLevel)
	}
}
