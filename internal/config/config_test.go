// Package config tests for environment-based configuration.
package config

import (
	"testing"
	"time"
)

// TestLoadDefaults verifies defaults applied with an empty environment.
func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.APIURL != "http://localhost:8000/api/v1" {
		t.Errorf("Expected default API URL, got %q", c.APIURL)
	}
	if c.MaxRetries != 3 {
		t.Errorf("Expected MaxRetries 3, got %d", c.MaxRetries)
	}
	if c.BaseDelay != time.Second {
		t.Errorf("Expected BaseDelay 1s, got %v", c.BaseDelay)
	}
	if c.QueueBackend != QueueBackendFile {
		t.Errorf("Expected file queue backend, got %q", c.QueueBackend)
	}
	if c.QueueMax != 500 {
		t.Errorf("Expected QueueMax 500, got %d", c.QueueMax)
	}
	if c.MaxReplayAttempts != 0 {
		t.Errorf("Expected uncapped replay attempts, got %d", c.MaxReplayAttempts)
	}
	if c.DataDir == "" {
		t.Error("Expected DataDir to be derived from home directory")
	}
}

// TestLoadOverrides verifies environment variables override defaults.
func TestLoadOverrides(t *testing.T) {
	t.Setenv("BB_API_URL", "https://api.buildbidz.in/api/v1")
	t.Setenv("BB_MAX_RETRIES", "5")
	t.Setenv("BB_BASE_DELAY", "250ms")
	t.Setenv("BB_QUEUE_BACKEND", "sqlite")
	t.Setenv("BB_DATA_DIR", t.TempDir())

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if c.APIURL != "https://api.buildbidz.in/api/v1" {
		t.Errorf("Expected overridden API URL, got %q", c.APIURL)
	}
	if c.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries 5, got %d", c.MaxRetries)
	}
	if c.BaseDelay != 250*time.Millisecond {
		t.Errorf("Expected BaseDelay 250ms, got %v", c.BaseDelay)
	}
	if c.QueueBackend != QueueBackendSQLite {
		t.Errorf("Expected sqlite backend, got %q", c.QueueBackend)
	}
}

// TestLoadRejectsUnknownBackend verifies the backend value is validated.
func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("BB_QUEUE_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Error("Expected error for unknown queue backend")
	}
}
