package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `environment: test
fred:
  timeout: 5s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRequiresAPIKey(t *testing.T) {
	path := writeConfig(t, minimalYAML)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error without fred.api_key")
	}
}

func TestLoadWithEnvSuppliesAPIKey(t *testing.T) {
	path := writeConfig(t, minimalYAML)
	t.Setenv("FRED_API_KEY", "test-key")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if c.Fred.APIKey != "test-key" {
		t.Errorf("api key = %q, want env value", c.Fred.APIKey)
	}
}

func TestLoadWithEnvShippedConfig(t *testing.T) {
	// The committed config omits the key on purpose; it must load once the
	// environment provides it.
	t.Setenv("FRED_API_KEY", "test-key")

	c, err := LoadWithEnv("../../config/config.yaml")
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if c.Fred.APIKey != "test-key" {
		t.Errorf("api key = %q, want env value", c.Fred.APIKey)
	}
	if c.Pipeline.WindowDays != 730 {
		t.Errorf("window_days = %d, want 730", c.Pipeline.WindowDays)
	}
}

func TestLoadWithEnvRedisOverride(t *testing.T) {
	path := writeConfig(t, minimalYAML)
	t.Setenv("FRED_API_KEY", "test-key")
	t.Setenv("REDIS_ADDR", "redis:6379")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if !c.PayloadCache.Redis.Enabled || c.PayloadCache.Redis.Addr != "redis:6379" {
		t.Errorf("redis override not applied: %+v", c.PayloadCache.Redis)
	}
}

func TestDefaults(t *testing.T) {
	path := writeConfig(t, minimalYAML)
	t.Setenv("FRED_API_KEY", "test-key")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", c.Server.Port)
	}
	if c.Pipeline.WindowDays != 730 {
		t.Errorf("window_days = %d, want 730", c.Pipeline.WindowDays)
	}
}
