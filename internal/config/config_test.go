package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SIGHTLINE_API_KEY", "SIGHTLINE_PROFILE_ID", "SIGHTLINE_ENDPOINT_URL",
		"SIGHTLINE_LOG_LEVEL", "SIGHTLINE_CONFIG", "PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_MissingAPIKeyRefused(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGHTLINE_PROFILE_ID", "prof-1")

	if _, err := Load(); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("got %v, want ErrNoAPIKey", err)
	}
}

func TestLoad_MissingProfileRefused(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGHTLINE_API_KEY", "key-1")

	if _, err := Load(); !errors.Is(err, ErrNoProfileID) {
		t.Errorf("got %v, want ErrNoProfileID", err)
	}
}

func TestLoad_EnvironmentValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGHTLINE_API_KEY", "key-1")
	t.Setenv("SIGHTLINE_PROFILE_ID", "prof-1")
	t.Setenv("SIGHTLINE_ENDPOINT_URL", "wss://example.test/session")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "key-1" || cfg.ProfileID != "prof-1" {
		t.Errorf("credentials: %+v", cfg)
	}
	if cfg.EndpointURL != "wss://example.test/session" {
		t.Errorf("endpoint: %q", cfg.EndpointURL)
	}
	if cfg.Port != 9090 {
		t.Errorf("port: %d", cfg.Port)
	}
}

func TestLoad_YAMLFileThenEnvOverride(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "sightline.yaml")
	data := "api_key: file-key\nprofile_id: file-prof\nport: 7070\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SIGHTLINE_CONFIG", path)
	t.Setenv("SIGHTLINE_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("env should override file, got %q", cfg.APIKey)
	}
	if cfg.ProfileID != "file-prof" || cfg.Port != 7070 || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGHTLINE_API_KEY", "key-1")
	t.Setenv("SIGHTLINE_PROFILE_ID", "prof-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.EndpointURL != DefaultEndpointURL || cfg.Port != DefaultServerPort {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestServerURL(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SIGHTLINE_SERVER_URL")
	if got := ServerURL(); got != "http://localhost:8080" {
		t.Errorf("default server url: %q", got)
	}

	t.Setenv("SIGHTLINE_SERVER_URL", "http://cam.local:9000")
	if got := ServerURL(); got != "http://cam.local:9000" {
		t.Errorf("override: %q", got)
	}
}
