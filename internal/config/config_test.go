package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dario.lol/hover/pkg/hover"
)

func withHome(t *testing.T, content string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"USERNAME", "PASSWORD", "BASE_URL", "TIMEOUT", "CACHING"} {
		t.Setenv("HOVER_"+key, "")
		os.Unsetenv("HOVER_" + key)
	}
	if content != "" {
		path := filepath.Join(home, ".hover-cli.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing config: %v", err)
		}
	}
	t.Cleanup(func() { Cfg = defaults() })
	return home
}

func TestLoadConfigDefaults(t *testing.T) {
	withHome(t, "")

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if Cfg.BaseURL != hover.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", Cfg.BaseURL, hover.DefaultBaseURL)
	}
	if Cfg.Timeout != hover.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", Cfg.Timeout, hover.DefaultTimeout)
	}
	if !Cfg.Caching {
		t.Error("Caching should default to true")
	}
	if Cfg.HasCredentials() {
		t.Error("HasCredentials() = true without credentials")
	}
}

func TestLoadConfigFile(t *testing.T) {
	withHome(t, strings.Join([]string{
		"username: alice",
		"password: hunter2",
		"base_url: http://127.0.0.1:8080/api",
		"timeout: 45s",
		"caching: false",
	}, "\n"))

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := Config{
		Username: "alice",
		Password: "hunter2",
		BaseURL:  "http://127.0.0.1:8080/api",
		Timeout:  45 * time.Second,
		Caching:  false,
	}
	if Cfg != want {
		t.Errorf("Cfg = %+v, want %+v", Cfg, want)
	}
	if !Cfg.HasCredentials() {
		t.Error("HasCredentials() = false with credentials")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	withHome(t, "username: alice\npassword: hunter2\n")
	t.Setenv("HOVER_USERNAME", "bob")
	t.Setenv("HOVER_TIMEOUT", "5s")

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if Cfg.Username != "bob" {
		t.Errorf("Username = %q, want bob", Cfg.Username)
	}
	if Cfg.Password != "hunter2" {
		t.Errorf("Password = %q, want hunter2", Cfg.Password)
	}
	if Cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", Cfg.Timeout)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	withHome(t, "username: [unterminated\n")

	if err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() should fail on malformed YAML")
	}
}

func TestSaveCachingPreservesOtherKeys(t *testing.T) {
	home := withHome(t, "username: alice\npassword: hunter2\n")

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	Cfg.Caching = false
	if err := SaveCaching(); err != nil {
		t.Fatalf("SaveCaching() error = %v", err)
	}

	Cfg = defaults()
	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}
	if Cfg.Caching {
		t.Error("Caching should be false after save")
	}
	if Cfg.Username != "alice" || Cfg.Password != "hunter2" {
		t.Errorf("credentials lost after save: %+v", Cfg)
	}

	if _, err := os.Stat(filepath.Join(home, ".hover-cli.yaml")); err != nil {
		t.Errorf("config file missing: %v", err)
	}
}

func TestSaveCachingCreatesFile(t *testing.T) {
	home := withHome(t, "")
	t.Setenv("HOVER_PASSWORD", "from-env")

	Cfg.Caching = false
	if err := SaveCaching(); err != nil {
		t.Fatalf("SaveCaching() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".hover-cli.yaml"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "caching: false") {
		t.Errorf("config = %q, want caching: false", data)
	}
	if strings.Contains(string(data), "from-env") {
		t.Errorf("config = %q, environment value was written", data)
	}
}
