package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGetConfigDir validates config directory access
func TestGetConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	configDir := GetConfigDir()
	if configDir != tempDir {
		t.Fatalf("Expected config dir %s, got %s", tempDir, configDir)
	}

	if _, err := os.Stat(configDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
}

// TestGetCredentialsPath validates credentials path
func TestGetCredentialsPath(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	expected := filepath.Join(tempDir, "credentials.json")
	if GetCredentialsPath() != expected {
		t.Errorf("Expected credentials path %s, got %s", expected, GetCredentialsPath())
	}
}

// TestConfigDirectoryCreation validates directory is created
func TestConfigDirectoryCreation(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "new", "config", "location", "config.toml")

	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if _, err := os.Stat(GetConfigDir()); err != nil {
		t.Fatalf("Config directory was not created: %v", err)
	}
}

// TestDefaults validates the development defaults
func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("output.format"); got != "text" {
		t.Errorf("Expected default format 'text', got '%s'", got)
	}
	if got := GetInt("api.timeout"); got != 30 {
		t.Errorf("Expected default timeout 30, got %d", got)
	}
	if got := GetInt("feed.page_size"); got != 10 {
		t.Errorf("Expected default page size 10, got %d", got)
	}
	if got := GetString("feed.category"); got != "general" {
		t.Errorf("Expected default category 'general', got '%s'", got)
	}
	if got := GetString("images.db_path"); got != filepath.Join(tempDir, "images.db") {
		t.Errorf("Unexpected image db path %s", got)
	}
}

// TestServiceURLs validates per-service overrides fall back to base_url
func TestServiceURLs(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	Set("api.base_url", "http://dev.local:8080")
	Set("api.user_url", "")
	Set("api.content_url", "")
	if UserServiceURL() != "http://dev.local:8080" || ContentServiceURL() != "http://dev.local:8080" {
		t.Errorf("Expected both services to use base_url, got %s and %s", UserServiceURL(), ContentServiceURL())
	}

	Set("api.user_url", "http://users.local:8083")
	Set("api.content_url", "http://content.local:8082")
	if UserServiceURL() != "http://users.local:8083" {
		t.Errorf("Expected user override, got %s", UserServiceURL())
	}
	if ContentServiceURL() != "http://content.local:8082" {
		t.Errorf("Expected content override, got %s", ContentServiceURL())
	}

	Set("api.user_url", "")
	Set("api.content_url", "")
}

// TestConfigFileOverridesDefaults validates that a user config file wins over defaults
func TestConfigFileOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	content := "[feed]\npage_size = 25\ncategory = \"movie\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetInt("feed.page_size"); got != 25 {
		t.Errorf("Expected page size 25 from file, got %d", got)
	}
	if got := GetString("feed.category"); got != "movie" {
		t.Errorf("Expected category 'movie' from file, got '%s'", got)
	}
}

// TestExpandPath validates tilde expansion
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/varta.log"); got != filepath.Join(home, "varta.log") {
		t.Errorf("Expected expanded path, got %s", got)
	}
	if got := expandPath("/tmp/varta.log"); got != "/tmp/varta.log" {
		t.Errorf("Absolute path should be unchanged, got %s", got)
	}
}
