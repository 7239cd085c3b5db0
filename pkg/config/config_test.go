package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
app:
  name: testapp
  request_timeout_seconds: 10
store:
  name: Fashion Forward Boutique
  type: clothing
  location: Downtown Seattle
providers:
  openai_model: gpt-4-turbo-preview
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	os.Setenv("OPENAI_API_KEY", "sk-test")
	defer os.Unsetenv("OPENAI_API_KEY")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.App.Name != "testapp" {
		t.Errorf("expected app name testapp, got %s", cfg.App.Name)
	}
	if cfg.Providers.OpenAIAPIKey != "sk-test" {
		t.Error("env override for OPENAI_API_KEY not applied")
	}
	if cfg.Providers.OpenAIModel != "gpt-4-turbo-preview" {
		t.Errorf("unexpected model: %s", cfg.Providers.OpenAIModel)
	}

	sc := cfg.StoreContext()
	if sc.Name != "Fashion Forward Boutique" || sc.Type != "clothing" {
		t.Errorf("store context not derived from config: %+v", sc)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}

	if cfg.Campaign.DefaultBudget != 5000 {
		t.Errorf("expected default budget 5000, got %v", cfg.Campaign.DefaultBudget)
	}
	if cfg.Campaign.DefaultDuration != 30 {
		t.Errorf("expected default duration 30, got %d", cfg.Campaign.DefaultDuration)
	}
	if cfg.App.RequestTimeout != 45 {
		t.Errorf("expected default timeout 45, got %d", cfg.App.RequestTimeout)
	}
}
