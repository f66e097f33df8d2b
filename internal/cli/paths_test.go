package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

func TestConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	want := filepath.Join(dir, appName, configFile)
	if got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}
}

func TestConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("configPath() = %q, should be under home %q", dir, home)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName, configFile)) {
		t.Errorf("configPath() = %q, want .config/%s/%s suffix", dir, appName, configFile)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	c := New(os.Stderr, log.InfoLevel)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Text.Backend == "" {
		t.Error("default config has no backend")
	}

	// The user config file is picked up when present.
	path := filepath.Join(dir, appName, configFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[style]\nlabel_size = 14.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Style.LabelSize != 14 {
		t.Errorf("LabelSize = %v, want 14", cfg.Style.LabelSize)
	}

	c.backend = text.BackendApprox
	cfg, err = c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Text.Backend != text.BackendApprox {
		t.Errorf("Backend = %q, want %q", cfg.Text.Backend, text.BackendApprox)
	}

	c.backend = "cairo"
	if _, err := c.loadConfig(); err == nil {
		t.Error("loadConfig() with unknown backend should fail")
	}
}
