package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DefaultDays != 7 {
			t.Errorf("DefaultDays = %d, want 7", cfg.DefaultDays)
		}
		if cfg.SessionsDir != "" {
			t.Errorf("SessionsDir = %q, want empty", cfg.SessionsDir)
		}
	})

	t.Run("valid yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
sessions_dir: /data/claude/projects
default_days: 14
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SessionsDir != "/data/claude/projects" {
			t.Errorf("SessionsDir = %q, want %q", cfg.SessionsDir, "/data/claude/projects")
		}
		if cfg.DefaultDays != 14 {
			t.Errorf("DefaultDays = %d, want 14", cfg.DefaultDays)
		}
	})

	t.Run("missing days falls back to default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("sessions_dir: /data\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DefaultDays != 7 {
			t.Errorf("DefaultDays = %d, want 7", cfg.DefaultDays)
		}
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("sessions_dir: [unclosed\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := Load(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
