package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.IdlePromptSeconds != 120 || !cfg.ImagesEnabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if filepath.Base(cfg.DBPath) != "onestep.db" || filepath.Base(cfg.LogFile) != "onestep.log" {
		t.Fatalf("unexpected default paths: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFileMissingIsFine(t *testing.T) {
	base := Default()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != base {
		t.Fatalf("expected base config, got %+v", cfg)
	}
}

func TestLoadFileOverlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "db_path: /tmp/x.db\nimages_enabled: false\nidle_prompt_seconds: 30\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	base := Default()
	cfg, err := LoadFile(path, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.ImagesEnabled || cfg.IdlePromptSeconds != 30 {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.LogFile != base.LogFile {
		t.Fatalf("unset keys should keep base values: %+v", cfg)
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path, Default()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ONESTEP_DB_PATH", "state/custom.db")
	t.Setenv("ONESTEP_LOG_FORMAT", "JSON")
	t.Setenv("ONESTEP_DEBUG", "yes")
	t.Setenv("ONESTEP_IDLE_PROMPT_SECONDS", "45")
	t.Setenv("ONESTEP_IMAGES", "off")

	cfg := FromEnv(Default())
	if cfg.DBPath != "state/custom.db" || cfg.LogFormat != LogFormatJSON {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !cfg.Debug || cfg.ImagesEnabled || cfg.IdlePromptSeconds != 45 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("ONESTEP_IDLE_PROMPT_SECONDS", "soon")
	t.Setenv("ONESTEP_DEBUG", "maybe")

	cfg := FromEnv(Default())
	if cfg.IdlePromptSeconds != 120 || cfg.Debug {
		t.Fatalf("garbage env should be ignored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
	cfg = Default()
	cfg.DBPath = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty db path")
	}
}
