package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[generate]
size = 240
variant = "charsquare"
border = "#2c3e50"
palette = "material"

[serve]
addr = ":9090"
cache = "redis"
redis_addr = "redis:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Generate.Size != 240 {
		t.Errorf("Generate.Size = %d, want 240", cfg.Generate.Size)
	}
	if cfg.Generate.Variant != "charsquare" {
		t.Errorf("Generate.Variant = %q, want charsquare", cfg.Generate.Variant)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want :9090", cfg.Serve.Addr)
	}
	if cfg.Serve.RedisAddr != "redis:6379" {
		t.Errorf("Serve.RedisAddr = %q, want redis:6379", cfg.Serve.RedisAddr)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Error("loadConfig() with an explicit missing path should fail")
	}
}

func TestLoadConfigMissingDefaultPath(t *testing.T) {
	// Point the default location at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("loadConfig() returned nil config")
	}
	if cfg.Generate.Size != 0 {
		t.Error("missing default config should yield the zero config")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig() with malformed TOML should fail")
	}
}

func TestConfigContext(t *testing.T) {
	cfg := &fileConfig{Generate: generateConfig{Size: 64}}
	ctx := withConfig(context.Background(), cfg)

	if got := configFromContext(ctx); got != cfg {
		t.Error("configFromContext should return the attached config")
	}
	if got := configFromContext(context.Background()); got == nil || got.Generate.Size != 0 {
		t.Error("configFromContext without config should return the zero config")
	}
}

func TestFlagDefaults(t *testing.T) {
	s := "flag"
	stringDefault(&s, true, "config")
	if s != "flag" {
		t.Error("changed flags must not be overridden by config values")
	}
	stringDefault(&s, false, "config")
	if s != "config" {
		t.Error("unset flags should take the config value")
	}

	n := 5
	intDefault(&n, false, 0)
	if n != 5 {
		t.Error("zero config values should leave the flag default alone")
	}
	intDefault(&n, false, 9)
	if n != 9 {
		t.Error("unset int flags should take the config value")
	}
}
