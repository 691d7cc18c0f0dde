package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/posetrank/posetrank/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Cache.Redis.Addr)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[enumeration]
max_elements = 12
max_steps = 500000

[cache]
backend = "redis"

[cache.redis]
addr = "cache.internal:6379"
db = 3

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enumeration.MaxElements != 12 {
		t.Errorf("MaxElements = %d, want 12", cfg.Enumeration.MaxElements)
	}
	if cfg.Enumeration.MaxSteps != 500000 {
		t.Errorf("MaxSteps = %d, want 500000", cfg.Enumeration.MaxSteps)
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "cache.internal:6379" || cfg.Cache.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Cache.Redis)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
	// Untouched sections keep their defaults.
	if cfg.Cache.TTLHours != 24*7 {
		t.Errorf("TTLHours = %d, want %d", cfg.Cache.TTLHours, 24*7)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache\nbackend ="), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}
