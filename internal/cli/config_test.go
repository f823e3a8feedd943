package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/testgraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func ptr(f float64) *float64 { return &f }

func TestDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := defaultConfigPath()
	if err != nil {
		t.Fatalf("defaultConfigPath: %v", err)
	}
	if want := filepath.Join(dir, "testgraph", "config.toml"); got != want {
		t.Errorf("defaultConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("", nil)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "testgraph"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "testgraph", "config.toml"), []byte(`mode = "deep"`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("", nil)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Mode != "deep" {
		t.Errorf("Mode = %q, want deep", cfg.Mode)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
format = "dot"
mode = "deep"
root_label = "Suite"
min_weight = 0.25

[cache]
backend = "file"
dir = "/tmp/testgraph-cache"
ttl = "24h"
prefix = "ci:"
`)

	cfg, err := loadConfig(path, nil)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	want := Config{
		Format:    "dot",
		Mode:      "deep",
		RootLabel: "Suite",
		MinWeight: ptr(0.25),
		Cache: CacheConfig{
			Backend: backendFile,
			Dir:     "/tmp/testgraph-cache",
			TTL:     24 * time.Hour,
			Prefix:  "ci:",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode errors.Code
	}{
		{"Syntax", `format = `, errors.ErrCodeInvalidConfig},
		{"UnknownKey", `colour = "red"`, errors.ErrCodeInvalidConfig},
		{"UnknownBackend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"RedisWithoutAddr", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfig},
		{"NegativeWeight", `min_weight = -1.0`, errors.ErrCodeInvalidConfig},
		{"BadFormat", `format = "svg"`, errors.ErrCodeInvalidFormat},
		{"BadMode", `mode = "sideways"`, errors.ErrCodeInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body), nil)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLoadConfigRedisEnv(t *testing.T) {
	path := writeConfig(t, "[cache]\nbackend = \"file\"\nredis_db = 2")
	getenv := func(k string) string {
		if k == envRedisAddr {
			return "localhost:6379"
		}
		return ""
	}

	cfg, err := loadConfig(path, getenv)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Cache.Backend != backendRedis || cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
}
