package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chromabench/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestFileCacheDir_Config(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bench.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"file\"\ndir = \"/var/cache/bench\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	c.configPath = cfg
	got, err := c.fileCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/var/cache/bench" {
		t.Errorf("fileCacheDir() = %q, want config value", got)
	}
}

func TestNewCache(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		opts    pipeline.CacheOptions
		wantErr bool
	}{
		{"none", pipeline.CacheOptions{Backend: pipeline.CacheNone}, false},
		{"empty", pipeline.CacheOptions{}, false},
		{"file", pipeline.CacheOptions{Backend: pipeline.CacheFile, Dir: dir}, false},
		{"redis bad url", pipeline.CacheOptions{Backend: pipeline.CacheRedis, URL: "not a url"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(t.Context(), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newCache() error = %v, wantErr %v", err, tt.wantErr)
			}
			if c != nil {
				c.Close()
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := New(os.Stderr, LogInfo)
	if err := execute(t, c, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}
