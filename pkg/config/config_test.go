package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/drawspec/pkg/cache"
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[compile]
margin = 0.25
auto_fit = false
anchor = "center"

[render]
formats = ["svg", "png"]
scale = 3.0

[cache]
backend = "none"
ttl = "12h"

[server]
addr = ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Compile.Margin == nil || *cfg.Compile.Margin != 0.25 {
		t.Errorf("margin = %v", cfg.Compile.Margin)
	}
	if cfg.Compile.AutoFit == nil || *cfg.Compile.AutoFit {
		t.Errorf("auto_fit = %v", cfg.Compile.AutoFit)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	// Defaults survive for keys the file leaves out.
	if cfg.Store.Database != store.DefaultDatabase {
		t.Errorf("database = %q, want default", cfg.Store.Database)
	}

	opts := cfg.PipelineOptions()
	if diff := cmp.Diff([]string{"svg", "png"}, opts.Formats); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Anchor != "center" || opts.Scale != 3 {
		t.Errorf("options = %+v", opts)
	}

	ttl, err := cfg.TTL()
	if err != nil || ttl.Hours() != 12 {
		t.Errorf("TTL() = %v, %v", ttl, err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"bad anchor", "[compile]\nanchor = \"middle\""},
		{"bad format", "[render]\nformats = [\"gif\"]"},
		{"malformed", "[compile\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") with no file: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}

func TestDefaultPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "drawspec", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Cache.Backend = CacheNone
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("OpenCache(none) = %T, want cache.NullCache", c)
	}

	cfg = Default()
	cfg.Cache.Dir = t.TempDir()
	c, err = cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != cfg.Cache.Dir {
		t.Errorf("OpenCache(file) = %T", c)
	}
}

func TestOpenStoreMemory(t *testing.T) {
	st, err := Default().OpenStore(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := st.(*store.MemoryStore); !ok {
		t.Errorf("OpenStore() = %T, want *store.MemoryStore", st)
	}
}
