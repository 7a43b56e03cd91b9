package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/nodeshift/pkg/cache"
	"github.com/matzehuels/nodeshift/pkg/config"
)

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name    string
		cfg     config.Cache
		noCache bool
		isNull  bool
	}{
		{"no-cache flag", config.Cache{Backend: config.BackendFile}, true, true},
		{"none backend", config.Cache{Backend: config.BackendNone}, false, true},
		{"file backend default dir", config.Cache{Backend: config.BackendFile}, false, false},
		{"file backend explicit dir", config.Cache{Backend: config.BackendFile, Dir: t.TempDir()}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer c.Close()
			_, isNull := c.(cache.NullCache)
			if isNull != tt.isNull {
				t.Errorf("got %T, want null=%v", c, tt.isNull)
			}
		})
	}
}
