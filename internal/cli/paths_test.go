package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv(envCacheDir, "")
	os.Unsetenv(envCacheDir)
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv(envCacheDir, "")
	os.Unsetenv(envCacheDir)
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirOverride(t *testing.T) {
	t.Setenv(envCacheDir, "/srv/eolscan-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/eolscan-cache" {
		t.Errorf("cacheDir() = %q, override should win", dir)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv(envConfigDir, "")
	os.Unsetenv(envConfigDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	os.Unsetenv("XDG_CONFIG_HOME")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if !strings.Contains(dir, ".config") || !strings.HasSuffix(dir, appName) {
		t.Errorf("configDir() = %q", dir)
	}

	t.Setenv(envConfigDir, "/etc/eolscan")
	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if dir != "/etc/eolscan" {
		t.Errorf("configDir() = %q, override should win", dir)
	}
}
