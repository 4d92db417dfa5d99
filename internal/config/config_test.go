package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(LoadOptions{Root: root})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Repo != "vulnera-rs/adapter" {
		t.Errorf("Repo = %q", cfg.Repo)
	}
	if cfg.APIBaseURL != "https://api.github.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DownloadBaseURL != "https://github.com" {
		t.Errorf("DownloadBaseURL = %q", cfg.DownloadBaseURL)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", cfg.CacheTTL)
	}
	if cfg.LockInstalls {
		t.Error("LockInstalls should default to false")
	}
	if cfg.ServerDir() != filepath.Join(root, "server") {
		t.Errorf("ServerDir = %q", cfg.ServerDir())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "repo: acme/adapter\ncache_ttl: 1h\nlock_installs: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{ConfigFilePath: path, Root: dir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Repo != "acme/adapter" {
		t.Errorf("Repo = %q, want %q", cfg.Repo, "acme/adapter")
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if !cfg.LockInstalls {
		t.Error("LockInstalls should be true")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VULNERA_LAUNCHER_REPO", "forked/adapter")

	cfg, err := Load(LoadOptions{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Repo != "forked/adapter" {
		t.Errorf("Repo = %q, want env override", cfg.Repo)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(LoadOptions{ConfigFilePath: "/nonexistent/config.yaml", Root: t.TempDir()}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
