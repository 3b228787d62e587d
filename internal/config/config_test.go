package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.User.ID != "current-user" {
		t.Errorf("User.ID = %q, want current-user", cfg.User.ID)
	}
	if cfg.Transport.IdleTimeoutMs != 30000 {
		t.Errorf("IdleTimeoutMs = %d, want 30000", cfg.Transport.IdleTimeoutMs)
	}
	if cfg.Renderer.NearBottomThreshold != 100 {
		t.Errorf("NearBottomThreshold = %d, want 100", cfg.Renderer.NearBottomThreshold)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := Default()
	cfg.User.ID = "custom-user"
	cfg.Transport.IdleTimeoutMs = 10000
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.User.ID != "custom-user" {
		t.Errorf("User.ID = %q, want custom-user", loaded.User.ID)
	}
	if loaded.Transport.IdleTimeoutMs != 10000 {
		t.Errorf("IdleTimeoutMs = %d, want 10000", loaded.Transport.IdleTimeoutMs)
	}
	// Untouched sections keep their defaults.
	if loaded.Seed.Chats != 8 {
		t.Errorf("Seed.Chats = %d, want 8", loaded.Seed.Chats)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[user]\nid = \"alice\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.User.ID != "alice" {
		t.Errorf("User.ID = %q, want alice", cfg.User.ID)
	}
	if cfg.Transport.DeliveredDelayMs != 500 {
		t.Errorf("DeliveredDelayMs = %d, want default 500", cfg.Transport.DeliveredDelayMs)
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
