package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Oracle.Kind != "search" || cfg.Oracle.MaxDepth != 7 {
		t.Errorf("Oracle = %+v", cfg.Oracle)
	}
	if cfg.Oracle.Timeout != 30*time.Second {
		t.Errorf("Oracle.Timeout = %v", cfg.Oracle.Timeout)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: "127.0.0.1:9000"
oracle:
  kind: remote
  url: http://solver.local
  timeout: 5s
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != "127.0.0.1:9000" {
		t.Errorf("Server.Address = %q", cfg.Server.Address)
	}
	if cfg.Oracle.Kind != "remote" || cfg.Oracle.URL != "http://solver.local" {
		t.Errorf("Oracle = %+v", cfg.Oracle)
	}
	if cfg.Oracle.Timeout != 5*time.Second {
		t.Errorf("Oracle.Timeout = %v", cfg.Oracle.Timeout)
	}
	if cfg.Oracle.MaxDepth != 7 {
		t.Errorf("default MaxDepth lost: %d", cfg.Oracle.MaxDepth)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CUBESYNC_ORACLE_MAX_DEPTH", "5")
	t.Setenv("CUBESYNC_STORAGE_PATH", "/tmp/cube.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Oracle.MaxDepth != 5 {
		t.Errorf("Oracle.MaxDepth = %d", cfg.Oracle.MaxDepth)
	}
	if cfg.Storage.Path != "/tmp/cube.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0644)
	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}
