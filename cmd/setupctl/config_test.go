package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/setup"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServiceConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
log_path = "/tmp/setupctl-test.log"
node_major = "20"
prerequisites = ["curl", " ", "wget"]

[remote]
host = "node-a"
user = "root"
key_path = "/root/.ssh/id_ed25519"
`)

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogPath != "/tmp/setupctl-test.log" {
		t.Fatalf("log path not applied: %q", cfg.LogPath)
	}
	if cfg.NodeMajor != "20" {
		t.Fatalf("node major not applied: %q", cfg.NodeMajor)
	}
	if !reflect.DeepEqual(cfg.Prerequisites, []string{"curl", "wget"}) {
		t.Fatalf("prerequisites not normalized: %v", cfg.Prerequisites)
	}
	if cfg.Remote.Host != "node-a" || cfg.Remote.User != "root" {
		t.Fatalf("remote not applied: %+v", cfg.Remote)
	}

	defaults := setup.DefaultServiceConfig()
	if cfg.BunInstallDir != defaults.BunInstallDir {
		t.Fatalf("undefined field must keep default: %q", cfg.BunInstallDir)
	}
	if cfg.ShellURL != defaults.ShellURL {
		t.Fatalf("undefined field must keep default: %q", cfg.ShellURL)
	}
}

func TestLoadServiceConfigIgnoresBlankOverrides(t *testing.T) {
	path := writeConfig(t, `
node_major = "  "
bun_install_dir = ""
`)

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defaults := setup.DefaultServiceConfig()
	if cfg.NodeMajor != defaults.NodeMajor {
		t.Fatalf("blank node major must keep default: %q", cfg.NodeMajor)
	}
	if cfg.BunInstallDir != defaults.BunInstallDir {
		t.Fatalf("blank install dir must keep default: %q", cfg.BunInstallDir)
	}
}

func TestResolveConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := resolveConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !reflect.DeepEqual(cfg, setup.DefaultServiceConfig()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadServiceConfigParseFailure(t *testing.T) {
	path := writeConfig(t, `log_path = [`)
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatalf("expected parse failure")
	}
}

func TestExitCodeMapping(t *testing.T) {
	if got := exitCode(provision.ErrNotRoot); got != 1 {
		t.Fatalf("privilege failure must exit 1, got %d", got)
	}
	cmdErr := &provision.CommandError{Cmd: "apt-get", Exit: 100, Err: errors.New("exit status 100")}
	if got := exitCode(cmdErr); got != 100 {
		t.Fatalf("command failure must propagate its status, got %d", got)
	}
	if got := exitCode(errors.New("boom")); got != 1 {
		t.Fatalf("generic failure must exit 1, got %d", got)
	}
}
