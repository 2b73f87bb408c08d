package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/setupctl/internal/setup"
)

type fileConfig struct {
	LogPath       string           `toml:"log_path"`
	Prerequisites []string         `toml:"prerequisites"`
	NodeMajor     string           `toml:"node_major"`
	BunInstallDir string           `toml:"bun_install_dir"`
	EditorURL     string           `toml:"editor_url"`
	ShellURL      string           `toml:"shell_url"`
	Remote        remoteFileConfig `toml:"remote"`
}

type remoteFileConfig struct {
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	User       string `toml:"user"`
	KeyPath    string `toml:"key_path"`
	KnownHosts string `toml:"known_hosts"`
	Insecure   bool   `toml:"insecure_skip_host_key_checking"`
}

func loadServiceConfig(path string) (setup.ServiceConfig, error) {
	cfg := setup.DefaultServiceConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return setup.ServiceConfig{}, fmt.Errorf("load setup config: %w", err)
	}

	if meta.IsDefined("log_path") {
		cfg.LogPath = strings.TrimSpace(raw.LogPath)
	}

	if meta.IsDefined("prerequisites") {
		cfg.Prerequisites = normalizePackages(raw.Prerequisites)
	}

	if meta.IsDefined("node_major") {
		major := strings.TrimSpace(raw.NodeMajor)
		if major != "" {
			cfg.NodeMajor = major
		}
	}

	if meta.IsDefined("bun_install_dir") {
		dir := strings.TrimSpace(raw.BunInstallDir)
		if dir != "" {
			cfg.BunInstallDir = dir
		}
	}

	if meta.IsDefined("editor_url") {
		url := strings.TrimSpace(raw.EditorURL)
		if url != "" {
			cfg.EditorURL = url
		}
	}

	if meta.IsDefined("shell_url") {
		url := strings.TrimSpace(raw.ShellURL)
		if url != "" {
			cfg.ShellURL = url
		}
	}

	if meta.IsDefined("remote", "host") {
		cfg.Remote.Host = strings.TrimSpace(raw.Remote.Host)
	}
	if meta.IsDefined("remote", "port") {
		cfg.Remote.Port = strings.TrimSpace(raw.Remote.Port)
	}
	if meta.IsDefined("remote", "user") {
		cfg.Remote.User = strings.TrimSpace(raw.Remote.User)
	}
	if meta.IsDefined("remote", "key_path") {
		cfg.Remote.KeyPath = strings.TrimSpace(raw.Remote.KeyPath)
	}
	if meta.IsDefined("remote", "known_hosts") {
		cfg.Remote.KnownHostsPath = strings.TrimSpace(raw.Remote.KnownHosts)
	}
	if meta.IsDefined("remote", "insecure_skip_host_key_checking") {
		cfg.Remote.InsecureSkipHostKeyChecking = raw.Remote.Insecure
	}

	return cfg, nil
}

func normalizePackages(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, pkg := range in {
		v := strings.TrimSpace(pkg)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
