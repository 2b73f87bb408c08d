package fish

import (
	"path"
	"strings"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/tools"
)

// DefaultReleaseURL pins a specific fish release package.
const DefaultReleaseURL = "https://download.opensuse.org/repositories/shells:/fish:/release:/4/Debian_12/amd64/fish_4.0.2-1_amd64.deb"

// Tool installs the fish shell from a pinned release package. The download
// lives in a scoped temp directory that is removed whether the install
// step succeeds or fails.
type Tool struct {
	url    string
	runner tools.CommandRunner
	apt    provision.Apt
}

// NewTool constructs a fish tool with the pinned URL and local runner.
func NewTool() Tool {
	return NewToolWithRunner(DefaultReleaseURL, tools.ExecRunner{})
}

// NewToolWithRunner constructs a fish tool with explicit URL and runner.
func NewToolWithRunner(url string, runner tools.CommandRunner) Tool {
	resolved := strings.TrimSpace(url)
	if resolved == "" {
		resolved = DefaultReleaseURL
	}
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Tool{url: resolved, runner: runner, apt: provision.NewApt(runner)}
}

// Metadata returns stable identity and probe description.
func (t Tool) Metadata() provision.ToolMetadata {
	return provision.ToolMetadata{
		ID:          "tool.fish",
		Name:        "fish",
		Description: "fish shell installed from a pinned release package",
		Command:     "fish",
		VersionArgs: []string{"--version"},
	}
}

// Install downloads the pinned package into a scoped temp dir and installs it.
func (t Tool) Install() error {
	return provision.WithTempDir(t.runner, func(dir string) error {
		deb := path.Join(dir, "fish.deb")
		if err := provision.Exec(t.runner, "curl", "-fsSL", "-o", deb, t.url); err != nil {
			return err
		}
		return t.apt.InstallFile(deb)
	})
}
