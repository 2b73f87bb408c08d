package code

import (
	"path"
	"strings"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/tools"
)

// DefaultDownloadURL is the vendor redirect for the stable linux deb build.
const DefaultDownloadURL = "https://code.visualstudio.com/sha/download?build=stable&os=linux-deb-x64"

// Tool installs Visual Studio Code from a downloaded package file. The
// download lives in a scoped temp directory that is removed whether the
// install step succeeds or fails.
type Tool struct {
	url    string
	runner tools.CommandRunner
	apt    provision.Apt
}

// NewTool constructs an editor tool with the default URL and local runner.
func NewTool() Tool {
	return NewToolWithRunner(DefaultDownloadURL, tools.ExecRunner{})
}

// NewToolWithRunner constructs an editor tool with explicit URL and runner.
func NewToolWithRunner(url string, runner tools.CommandRunner) Tool {
	resolved := strings.TrimSpace(url)
	if resolved == "" {
		resolved = DefaultDownloadURL
	}
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Tool{url: resolved, runner: runner, apt: provision.NewApt(runner)}
}

// Metadata returns stable identity and probe description.
func (t Tool) Metadata() provision.ToolMetadata {
	return provision.ToolMetadata{
		ID:          "tool.code",
		Name:        "Visual Studio Code",
		Description: "VS Code editor installed from the vendor deb package",
		Command:     "code",
		VersionArgs: []string{"--version"},
	}
}

// Install downloads the package into a scoped temp dir and installs it.
func (t Tool) Install() error {
	return provision.WithTempDir(t.runner, func(dir string) error {
		deb := path.Join(dir, "code.deb")
		if err := provision.Exec(t.runner, "curl", "-fsSL", "-o", deb, t.url); err != nil {
			return err
		}
		return t.apt.InstallFile(deb)
	})
}
