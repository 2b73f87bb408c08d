package nodejs

import (
	"fmt"
	"strings"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/tools"
)

const (
	// DefaultMajor selects the NodeSource repository channel.
	DefaultMajor = "22"

	scriptURLFormat = "https://deb.nodesource.com/setup_%s.x"
)

// Tool installs Node.js from the NodeSource apt repository.
type Tool struct {
	major  string
	runner tools.CommandRunner
	apt    provision.Apt
}

// NewTool constructs a Node.js tool with the default major and local runner.
func NewTool() Tool {
	return NewToolWithRunner(DefaultMajor, tools.ExecRunner{})
}

// NewToolWithRunner constructs a Node.js tool with explicit major and runner.
func NewToolWithRunner(major string, runner tools.CommandRunner) Tool {
	resolved := strings.TrimSpace(major)
	if resolved == "" {
		resolved = DefaultMajor
	}
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Tool{major: resolved, runner: runner, apt: provision.NewApt(runner)}
}

// Metadata returns stable identity and probe description.
func (t Tool) Metadata() provision.ToolMetadata {
	return provision.ToolMetadata{
		ID:          "tool.nodejs",
		Name:        "Node.js",
		Description: "Node.js runtime from the NodeSource apt repository",
		Command:     "node",
		VersionArgs: []string{"--version"},
	}
}

// Install registers the NodeSource repository via the vendor setup script,
// then installs the nodejs package.
func (t Tool) Install() error {
	script := fmt.Sprintf("curl -fsSL "+scriptURLFormat+" | bash -", t.major)
	if err := provision.Exec(t.runner, "bash", "-o", "pipefail", "-c", script); err != nil {
		return err
	}
	return t.apt.Install("nodejs")
}
