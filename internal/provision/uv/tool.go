package uv

import (
	"fmt"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/tools"
)

const installScriptURL = "https://astral.sh/uv/install.sh"

// installEnv pins the install location and disables the installer's
// self-management features so uv lands unmanaged in a system directory.
var installEnv = []string{
	"UV_INSTALL_DIR=/usr/local/bin",
	"UV_NO_MODIFY_PATH=1",
}

// Tool installs the uv Python package manager via the vendor script.
type Tool struct {
	runner tools.CommandRunner
}

// NewTool constructs a uv tool with the local runner.
func NewTool() Tool {
	return NewToolWithRunner(tools.ExecRunner{})
}

// NewToolWithRunner constructs a uv tool with an explicit runner.
func NewToolWithRunner(runner tools.CommandRunner) Tool {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Tool{runner: runner}
}

// Metadata returns stable identity and probe description.
func (t Tool) Metadata() provision.ToolMetadata {
	return provision.ToolMetadata{
		ID:          "tool.uv",
		Name:        "uv",
		Description: "uv Python package manager installed into /usr/local/bin",
		Command:     "uv",
		VersionArgs: []string{"--version"},
	}
}

// Install runs the vendor script with the pinned environment.
func (t Tool) Install() error {
	script := fmt.Sprintf("curl -LsSf %s | sh", installScriptURL)
	return provision.ExecEnv(t.runner, installEnv, "bash", "-o", "pipefail", "-c", script)
}
