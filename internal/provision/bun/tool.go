package bun

import (
	"fmt"
	"path"
	"strings"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/tools"
)

const (
	// DefaultInstallDir is the system-wide Bun tree outside apt's control.
	DefaultInstallDir = "/opt/bun"

	installScriptURL = "https://bun.sh/install"
	profilePath      = "/etc/profile.d/bun.sh"
	binLink          = "/usr/local/bin/bun"
)

// Tool installs the Bun runtime via the vendor install script into a fixed
// system directory, links it into the standard binary path, and persists a
// profile fragment for future interactive sessions.
type Tool struct {
	installDir string
	runner     tools.CommandRunner
}

// NewTool constructs a Bun tool with the default install dir and local runner.
func NewTool() Tool {
	return NewToolWithRunner(DefaultInstallDir, tools.ExecRunner{})
}

// NewToolWithRunner constructs a Bun tool with explicit install dir and runner.
func NewToolWithRunner(installDir string, runner tools.CommandRunner) Tool {
	resolved := strings.TrimSpace(installDir)
	if resolved == "" {
		resolved = DefaultInstallDir
	}
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Tool{installDir: resolved, runner: runner}
}

// Metadata returns stable identity and probe description.
func (t Tool) Metadata() provision.ToolMetadata {
	return provision.ToolMetadata{
		ID:          "tool.bun",
		Name:        "Bun",
		Description: "Bun JavaScript runtime installed outside the package manager",
		Command:     "bun",
		VersionArgs: []string{"--version"},
	}
}

// Install runs the vendor script with BUN_INSTALL pinned, then wires the
// binary link and the login-shell PATH fragment.
func (t Tool) Install() error {
	env := []string{"BUN_INSTALL=" + t.installDir}
	script := fmt.Sprintf("curl -fsSL %s | bash", installScriptURL)
	if err := provision.ExecEnv(t.runner, env, "bash", "-o", "pipefail", "-c", script); err != nil {
		return err
	}
	if err := provision.Exec(t.runner, "ln", "-sf", path.Join(t.installDir, "bin", "bun"), binLink); err != nil {
		return err
	}
	return t.writeProfile()
}

// writeProfile persists the install dir export so future interactive
// sessions resolve bun without the symlink.
func (t Tool) writeProfile() error {
	fragment := fmt.Sprintf("export BUN_INSTALL=%q\nexport PATH=\"$BUN_INSTALL/bin:$PATH\"\n", t.installDir)
	cmd := fmt.Sprintf("cat > %s <<'EOF'\n%sEOF\n", profilePath, fragment)
	return provision.Exec(t.runner, "sh", "-c", cmd)
}
