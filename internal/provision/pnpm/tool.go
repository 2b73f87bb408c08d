package pnpm

import (
	"github.com/rs/zerolog/log"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/tools"
)

const activator = "corepack"

// Tool activates pnpm through the corepack activator bundled with Node.js.
type Tool struct {
	runner tools.CommandRunner
}

// NewTool constructs a pnpm tool with the local runner.
func NewTool() Tool {
	return NewToolWithRunner(tools.ExecRunner{})
}

// NewToolWithRunner constructs a pnpm tool with an explicit runner.
func NewToolWithRunner(runner tools.CommandRunner) Tool {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Tool{runner: runner}
}

// Metadata returns stable identity and probe description. pnpm requires a
// provisioned Node.js because corepack ships with it.
func (t Tool) Metadata() provision.ToolMetadata {
	return provision.ToolMetadata{
		ID:          "tool.pnpm",
		Name:        "pnpm",
		Description: "pnpm package manager activated through corepack",
		Command:     "pnpm",
		VersionArgs: []string{"--version"},
		Requires:    []string{"tool.nodejs"},
	}
}

// Install enables corepack and activates the latest pnpm. A missing
// activator is tolerated: the tool is skipped instead of failing the run.
// Failures of the activation commands themselves stay fatal.
func (t Tool) Install() error {
	if !t.runner.Exists(activator) {
		log.Warn().Str("tool", "tool.pnpm").Msg("corepack not found, skipping pnpm activation")
		return nil
	}
	if err := provision.Exec(t.runner, activator, "enable"); err != nil {
		return err
	}
	return provision.Exec(t.runner, activator, "prepare", "pnpm@latest", "--activate")
}
