package provision

import "github.com/danmuck/setupctl/internal/tools"

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Apt wraps the system package manager for provisioning installs. Every
// invocation is noninteractive; a failing step is fatal to the run.
type Apt struct {
	runner tools.CommandRunner
}

// NewApt constructs an apt wrapper with the given runner.
func NewApt(runner tools.CommandRunner) Apt {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return Apt{runner: runner}
}

// Update refreshes the package index.
func (a Apt) Update() error {
	return ExecEnv(a.runner, aptEnv, "apt-get", "update")
}

// Install installs packages without pulling in recommended extras.
func (a Apt) Install(pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}
	args := append([]string{"install", "-y", "--no-install-recommends"}, pkgs...)
	return ExecEnv(a.runner, aptEnv, "apt-get", args...)
}

// InstallFile installs a downloaded package file, resolving its
// dependencies from the configured repositories.
func (a Apt) InstallFile(path string) error {
	return ExecEnv(a.runner, aptEnv, "apt-get", "install", "-y", path)
}
