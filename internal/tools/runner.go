package tools

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
)

// CommandRunner abstracts host command execution for provisioning steps.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, []byte, int32, error)
	RunEnv(env []string, name string, args ...string) ([]byte, []byte, int32, error)
	Exists(name string) bool
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// tools command-runner implementation backed by os/exec.
func (r ExecRunner) Run(name string, args ...string) ([]byte, []byte, int32, error) {
	return runCmd(exec.Command(name, args...))
}

// RunEnv executes a command with extra environment variables appended to the
// inherited environment.
func (r ExecRunner) RunEnv(env []string, name string, args ...string) ([]byte, []byte, int32, error) {
	cmd := exec.Command(name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return runCmd(cmd)
}

// Exists reports whether name resolves to an executable on PATH.
func (r ExecRunner) Exists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runCmd(cmd *exec.Cmd) ([]byte, []byte, int32, error) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), int32(exitErr.ExitCode()), err
	}

	exitCode := int32(1)
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		exitCode = 127
	}
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}
