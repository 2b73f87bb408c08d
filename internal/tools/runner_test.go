package tools

import (
	"strings"
	"testing"

	"github.com/danmuck/setupctl/internal/testutil/testlog"
)

func TestExecRunnerCapturesStreamsAndExit(t *testing.T) {
	testlog.Start(t)
	r := ExecRunner{}
	stdout, stderr, exitCode, err := r.Run("sh", "-c", "echo out; echo err 1>&2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if exitCode != 0 {
		t.Fatalf("unexpected exit code: %d", exitCode)
	}
	if strings.TrimSpace(string(stdout)) != "out" {
		t.Fatalf("unexpected stdout: %q", stdout)
	}
	if strings.TrimSpace(string(stderr)) != "err" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestExecRunnerReportsCommandExitStatus(t *testing.T) {
	testlog.Start(t)
	r := ExecRunner{}
	_, _, exitCode, err := r.Run("sh", "-c", "exit 3")
	if err == nil {
		t.Fatalf("expected command failure")
	}
	if exitCode != 3 {
		t.Fatalf("expected exit 3, got %d", exitCode)
	}
}

func TestExecRunnerMissingCommandIs127(t *testing.T) {
	testlog.Start(t)
	r := ExecRunner{}
	_, _, exitCode, err := r.Run("setupctl-no-such-command")
	if err == nil {
		t.Fatalf("expected lookup failure")
	}
	if exitCode != 127 {
		t.Fatalf("expected exit 127, got %d", exitCode)
	}
}

func TestExecRunnerRunEnvAppendsEnvironment(t *testing.T) {
	testlog.Start(t)
	r := ExecRunner{}
	stdout, _, _, err := r.RunEnv([]string{"SETUPCTL_TEST_VALUE=ok"}, "sh", "-c", "echo $SETUPCTL_TEST_VALUE")
	if err != nil {
		t.Fatalf("run env: %v", err)
	}
	if strings.TrimSpace(string(stdout)) != "ok" {
		t.Fatalf("env not applied, stdout=%q", stdout)
	}
}

func TestExecRunnerExists(t *testing.T) {
	testlog.Start(t)
	r := ExecRunner{}
	if !r.Exists("sh") {
		t.Fatalf("expected sh on PATH")
	}
	if r.Exists("setupctl-no-such-command") {
		t.Fatalf("expected missing command probe to be false")
	}
}
