package uv

import (
	"strings"
	"testing"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/testutil/testlog"
)

type fakeRunner struct {
	commands [][]string
	envs     [][]string
}

func (r *fakeRunner) Run(name string, args ...string) ([]byte, []byte, int32, error) {
	return r.record(nil, name, args)
}

func (r *fakeRunner) RunEnv(env []string, name string, args ...string) ([]byte, []byte, int32, error) {
	return r.record(env, name, args)
}

func (r *fakeRunner) record(env []string, name string, args []string) ([]byte, []byte, int32, error) {
	r.commands = append(r.commands, append([]string{name}, args...))
	r.envs = append(r.envs, append([]string{}, env...))
	return nil, nil, 0, nil
}

func (r *fakeRunner) Exists(name string) bool {
	return false
}

func TestToolMetadata(t *testing.T) {
	testlog.Start(t)
	tool := NewToolWithRunner(&fakeRunner{})
	meta := tool.Metadata()
	if meta.ID != "tool.uv" || meta.Command != "uv" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if err := provision.ValidateMetadata(meta); err != nil {
		t.Fatalf("metadata should be valid: %v", err)
	}
}

func TestInstallPinsInstallerEnvironment(t *testing.T) {
	testlog.Start(t)
	r := &fakeRunner{}
	tool := NewToolWithRunner(r)
	if err := tool.Install(); err != nil {
		t.Fatalf("install: %v", err)
	}
	if len(r.commands) != 1 {
		t.Fatalf("expected one installer command, got %v", r.commands)
	}

	script := r.commands[0][len(r.commands[0])-1]
	if !strings.Contains(script, "astral.sh/uv/install.sh") {
		t.Fatalf("unexpected installer script: %q", script)
	}

	env := strings.Join(r.envs[0], " ")
	if !strings.Contains(env, "UV_INSTALL_DIR=/usr/local/bin") {
		t.Fatalf("expected pinned install dir, got %q", env)
	}
	if !strings.Contains(env, "UV_NO_MODIFY_PATH=1") {
		t.Fatalf("expected self-management disabled, got %q", env)
	}
}
