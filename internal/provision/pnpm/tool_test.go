package pnpm

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/testutil/testlog"
)

type fakeRunner struct {
	commands [][]string
	exists   map[string]bool
	failCmd  string
}

func (r *fakeRunner) Run(name string, args ...string) ([]byte, []byte, int32, error) {
	return r.record(name, args)
}

func (r *fakeRunner) RunEnv(env []string, name string, args ...string) ([]byte, []byte, int32, error) {
	return r.record(name, args)
}

func (r *fakeRunner) record(name string, args []string) ([]byte, []byte, int32, error) {
	r.commands = append(r.commands, append([]string{name}, args...))
	if name == r.failCmd {
		return nil, []byte("activation failed\n"), 1, errors.New("exit status 1")
	}
	return nil, nil, 0, nil
}

func (r *fakeRunner) Exists(name string) bool {
	return r.exists[name]
}

func TestToolMetadataRequiresNodejs(t *testing.T) {
	testlog.Start(t)
	tool := NewToolWithRunner(&fakeRunner{})
	meta := tool.Metadata()
	if meta.ID != "tool.pnpm" || meta.Command != "pnpm" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if !reflect.DeepEqual(meta.Requires, []string{"tool.nodejs"}) {
		t.Fatalf("expected nodejs requirement, got %v", meta.Requires)
	}
	if err := provision.ValidateMetadata(meta); err != nil {
		t.Fatalf("metadata should be valid: %v", err)
	}
}

func TestInstallSkipsWhenActivatorMissing(t *testing.T) {
	testlog.Start(t)
	r := &fakeRunner{}
	tool := NewToolWithRunner(r)
	if err := tool.Install(); err != nil {
		t.Fatalf("missing activator must be tolerated, got %v", err)
	}
	if len(r.commands) != 0 {
		t.Fatalf("skip must issue no commands, got %v", r.commands)
	}
}

func TestInstallEnablesAndActivatesLatest(t *testing.T) {
	testlog.Start(t)
	r := &fakeRunner{exists: map[string]bool{"corepack": true}}
	tool := NewToolWithRunner(r)
	if err := tool.Install(); err != nil {
		t.Fatalf("install: %v", err)
	}
	want := [][]string{
		{"corepack", "enable"},
		{"corepack", "prepare", "pnpm@latest", "--activate"},
	}
	if !reflect.DeepEqual(r.commands, want) {
		t.Fatalf("unexpected commands: got=%v want=%v", r.commands, want)
	}
}

func TestInstallActivationFailureIsFatal(t *testing.T) {
	testlog.Start(t)
	r := &fakeRunner{exists: map[string]bool{"corepack": true}, failCmd: "corepack"}
	tool := NewToolWithRunner(r)
	err := tool.Install()
	var cmdErr *provision.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %v", err)
	}
}
