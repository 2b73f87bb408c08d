package provision

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/setupctl/internal/tools"
)

// CommandError reports a failed external command together with its exit
// status so callers can propagate it as the process exit code.
type CommandError struct {
	Cmd    string
	Args   []string
	Exit   int32
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf(
		"provision command failed cmd=%s args=%q exit=%d stderr=%q: %v",
		e.Cmd,
		strings.Join(e.Args, " "),
		e.Exit,
		e.Stderr,
		e.Err,
	)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Exec runs one command through the runner and wraps failures as
// *CommandError.
func Exec(r tools.CommandRunner, name string, args ...string) error {
	log.Debug().Str("cmd", name).Str("args", strings.Join(args, " ")).Msg("provision exec")
	_, stderr, exitCode, err := r.Run(name, args...)
	return wrapExec(name, args, stderr, exitCode, err)
}

// ExecEnv runs one command with extra environment variables scoped to the
// invocation.
func ExecEnv(r tools.CommandRunner, env []string, name string, args ...string) error {
	log.Debug().
		Str("cmd", name).
		Str("args", strings.Join(args, " ")).
		Str("env", strings.Join(env, " ")).
		Msg("provision exec")
	_, stderr, exitCode, err := r.RunEnv(env, name, args...)
	return wrapExec(name, args, stderr, exitCode, err)
}

func wrapExec(name string, args []string, stderr []byte, exitCode int32, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		Cmd:    name,
		Args:   append([]string{}, args...),
		Exit:   exitCode,
		Stderr: strings.TrimSpace(string(stderr)),
		Err:    err,
	}
}
