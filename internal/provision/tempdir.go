package provision

import (
	"errors"
	"strings"

	"github.com/danmuck/setupctl/internal/tools"
)

var ErrTempDirEmpty = errors.New("provision: mktemp returned an empty path")

// WithTempDir runs fn with a temporary directory created on the target
// host. The directory is removed on every return path, whether fn succeeds
// or fails. Creation and removal go through the runner so remote hosts
// scope the directory on their own filesystem.
func WithTempDir(r tools.CommandRunner, fn func(dir string) error) error {
	stdout, stderr, exitCode, err := r.Run("mktemp", "-d")
	if err != nil {
		return wrapExec("mktemp", []string{"-d"}, stderr, exitCode, err)
	}
	dir := strings.TrimSpace(string(stdout))
	if dir == "" {
		return ErrTempDirEmpty
	}
	defer func() {
		_, _, _, _ = r.Run("rm", "-rf", dir)
	}()
	return fn(dir)
}
