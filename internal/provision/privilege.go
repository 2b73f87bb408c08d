package provision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/setupctl/internal/tools"
)

var ErrNotRoot = errors.New("provision: administrative privileges required")

// RequireRoot verifies the effective uid on the target host is root. This
// is a fatal precondition; no package or network operation may run first.
func RequireRoot(r tools.CommandRunner) error {
	stdout, _, _, err := r.Run("id", "-u")
	if err != nil {
		return fmt.Errorf("read effective uid: %w", err)
	}
	uid := strings.TrimSpace(string(stdout))
	if uid != "0" {
		log.Error().Str("uid", uid).Msg("run setupctl as root (sudo setupctl)")
		return ErrNotRoot
	}
	return nil
}
