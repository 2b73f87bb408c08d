package provision

import (
	"strings"

	"github.com/danmuck/setupctl/internal/tools"
)

// ToolMetadata is the contract for tool identity, probe, and ordering data.
type ToolMetadata struct {
	ID          string
	Name        string
	Description string
	Command     string   // executable probed on the search path
	VersionArgs []string // arguments of the version query
	Requires    []string // tool ids that must be provisioned earlier
}

// Tool is the installer boundary used by the provisioning plan.
type Tool interface {
	Metadata() ToolMetadata
	Install() error
}

// VersionState classifies the outcome of a version query.
type VersionState int

const (
	// VersionMissing means the probe command is not on the search path.
	VersionMissing VersionState = iota
	// VersionUnknown means the command exists but the query failed. The
	// failure is tolerated and never propagated.
	VersionUnknown
	// VersionKnown carries a non-empty version string.
	VersionKnown
)

// Version is the explicit result of a best-effort version query.
type Version struct {
	State VersionState
	Text  string
}

func (v Version) String() string {
	switch v.State {
	case VersionKnown:
		return v.Text
	case VersionUnknown:
		return "unknown"
	default:
		return "missing"
	}
}

// Installed reports whether the probe found the tool.
func (v Version) Installed() bool {
	return v.State != VersionMissing
}

// QueryVersion probes meta.Command and runs its version query. Query
// failures are reduced to VersionUnknown rather than returned.
func QueryVersion(runner tools.CommandRunner, meta ToolMetadata) Version {
	if !runner.Exists(meta.Command) {
		return Version{State: VersionMissing}
	}
	stdout, _, _, err := runner.Run(meta.Command, meta.VersionArgs...)
	if err != nil {
		return Version{State: VersionUnknown}
	}
	text := strings.TrimSpace(string(stdout))
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}
	if text == "" {
		return Version{State: VersionUnknown}
	}
	return Version{State: VersionKnown, Text: text}
}
