// Package tools provides reusable runtime helpers shared by provisioning modules.
//
// Ownership boundary:
// - command execution helpers (local and SSH)
//
// - host existence probes for executables on the search path
package tools
