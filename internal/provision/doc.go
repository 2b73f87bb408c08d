// Package provision provides the core primitives for idempotent developer
// tool installation on Debian/Ubuntu hosts.
//
// Ownership boundary:
// - tool metadata contract, ordered registry, and plan validation
//
// - apt wrapper, privilege guard, scoped temp directories
//
// - best-effort version queries with explicit tolerated-failure states
package provision
