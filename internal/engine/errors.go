package engine

import "fmt"

// NotFoundError is returned by commands that require an existing session or
// blueprint. Progression commands addressing missing tasks degrade to
// no-ops instead; this error is for operations where silence would hide a
// real caller mistake (publish, fork, export).
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// SnapshotVersionError indicates a persisted snapshot written by an
// incompatible version of the tool.
type SnapshotVersionError struct {
	Version int
}

func (e SnapshotVersionError) Error() string {
	return fmt.Sprintf("snapshot version %d is not supported (want %d)", e.Version, StateVersion)
}

// NoExchangeError indicates the engine was built without an exchange
// collaborator but an exchange command was invoked.
type NoExchangeError struct{}

func (NoExchangeError) Error() string {
	return "no exchange configured (set WAYPOINT_EXCHANGE_URL)"
}
