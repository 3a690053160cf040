package storage

import "time"

// Snapshot is one versioned serialized engine state.
type Snapshot struct {
	Version   int
	Data      []byte
	UpdatedAt time.Time
}

// Completion is one audit row for a completed task.
type Completion struct {
	ID          int64
	SessionID   string
	NodeID      string
	SubNodeID   string
	TaskIndex   int
	CompletedAt time.Time
}
