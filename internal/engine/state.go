package engine

import (
	"encoding/json"
	"fmt"
)

// StateVersion tags the snapshot layout. Bump on breaking changes and add a
// migration branch in DecodeState.
const StateVersion = 1

// State is the whole persisted world: every session, the active pointer,
// identity, and engagement metrics. It is constructed once at startup and
// injected wherever the engine runs; there is no package-level instance.
type State struct {
	Version         int                 `json:"version"`
	Sessions        map[string]*Session `json:"sessions"`
	ActiveSessionID string              `json:"activeSessionId,omitempty"`
	User            *User               `json:"user,omitempty"`
	Authenticated   bool                `json:"isAuthenticated"`
	Engagement      Engagement          `json:"engagementMetrics"`
}

func NewState() *State {
	return &State{
		Version:  StateVersion,
		Sessions: map[string]*Session{},
	}
}

// Encode serializes the state as a single versioned snapshot record.
func (st *State) Encode() ([]byte, error) {
	st.Version = StateVersion
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// DecodeState rehydrates a snapshot. Unknown versions are refused rather
// than half-loaded.
func DecodeState(data []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if st.Version != StateVersion {
		return nil, SnapshotVersionError{Version: st.Version}
	}
	if st.Sessions == nil {
		st.Sessions = map[string]*Session{}
	}
	for id, sess := range st.Sessions {
		if sess == nil {
			delete(st.Sessions, id)
			continue
		}
		if sess.DailyLog == nil {
			sess.DailyLog = map[string]DayLog{}
		}
	}
	if _, ok := st.Sessions[st.ActiveSessionID]; !ok {
		st.ActiveSessionID = ""
	}
	return &st, nil
}
