// Package exchange implements the blueprint exchange: a shared catalog of
// published roadmaps that other users can browse, vote on, and fork. The
// catalog is served over HTTP by Server and consumed by Client; Memory is
// the in-process backing store both sides share.
package exchange

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"waypoint/internal/engine"
)

// Memory is an in-process blueprint catalog. It implements
// engine.Exchange directly, which makes it usable both as the server's
// store and as a standalone exchange in tests.
type Memory struct {
	mu         sync.Mutex
	blueprints map[string]engine.Blueprint
	watchers   map[int]chan Event
	nextWatch  int
}

func NewMemory() *Memory {
	return &Memory{
		blueprints: make(map[string]engine.Blueprint),
		watchers:   make(map[int]chan Event),
	}
}

// Event describes a catalog change, fanned out to subscribers.
type Event struct {
	Type        EventType         `json:"type"`
	BlueprintID string            `json:"blueprintId"`
	Blueprint   *engine.Blueprint `json:"blueprint,omitempty"`
}

type EventType string

const (
	EventPublished   EventType = "published"
	EventUnpublished EventType = "unpublished"
	EventVoted       EventType = "voted"
)

func (m *Memory) Publish(ctx context.Context, bp engine.Blueprint) error {
	if bp.ID == "" {
		return fmt.Errorf("publish: blueprint id is empty")
	}
	m.mu.Lock()
	m.blueprints[bp.ID] = bp
	m.notifyLocked(Event{Type: EventPublished, BlueprintID: bp.ID, Blueprint: &bp})
	m.mu.Unlock()
	return nil
}

func (m *Memory) Unpublish(ctx context.Context, blueprintID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blueprints[blueprintID]; !ok {
		return fmt.Errorf("unpublish: blueprint %s not found", blueprintID)
	}
	delete(m.blueprints, blueprintID)
	m.notifyLocked(Event{Type: EventUnpublished, BlueprintID: blueprintID})
	return nil
}

func (m *Memory) Vote(ctx context.Context, blueprintID string, dir engine.VoteDirection) error {
	if !dir.IsValid() {
		return fmt.Errorf("vote: invalid direction %q", dir)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bp, ok := m.blueprints[blueprintID]
	if !ok {
		return fmt.Errorf("vote: blueprint %s not found", blueprintID)
	}
	if dir == engine.VoteUp {
		bp.Votes++
	} else {
		bp.Votes--
	}
	m.blueprints[blueprintID] = bp
	m.notifyLocked(Event{Type: EventVoted, BlueprintID: blueprintID, Blueprint: &bp})
	return nil
}

// Get returns a blueprint by id.
func (m *Memory) Get(blueprintID string) (engine.Blueprint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bp, ok := m.blueprints[blueprintID]
	return bp, ok
}

// List returns all blueprints, most-voted first. Ties break on id so the
// order is stable.
func (m *Memory) List() []engine.Blueprint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]engine.Blueprint, 0, len(m.blueprints))
	for _, bp := range m.blueprints {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Watch registers a subscriber. The returned cancel func must be called
// when the subscriber is done. Slow subscribers drop events rather than
// block publishers.
func (m *Memory) Watch() (<-chan Event, func()) {
	m.mu.Lock()
	id := m.nextWatch
	m.nextWatch++
	ch := make(chan Event, 16)
	m.watchers[id] = ch
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if ch, ok := m.watchers[id]; ok {
			delete(m.watchers, id)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}

func (m *Memory) notifyLocked(ev Event) {
	for _, ch := range m.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
