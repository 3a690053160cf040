package engine

import (
	"fmt"
	"sort"
)

// maxDailyQuests caps the daily selection.
const maxDailyQuests = 5

// Quest is one entry in the daily cross-goal selection: an incomplete task
// annotated with its owning session and full address.
type Quest struct {
	SessionID string
	Goal      string
	NodeID    string
	SubNodeID string
	TaskIndex int
	Title     string
}

// SelectDailyQuests picks up to five incomplete tasks pooled across every
// session's non-locked nodes. The selection is pure and date-seeded: the
// same sessions and the same calendar date always produce the same ordered
// result, for every viewer, without anything being persisted.
func SelectDailyQuests(sessions []*Session, date string) []Quest {
	pool := questPool(sessions)
	if len(pool) <= maxDailyQuests {
		return pool
	}

	// Sampling without replacement: walk a shrinking index set with a
	// linear-congruential step keyed by the date seed. Same date, same
	// pool -> same five; any pool change shifts the walk.
	seed := dateSeed(date)
	indices := make([]int, len(pool))
	for i := range indices {
		indices[i] = i
	}

	out := make([]Quest, 0, maxDailyQuests)
	for i := 0; i < maxDailyQuests; i++ {
		j := (seed + i*131) % len(indices)
		out = append(out, pool[indices[j]])
		indices = append(indices[:j], indices[j+1:]...)
	}
	return out
}

// questPool flattens every incomplete task of every non-locked node into a
// single list with a fixed total order, so sampling sees the same sequence
// no matter how the sessions map iterated.
func questPool(sessions []*Session) []Quest {
	var pool []Quest
	for _, sess := range sessions {
		if sess == nil || sess.Roadmap == nil {
			continue
		}
		for i := range sess.Roadmap.Nodes {
			node := &sess.Roadmap.Nodes[i]
			if node.Status == NodeLocked {
				continue
			}
			for j := range node.SubNodes {
				sub := &node.SubNodes[j]
				for k := range sub.Tasks {
					if sub.Tasks[k].Completed {
						continue
					}
					pool = append(pool, Quest{
						SessionID: sess.ID,
						Goal:      sess.Goal,
						NodeID:    node.ID,
						SubNodeID: sub.ID,
						TaskIndex: k,
						Title:     sub.Tasks[k].Title,
					})
				}
			}
		}
	}
	sort.Slice(pool, func(a, b int) bool {
		return questKey(pool[a]) < questKey(pool[b])
	})
	return pool
}

func questKey(q Quest) string {
	return fmt.Sprintf("%s|%s|%s|%06d", q.SessionID, q.NodeID, q.SubNodeID, q.TaskIndex)
}

// dateSeed folds a calendar date string into a non-negative integer with a
// polynomial rolling hash. Not cryptographic; just reproducible.
func dateSeed(date string) int {
	var h int64
	for _, c := range date {
		h = h*31 + int64(c)
	}
	if h < 0 {
		h = -h
	}
	return int(h % (1 << 31))
}

// DailyQuests derives today's selection from current engine state. Nothing
// is persisted; calling it twice on the same date yields the same answer.
func (s *Service) DailyQuests() []Quest {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.state.Sessions))
	for _, sess := range s.state.Sessions {
		sessions = append(sessions, sess)
	}
	date := DateOf(s.clock.Now())
	quests := SelectDailyQuests(sessions, date)
	s.mu.Unlock()
	return quests
}
