package engine

import (
	"fmt"
	"testing"
	"time"
)

// questSessions builds n sessions with distinct ids whose first node holds
// tasksPerSession incomplete tasks each.
func questSessions(n, tasksPerSession int) []*Session {
	var out []*Session
	for i := 0; i < n; i++ {
		tasks := make([]Task, tasksPerSession)
		for j := range tasks {
			tasks[j] = Task{Title: fmt.Sprintf("task %d-%d", i, j)}
		}
		rm := &Roadmap{Nodes: []MilestoneNode{
			{ID: fmt.Sprintf("s%d-n1", i), SubNodes: []SubNode{{ID: fmt.Sprintf("s%d-n1-a", i), Tasks: tasks}}},
			{ID: fmt.Sprintf("s%d-n2", i), SubNodes: []SubNode{{ID: fmt.Sprintf("s%d-n2-a", i), Tasks: []Task{{Title: "locked away"}}}}},
		}}
		rm.Normalize()
		out = append(out, &Session{
			ID:      fmt.Sprintf("session-%02d", i),
			Goal:    fmt.Sprintf("goal %d", i),
			Phase:   PhaseRoadmap,
			Roadmap: rm,
		})
	}
	return out
}

func TestQuestsSmallPoolReturnedWholeRegardlessOfDate(t *testing.T) {
	sessions := questSessions(1, 3)

	a := SelectDailyQuests(sessions, "2026-03-02")
	b := SelectDailyQuests(sessions, "2026-07-19")
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("pool of 3 should return 3, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("small pool selection should not depend on the date")
		}
	}
}

func TestQuestsDeterministicForSameDate(t *testing.T) {
	sessions := questSessions(4, 5)

	a := SelectDailyQuests(sessions, "2026-03-02")
	b := SelectDailyQuests(sessions, "2026-03-02")
	if len(a) != maxDailyQuests {
		t.Fatalf("selection size=%d, want %d", len(a), maxDailyQuests)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("selection differs between identical invocations at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestQuestsNoDuplicatesInOneDay(t *testing.T) {
	sessions := questSessions(3, 4)

	picked := SelectDailyQuests(sessions, "2026-03-02")
	seen := map[string]bool{}
	for _, q := range picked {
		key := questKey(q)
		if seen[key] {
			t.Fatalf("task selected twice in one day: %s", key)
		}
		seen[key] = true
	}
}

func TestQuestsExcludeLockedNodesAndCompletedTasks(t *testing.T) {
	sessions := questSessions(1, 2)
	sessions[0].Roadmap.Nodes[0].SubNodes[0].Tasks[0].Completed = true

	picked := SelectDailyQuests(sessions, "2026-03-02")
	for _, q := range picked {
		if q.NodeID == "s0-n2" {
			t.Fatalf("locked node leaked into the pool")
		}
		if q.TaskIndex == 0 && q.NodeID == "s0-n1" {
			t.Fatalf("completed task leaked into the pool")
		}
	}
	if len(picked) != 1 {
		t.Fatalf("pool size=%d, want 1", len(picked))
	}
}

func TestQuestsSelectionVariesAcrossDates(t *testing.T) {
	sessions := questSessions(5, 5) // pool of 25

	base := SelectDailyQuests(sessions, "2026-01-01")
	differing := 0
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	const days = 60
	for i := 0; i < days; i++ {
		picked := SelectDailyQuests(sessions, DateOf(day))
		same := true
		for j := range picked {
			if picked[j] != base[j] {
				same = false
				break
			}
		}
		if !same {
			differing++
		}
		day = day.AddDate(0, 0, 1)
	}
	// Not a hard guarantee per date, but across two months the selection
	// must rotate far more often than not.
	if differing < days/2 {
		t.Fatalf("selection varied on only %d of %d dates", differing, days)
	}
}

func TestQuestsSelectionReactsToPoolChanges(t *testing.T) {
	sessions := questSessions(5, 5)
	before := SelectDailyQuests(sessions, "2026-03-02")

	// Complete the first selected task, simulating a user finishing it.
	target := before[0]
	for _, sess := range sessions {
		if sess.ID != target.SessionID {
			continue
		}
		task := sess.Roadmap.findTask(target.NodeID, target.SubNodeID, target.TaskIndex)
		task.Completed = true
	}

	after := SelectDailyQuests(sessions, "2026-03-02")
	for _, q := range after {
		if q == target {
			t.Fatalf("completed task still selected")
		}
	}
	if len(after) != maxDailyQuests {
		t.Fatalf("selection size=%d, want %d", len(after), maxDailyQuests)
	}
}

func TestDailyQuestsPoolsAcrossAllSessions(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, nil, WithClock(clock))

	a := startRoadmapSession(t, svc, "backend goal")
	// The active session ends up being b; quests must still cover a.
	b := startRoadmapSession(t, svc, "design goal")

	quests := svc.DailyQuests()
	bySession := map[string]int{}
	for _, q := range quests {
		bySession[q.SessionID]++
	}
	if bySession[a] == 0 || bySession[b] == 0 {
		t.Fatalf("quests not pooled across sessions: %v", bySession)
	}
}
