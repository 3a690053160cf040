package engine

import (
	"context"

	"go.uber.org/zap"

	"waypoint/internal/storage"
)

type CompleteResult struct {
	SessionID    string
	NodeID       string
	SubNodeID    string
	TaskIndex    int
	AlreadyDone  bool     // the task was completed before this call; nothing changed
	Completed    []string // node ids that reached completed
	Unlocked     []string // node ids that moved locked -> active
	Streak       int
	SignupPrompt bool // show the signup prompt: guest user with >=1 completion
}

// CompleteTask marks the addressed task done on the active session, applies
// the unlock policy, and updates streak, daily log and engagement. An
// address that does not resolve is a safe no-op (ok=false). Completing an
// already-completed task is idempotent: the task stays done and none of the
// counters move.
func (s *Service) CompleteTask(ctx context.Context, nodeID, subNodeID string, taskIndex int) (CompleteResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.state.Sessions[s.state.ActiveSessionID]
	if !ok {
		return CompleteResult{}, false
	}
	task := sess.Roadmap.findTask(nodeID, subNodeID, taskIndex)
	if task == nil {
		return CompleteResult{}, false
	}

	res := CompleteResult{
		SessionID: sess.ID,
		NodeID:    nodeID,
		SubNodeID: subNodeID,
		TaskIndex: taskIndex,
		Streak:    sess.Streak,
	}
	if task.Completed {
		res.AlreadyDone = true
		return res, true
	}

	now := s.clock.Now()
	task.Completed = true
	task.CompletedAt = &now

	res.Completed, res.Unlocked = applyUnlockPolicy(sess.Roadmap)
	res.Streak = recordCompletion(sess, now)

	s.state.Engagement.TasksCompleted++
	res.SignupPrompt = !s.state.Authenticated && s.state.Engagement.TasksCompleted >= 1

	if s.completionsRepo != nil {
		if _, err := s.completionsRepo.Insert(ctx, storage.CompletionInsert{
			SessionID:   sess.ID,
			NodeID:      nodeID,
			SubNodeID:   subNodeID,
			TaskIndex:   taskIndex,
			CompletedAt: now,
		}); err != nil {
			s.log.Warn("completion audit insert", zap.Error(err))
		}
	}

	s.log.Info("task completed",
		zap.String("session", sess.ID),
		zap.String("node", nodeID),
		zap.Int("streak", res.Streak),
		zap.Strings("unlocked", res.Unlocked))
	s.persistLocked(ctx)
	return res, true
}

// SubmitEvidence appends an evidence record to the addressed task without
// touching its completion state. Unresolvable addresses are no-ops.
func (s *Service) SubmitEvidence(ctx context.Context, nodeID, subNodeID string, taskIndex int, ev Evidence) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.state.Sessions[s.state.ActiveSessionID]
	if !ok {
		return false
	}
	task := sess.Roadmap.findTask(nodeID, subNodeID, taskIndex)
	if task == nil {
		return false
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.clock.Now()
	}
	task.Evidence = append(task.Evidence, ev)
	s.persistLocked(ctx)
	return true
}

// applyUnlockPolicy advances node statuses after a completion. Two rules,
// both forward-only:
//
//  1. A node whose tasks are all complete becomes completed, and the first
//     locked node in the chain becomes active.
//  2. Momentum rule: finishing the first task of the first sub-node of the
//     first node activates the second node early, so the map opens up after
//     the very first win rather than after a whole milestone.
func applyUnlockPolicy(r *Roadmap) (completed, unlocked []string) {
	if r == nil || len(r.Nodes) == 0 {
		return nil, nil
	}

	for i := range r.Nodes {
		n := &r.Nodes[i]
		if n.Status == NodeCompleted || n.Status == NodeLocked {
			continue
		}
		if nodeTasksDone(n) {
			n.Status = NodeCompleted
			completed = append(completed, n.ID)
			if next := firstLockedNode(r); next != nil {
				next.Status = NodeActive
				unlocked = append(unlocked, next.ID)
			}
		}
	}

	first := &r.Nodes[0]
	if len(r.Nodes) > 1 && first.Status != NodeLocked && firstTaskDone(first) {
		second := &r.Nodes[1]
		if second.Status == NodeLocked {
			second.Status = NodeActive
			unlocked = append(unlocked, second.ID)
		}
	}
	return completed, unlocked
}

// nodeTasksDone reports whether every task under the node is complete. A
// node with no tasks at all never auto-completes.
func nodeTasksDone(n *MilestoneNode) bool {
	total := 0
	for i := range n.SubNodes {
		for j := range n.SubNodes[i].Tasks {
			total++
			if !n.SubNodes[i].Tasks[j].Completed {
				return false
			}
		}
	}
	return total > 0
}

func firstTaskDone(n *MilestoneNode) bool {
	if len(n.SubNodes) == 0 || len(n.SubNodes[0].Tasks) == 0 {
		return false
	}
	return n.SubNodes[0].Tasks[0].Completed
}

func firstLockedNode(r *Roadmap) *MilestoneNode {
	for i := range r.Nodes {
		if r.Nodes[i].Status == NodeLocked {
			return &r.Nodes[i]
		}
	}
	return nil
}
