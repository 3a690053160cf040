package engine

import (
	"context"
	"testing"
)

func TestCreateSessionStartsAssessmentAndBecomesActive(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	id := svc.CreateSession(ctx, "Become a full stack developer", "Full Stack Developer", "3 months")
	sess, ok := svc.Session(id)
	if !ok {
		t.Fatalf("session not found after create")
	}
	if sess.Phase != PhaseAssessment {
		t.Fatalf("phase=%q, want assessment", sess.Phase)
	}
	if sess.Roadmap != nil {
		t.Fatalf("fresh session should have no roadmap")
	}
	active, ok := svc.Active()
	if !ok || active.ID != id {
		t.Fatalf("new session should be active")
	}
}

func TestSessionIDsDoNotCollide(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := svc.CreateSession(ctx, "goal", "role", "")
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}

func TestSwitchSessionUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	id := svc.CreateSession(ctx, "goal", "role", "")
	svc.SwitchSession(ctx, "nope")

	active, ok := svc.Active()
	if !ok || active.ID != id {
		t.Fatalf("active pointer moved on unknown switch")
	}
}

func TestSwitchSessionChangesActive(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a := svc.CreateSession(ctx, "goal a", "role", "")
	b := svc.CreateSession(ctx, "goal b", "role", "")

	active, _ := svc.Active()
	if active.ID != b {
		t.Fatalf("latest session should be active")
	}
	svc.SwitchSession(ctx, a)
	active, _ = svc.Active()
	if active.ID != a {
		t.Fatalf("switch did not take effect")
	}
}

func TestDeleteActiveSessionClearsPointerWithoutAutoSelect(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a := svc.CreateSession(ctx, "goal a", "role", "")
	b := svc.CreateSession(ctx, "goal b", "role", "")

	svc.DeleteSession(ctx, b)
	if _, ok := svc.Active(); ok {
		t.Fatalf("deleting the active session must not auto-select another")
	}
	if _, ok := svc.Session(a); !ok {
		t.Fatalf("unrelated session was deleted")
	}
	if _, ok := svc.Session(b); ok {
		t.Fatalf("session b still present after delete")
	}
}

func TestDeleteNonActiveSessionKeepsPointer(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	a := svc.CreateSession(ctx, "goal a", "role", "")
	b := svc.CreateSession(ctx, "goal b", "role", "")

	svc.DeleteSession(ctx, a)
	active, ok := svc.Active()
	if !ok || active.ID != b {
		t.Fatalf("active pointer should survive deleting another session")
	}
}

func TestResetClearsActivePointerOnly(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	id := svc.CreateSession(ctx, "goal", "role", "")
	svc.Reset(ctx)

	if _, ok := svc.Active(); ok {
		t.Fatalf("reset should clear the active pointer")
	}
	if _, ok := svc.Session(id); !ok {
		t.Fatalf("reset must not delete sessions")
	}
}

func TestPhaseNeverRegresses(t *testing.T) {
	svc := newTestService(t, nil)
	startRoadmapSession(t, svc, "goal")

	sess, _ := svc.Active()
	if sess.Phase != PhaseRoadmap {
		t.Fatalf("phase=%q, want roadmap", sess.Phase)
	}

	// More answers after the assessment is done must not move the phase.
	svc.AnswerQuestion(context.Background(), "extra", true)
	svc.Flush()
	sess, _ = svc.Active()
	if sess.Phase != PhaseRoadmap {
		t.Fatalf("phase regressed to %q", sess.Phase)
	}
}

func TestQueriesReturnIndependentCopies(t *testing.T) {
	svc := newTestService(t, nil)
	startRoadmapSession(t, svc, "goal")

	a, _ := svc.Active()
	a.Roadmap.Nodes[0].SubNodes[0].Tasks[0].Completed = true
	a.Goal = "mutated"

	b, _ := svc.Active()
	if b.Goal == "mutated" {
		t.Fatalf("query result aliases engine state")
	}
	if b.Roadmap.Nodes[0].SubNodes[0].Tasks[0].Completed {
		t.Fatalf("roadmap aliases engine state")
	}
}
