package engine

import (
	"context"
	"testing"
)

// captureExchange records the last published blueprint.
type captureExchange struct {
	published   []Blueprint
	unpublished []string
	votes       map[string]VoteDirection
}

func (e *captureExchange) Publish(ctx context.Context, bp Blueprint) error {
	e.published = append(e.published, bp)
	return nil
}

func (e *captureExchange) Unpublish(ctx context.Context, id string) error {
	e.unpublished = append(e.unpublished, id)
	return nil
}

func (e *captureExchange) Vote(ctx context.Context, id string, dir VoteDirection) error {
	if e.votes == nil {
		e.votes = map[string]VoteDirection{}
	}
	e.votes[id] = dir
	return nil
}

func sampleBlueprint() Blueprint {
	return Blueprint{
		ID:       "bp-1",
		AuthorID: "author-9",
		Role:     "Data Engineer",
		Goal:     "Become a data engineer",
		Roadmap:  sampleRoadmap(),
	}
}

func TestForkCopyCreatesIndependentRoadmapSession(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	bp := sampleBlueprint()
	id := svc.ForkBlueprint(ctx, bp, false)

	sess, ok := svc.Session(id)
	if !ok {
		t.Fatalf("forked session missing")
	}
	if sess.Phase != PhaseRoadmap {
		t.Fatalf("phase=%q, want roadmap", sess.Phase)
	}
	if sess.Provenance == nil || !sess.Provenance.Forked || sess.Provenance.OriginalAuthorID != "author-9" {
		t.Fatalf("provenance=%+v", sess.Provenance)
	}
	if len(sess.Roadmap.Nodes) != len(bp.Roadmap.Nodes) {
		t.Fatalf("fork lost nodes")
	}

	// Mutating the fork must not touch the source blueprint.
	res, ok := svc.CompleteTask(ctx, "n1", "n1-a", 0)
	if !ok || res.AlreadyDone {
		t.Fatalf("complete on fork failed: %+v ok=%v", res, ok)
	}
	if bp.Roadmap.Nodes[0].SubNodes[0].Tasks[0].Completed {
		t.Fatalf("fork mutation leaked into the source blueprint")
	}

	// And mutating the source must not touch the fork.
	bp.Roadmap.Nodes[0].SubNodes[0].Tasks[1].Completed = true
	sess, _ = svc.Session(id)
	if sess.Roadmap.Nodes[0].SubNodes[0].Tasks[1].Completed {
		t.Fatalf("source mutation leaked into the fork")
	}
}

func TestForkPersonalizeRunsAssessmentPipeline(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	bp := sampleBlueprint()
	id := svc.ForkBlueprint(ctx, bp, true)

	sess, _ := svc.Session(id)
	if sess.Phase != PhaseAssessment {
		t.Fatalf("phase=%q, want assessment", sess.Phase)
	}
	if sess.Roadmap != nil {
		t.Fatalf("personalized fork must not copy the roadmap")
	}
	if sess.Role != "Data Engineer" {
		t.Fatalf("role=%q, want the blueprint's role", sess.Role)
	}

	// The normal pipeline then derives a fresh roadmap.
	svc.SetQuestions(ctx, []Question{{ID: "q1", Skill: "Spark"}})
	svc.AnswerQuestion(ctx, "Spark", false)
	svc.Flush()
	sess, _ = svc.Session(id)
	if sess.Roadmap == nil || len(sess.Roadmap.Nodes) == 0 {
		t.Fatalf("personalized fork did not generate a roadmap")
	}
}

func TestPublishSanitizesProgress(t *testing.T) {
	exch := &captureExchange{}
	svc := newTestService(t, nil, WithExchange(exch))
	ctx := context.Background()
	id := startRoadmapSession(t, svc, "goal")

	svc.CompleteTask(ctx, "n1", "n1-a", 0)
	svc.SubmitEvidence(ctx, "n1", "n1-a", 0, Evidence{Content: "proof"})

	bp, err := svc.PublishSession(ctx, id)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(exch.published) != 1 {
		t.Fatalf("exchange did not receive the blueprint")
	}
	task := bp.Roadmap.Nodes[0].SubNodes[0].Tasks[0]
	if task.Completed || task.CompletedAt != nil || len(task.Evidence) != 0 {
		t.Fatalf("published blueprint carries personal progress: %+v", task)
	}
	if bp.Roadmap.Nodes[1].Status != NodeLocked {
		t.Fatalf("published statuses not re-seeded")
	}
	if bp.AuthorID != "anonymous" {
		t.Fatalf("guest publish author=%q, want anonymous", bp.AuthorID)
	}
}

func TestPublishRequiresRoadmapAndExchange(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	id := startRoadmapSession(t, svc, "goal")

	if _, err := svc.PublishSession(ctx, id); err == nil {
		t.Fatalf("publish without an exchange should fail")
	}

	exch := &captureExchange{}
	svc2 := newTestService(t, nil, WithExchange(exch))
	id2 := svc2.CreateSession(ctx, "goal", "role", "")
	if _, err := svc2.PublishSession(ctx, id2); err == nil {
		t.Fatalf("publish without a roadmap should fail")
	}
	if _, err := svc2.PublishSession(ctx, "missing"); err == nil {
		t.Fatalf("publish of unknown session should fail")
	}
}

func TestVoteAndUnpublishPassThrough(t *testing.T) {
	exch := &captureExchange{}
	svc := newTestService(t, nil, WithExchange(exch))
	ctx := context.Background()

	if err := svc.VoteBlueprint(ctx, "bp-1", VoteUp); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if exch.votes["bp-1"] != VoteUp {
		t.Fatalf("vote not forwarded")
	}
	if err := svc.VoteBlueprint(ctx, "bp-1", VoteDirection("sideways")); err != nil {
		t.Fatalf("invalid direction should be ignored, got %v", err)
	}
	if err := svc.UnpublishBlueprint(ctx, "bp-1"); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if len(exch.unpublished) != 1 || exch.unpublished[0] != "bp-1" {
		t.Fatalf("unpublish not forwarded")
	}
}
