package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ForkBlueprint creates a new session from someone else's published
// blueprint and makes it active.
//
// personalize=false copies the blueprint's roadmap wholesale: the new
// session starts directly in the roadmap phase with a deep, independent
// copy. No structure is shared with the source, in either direction.
//
// personalize=true takes only the role and goal and runs the new session
// through the normal assessment pipeline, so generation re-derives a
// roadmap tailored to this user. The blueprint's content is not copied.
func (s *Service) ForkBlueprint(ctx context.Context, bp Blueprint, personalize bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	sess := &Session{
		ID:        id,
		Goal:      bp.Goal,
		Role:      bp.Role,
		CreatedAt: s.clock.Now(),
		DailyLog:  map[string]DayLog{},
		Provenance: &Provenance{
			Forked:           true,
			OriginalAuthorID: bp.AuthorID,
		},
	}

	if personalize {
		sess.Phase = PhaseAssessment
	} else {
		sess.Phase = PhaseRoadmap
		sess.Roadmap = bp.Roadmap.Clone()
		if sess.Roadmap == nil {
			sess.Roadmap = &Roadmap{}
		}
	}

	s.state.Sessions[id] = sess
	s.state.ActiveSessionID = id
	s.log.Info("blueprint forked",
		zap.String("session", id),
		zap.String("blueprint", bp.ID),
		zap.Bool("personalize", personalize))
	s.persistLocked(ctx)
	return id
}

// PublishSession pushes a session's roadmap to the exchange. The published
// copy is sanitized: completion flags, timestamps and evidence are
// stripped, statuses re-seeded, so every fork starts clean.
func (s *Service) PublishSession(ctx context.Context, sessionID string) (Blueprint, error) {
	s.mu.Lock()

	if s.exch == nil {
		s.mu.Unlock()
		return Blueprint{}, NoExchangeError{}
	}
	sess, ok := s.state.Sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return Blueprint{}, NotFoundError{Kind: "session", ID: sessionID}
	}
	if sess.Roadmap == nil || len(sess.Roadmap.Nodes) == 0 {
		s.mu.Unlock()
		return Blueprint{}, NotFoundError{Kind: "roadmap for session", ID: sessionID}
	}

	rm := sess.Roadmap.Clone()
	rm.ResetProgress()

	authorID := "anonymous"
	if s.state.User != nil {
		authorID = s.state.User.ID
	}
	bp := Blueprint{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Role:     sess.Role,
		Goal:     sess.Goal,
		Roadmap:  rm,
	}
	s.mu.Unlock()

	// Exchange I/O happens outside the engine mutex; it is remote and may
	// be slow.
	if err := s.exch.Publish(ctx, bp); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

// UnpublishBlueprint removes a previously published blueprint.
func (s *Service) UnpublishBlueprint(ctx context.Context, blueprintID string) error {
	s.mu.Lock()
	exch := s.exch
	s.mu.Unlock()
	if exch == nil {
		return NoExchangeError{}
	}
	return exch.Unpublish(ctx, blueprintID)
}

// VoteBlueprint records an up/down vote on a published blueprint.
func (s *Service) VoteBlueprint(ctx context.Context, blueprintID string, dir VoteDirection) error {
	s.mu.Lock()
	exch := s.exch
	s.mu.Unlock()
	if exch == nil {
		return NoExchangeError{}
	}
	if !dir.IsValid() {
		return nil
	}
	return exch.Vote(ctx, blueprintID, dir)
}
