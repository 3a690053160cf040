package engine

import (
	"context"

	"go.uber.org/zap"
)

// SetQuestions attaches the assessment question list to the active session.
// No active session, or an empty list, is a no-op.
func (s *Service) SetQuestions(ctx context.Context, questions []Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.state.Sessions[s.state.ActiveSessionID]
	if !ok || len(questions) == 0 {
		return
	}
	sess.Questions = append([]Question(nil), questions...)
	sess.QuestionIndex = 0
	s.persistLocked(ctx)
}

// AnswerQuestion records the answer for the question under the cursor and
// advances it. Answering the last question flips the phase to roadmap
// immediately (optimistic, before generation finishes) and kicks off
// asynchronous roadmap generation exactly once.
func (s *Service) AnswerQuestion(ctx context.Context, skill string, knowsIt bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.state.Sessions[s.state.ActiveSessionID]
	if !ok {
		return
	}
	if sess.QuestionIndex >= len(sess.Questions) {
		return
	}

	if knowsIt {
		sess.KnownSkills = append(sess.KnownSkills, skill)
	} else {
		sess.GapSkills = append(sess.GapSkills, skill)
	}
	sess.QuestionIndex++

	// Only the call that crosses the finish line triggers generation, so a
	// repeated AnswerQuestion after completion can never fire it twice.
	if sess.AssessmentDone() && sess.Phase.Rank() < PhaseRoadmap.Rank() {
		sess.Phase = PhaseRoadmap
		s.startGenerationLocked(sess.ID, sess.Role, sess.KnownSkills, sess.GapSkills)
	}
	s.persistLocked(ctx)
}

// RegenerateRoadmap is the manual retry for a failed or empty generation.
// The session must exist and already be in the roadmap phase.
func (s *Service) RegenerateRoadmap(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.state.Sessions[sessionID]
	if !ok {
		return NotFoundError{Kind: "session", ID: sessionID}
	}
	if sess.Phase != PhaseRoadmap {
		return nil
	}
	s.startGenerationLocked(sess.ID, sess.Role, sess.KnownSkills, sess.GapSkills)
	return nil
}

// startGenerationLocked fires the async generation continuation. Callers
// hold the mutex; the goroutine re-acquires it before merging and
// re-validates that the session still exists, because a delete may race
// the generator. There is no cancellation: deletion simply makes the
// continuation a no-op.
func (s *Service) startGenerationLocked(sessionID, role string, known, gaps []string) {
	known = append([]string(nil), known...)
	gaps = append([]string(nil), gaps...)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		// Fire-and-forget: timeouts are the generator's concern.
		ctx := context.Background()
		rm, err := s.gen.GenerateRoadmap(ctx, role, known, gaps)
		if err != nil {
			s.log.Warn("roadmap generation failed", zap.String("session", sessionID), zap.Error(err))
			rm = &Roadmap{}
		}
		if rm == nil {
			rm = &Roadmap{}
		}
		rm.Normalize()

		s.mu.Lock()
		defer s.mu.Unlock()
		sess, ok := s.state.Sessions[sessionID]
		if !ok {
			s.log.Debug("discarding roadmap for deleted session", zap.String("session", sessionID))
			return
		}
		sess.Roadmap = rm
		s.log.Info("roadmap merged",
			zap.String("session", sessionID),
			zap.Int("nodes", len(rm.Nodes)))
		s.persistLocked(ctx)
	}()
}
