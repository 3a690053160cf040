package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSession allocates a new session in the assessment phase and makes
// it active.
func (s *Service) CreateSession(ctx context.Context, goal, role, deadline string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.state.Sessions[id] = &Session{
		ID:        id,
		Goal:      goal,
		Role:      role,
		Deadline:  deadline,
		Phase:     PhaseAssessment,
		CreatedAt: s.clock.Now(),
		DailyLog:  map[string]DayLog{},
	}
	s.state.ActiveSessionID = id
	s.log.Info("session created", zap.String("session", id), zap.String("role", role))
	s.persistLocked(ctx)
	return id
}

// SwitchSession points the engine at another session. An unknown id is a
// silent no-op; the active pointer is left untouched.
func (s *Service) SwitchSession(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Sessions[id]; !ok {
		return
	}
	s.state.ActiveSessionID = id
	s.persistLocked(ctx)
}

// DeleteSession removes a session. If it was active the pointer is cleared
// (back to landing); another session is never auto-selected. Any in-flight
// generation for the deleted session becomes a no-op when it lands.
func (s *Service) DeleteSession(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Sessions[id]; !ok {
		return
	}
	delete(s.state.Sessions, id)
	if s.state.ActiveSessionID == id {
		s.state.ActiveSessionID = ""
	}
	s.log.Info("session deleted", zap.String("session", id))
	s.persistLocked(ctx)
}

// Reset clears the active pointer only. No session is deleted.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ActiveSessionID = ""
	s.persistLocked(ctx)
}

// Login records the authenticated identity supplied by the host.
func (s *Service) Login(ctx context.Context, u User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = &u
	s.state.Authenticated = true
	s.persistLocked(ctx)
}

// Logout drops the identity. Sessions and engagement metrics survive.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = nil
	s.state.Authenticated = false
	s.persistLocked(ctx)
}
