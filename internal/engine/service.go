package engine

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"go.uber.org/zap"

	"waypoint/internal/storage"
)

// Service is the progression engine. All commands run under one mutex, so
// every mutation is atomic from the caller's perspective; continuations
// from async generation re-enter through the same mutex and re-validate
// that their target session still exists.
//
// Persistence is write-through and best-effort: a failing write never
// blocks in-memory state from advancing.
type Service struct {
	mu    sync.Mutex
	state *State

	stateRepo       *storage.StateRepo
	completionsRepo *storage.CompletionRepo

	gen   Generator
	exch  Exchange
	clock Clock
	log   *zap.Logger

	pending sync.WaitGroup
}

type Option func(*Service)

// WithClock overrides the calendar source. Tests use this to cross
// midnights without sleeping.
func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithExchange(e Exchange) Option {
	return func(s *Service) { s.exch = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService builds the engine around an optional database handle. A nil db
// gives a purely in-memory engine (used by some tests); otherwise the last
// snapshot is rehydrated once, here.
func NewService(ctx context.Context, db *sql.DB, gen Generator, opts ...Option) (*Service, error) {
	s := &Service{
		state: NewState(),
		gen:   gen,
		clock: systemClock{},
		log:   zap.NewNop(),
	}
	if db != nil {
		s.stateRepo = storage.NewStateRepo(db)
		s.completionsRepo = storage.NewCompletionRepo(db)
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.stateRepo != nil {
		snap, err := s.stateRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		if snap != nil {
			st, err := DecodeState(snap.Data)
			if err != nil {
				return nil, err
			}
			s.state = st
		}
	}
	return s, nil
}

// Flush waits for in-flight generation continuations. Intended for tests
// and graceful shutdown.
func (s *Service) Flush() {
	s.pending.Wait()
}

// persistLocked writes the snapshot through to storage. Callers hold the
// mutex. Failures are logged and swallowed; the in-memory state is already
// advanced and stays authoritative until the next successful write.
func (s *Service) persistLocked(ctx context.Context) {
	if s.stateRepo == nil {
		return
	}
	data, err := s.state.Encode()
	if err != nil {
		s.log.Warn("encode snapshot", zap.Error(err))
		return
	}
	if err := s.stateRepo.Save(ctx, StateVersion, data, s.clock.Now()); err != nil {
		s.log.Warn("persist snapshot", zap.Error(err))
	}
}

// Session returns a deep copy of one session.
func (s *Service) Session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.state.Sessions[id]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Active returns a deep copy of the active session, or false when the
// engine is at the landing phase (no active session).
func (s *Service) Active() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.state.Sessions[s.state.ActiveSessionID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Sessions returns deep copies of every session, ordered by creation time
// then id for a stable listing.
func (s *Service) Sessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.state.Sessions))
	for _, sess := range s.state.Sessions {
		out = append(out, sess.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CurrentUser returns the logged-in user, if any.
func (s *Service) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated || s.state.User == nil {
		return User{}, false
	}
	return *s.state.User, true
}

// EngagementInfo reports process-wide engagement plus whether the signup
// prompt should be shown: at least one task ever completed while the user
// is unauthenticated.
func (s *Service) EngagementInfo() (Engagement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prompt := !s.state.Authenticated && s.state.Engagement.TasksCompleted >= 1
	return s.state.Engagement, prompt
}
