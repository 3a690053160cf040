package engine

import (
	"context"
	"time"
)

// recordCompletion applies the streak state machine and bumps the daily
// log for one completion event. Calendar days, not 24h windows:
//
//   - already active today: streak unchanged
//   - last active yesterday: streak + 1
//   - gap of two or more days (or never active): streak resets to 1
func recordCompletion(sess *Session, now time.Time) int {
	today := DateOf(now)
	yesterday := DateOf(now.AddDate(0, 0, -1))

	switch sess.LastActiveDate {
	case today:
		// second completion today, streak already counted
	case yesterday:
		sess.Streak++
	default:
		sess.Streak = 1
	}
	sess.LastActiveDate = today

	day := sess.DailyLog[today]
	day.TasksCompleted++
	sess.DailyLog[today] = day
	return sess.Streak
}

// LogTime adds study minutes to today's log on the active session. It is
// independent of task completion and does not touch the streak.
func (s *Service) LogTime(ctx context.Context, minutes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.state.Sessions[s.state.ActiveSessionID]
	if !ok || minutes <= 0 {
		return
	}
	today := DateOf(s.clock.Now())
	day := sess.DailyLog[today]
	day.TimeSpentMin += minutes
	sess.DailyLog[today] = day
	s.persistLocked(ctx)
}
