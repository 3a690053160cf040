package engine

import (
	"context"
	"testing"
	"time"
)

func TestStreakConsecutiveDays(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, nil, WithClock(clock))
	ctx := context.Background()
	startRoadmapSession(t, svc, "goal")

	res, _ := svc.CompleteTask(ctx, "n1", "n1-a", 0)
	if res.Streak != 1 {
		t.Fatalf("day 1 streak=%d, want 1", res.Streak)
	}

	clock.AdvanceDays(1)
	res, _ = svc.CompleteTask(ctx, "n1", "n1-a", 1)
	if res.Streak != 2 {
		t.Fatalf("day 2 streak=%d, want 2", res.Streak)
	}

	clock.AdvanceDays(1)
	res, _ = svc.CompleteTask(ctx, "n1", "n1-b", 0)
	if res.Streak != 3 {
		t.Fatalf("day 3 streak=%d, want 3", res.Streak)
	}
}

func TestStreakUnchangedWithinOneDay(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, nil, WithClock(clock))
	ctx := context.Background()
	startRoadmapSession(t, svc, "goal")

	svc.CompleteTask(ctx, "n1", "n1-a", 0)
	res, _ := svc.CompleteTask(ctx, "n1", "n1-a", 1)
	if res.Streak != 1 {
		t.Fatalf("same-day streak=%d, want 1", res.Streak)
	}

	sess, _ := svc.Active()
	today := DateOf(clock.Now())
	if got := sess.DailyLog[today].TasksCompleted; got != 2 {
		t.Fatalf("dailyLog tasks=%d, want 2", got)
	}
}

func TestStreakResetsAfterSkippedDay(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, nil, WithClock(clock))
	ctx := context.Background()
	startRoadmapSession(t, svc, "goal")

	svc.CompleteTask(ctx, "n1", "n1-a", 0)
	clock.AdvanceDays(1)
	res, _ := svc.CompleteTask(ctx, "n1", "n1-a", 1)
	if res.Streak != 2 {
		t.Fatalf("setup: streak=%d, want 2", res.Streak)
	}

	// Skip a day; the streak starts over at 1.
	clock.AdvanceDays(2)
	res, _ = svc.CompleteTask(ctx, "n1", "n1-b", 0)
	if res.Streak != 1 {
		t.Fatalf("streak after gap=%d, want 1", res.Streak)
	}
}

func TestStreakIsPerSession(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, nil, WithClock(clock))
	ctx := context.Background()

	a := startRoadmapSession(t, svc, "goal a")
	b := startRoadmapSession(t, svc, "goal b")

	svc.SwitchSession(ctx, a)
	svc.CompleteTask(ctx, "n1", "n1-a", 0)

	sessB, _ := svc.Session(b)
	if sessB.Streak != 0 {
		t.Fatalf("session b streak=%d, want 0", sessB.Streak)
	}
}

func TestLogTimeAccumulatesIndependently(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, nil, WithClock(clock))
	ctx := context.Background()
	startRoadmapSession(t, svc, "goal")

	svc.LogTime(ctx, 25)
	svc.LogTime(ctx, 30)
	svc.LogTime(ctx, -5) // ignored

	sess, _ := svc.Active()
	today := DateOf(clock.Now())
	day := sess.DailyLog[today]
	if day.TimeSpentMin != 55 {
		t.Fatalf("timeSpent=%d, want 55", day.TimeSpentMin)
	}
	if day.TasksCompleted != 0 {
		t.Fatalf("logTime must not count completions")
	}
	if sess.Streak != 0 {
		t.Fatalf("logTime must not touch the streak")
	}
}
