package engine

import "time"

// Clock supplies the engine's notion of "now". Streaks and daily quests are
// calendar-date driven, so tests inject a fixed clock instead of sleeping
// across midnight.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// dateLayout is the calendar-date key used for streaks, daily logs and the
// quest seed. Local calendar, no time zone math.
const dateLayout = "2006-01-02"

// DateOf reduces a timestamp to its calendar date string.
func DateOf(t time.Time) string {
	return t.Format(dateLayout)
}
