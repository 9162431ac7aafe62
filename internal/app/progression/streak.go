package progression

import (
	"time"

	"github.com/spendquest-app/spendquest/internal/domain"
	"github.com/spendquest-app/spendquest/internal/infra/metrics"
)

// civilDate truncates a time to its calendar date at midnight UTC.
// Streaks are counted in calendar days, not 24-hour windows.
func civilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the calendar-day difference b - a.
func daysBetween(a, b time.Time) int {
	return int(civilDate(b).Sub(civilDate(a)) / (24 * time.Hour))
}

// advanceStreak runs the streak state machine for one qualifying event.
// Same-day repeats are no-ops, a one-day gap extends the streak and pays
// the continuation XP, a two-day gap consumes a freeze if one is held
// (bridging exactly one missed day, no XP), anything else resets to 1.
// Out-of-order events (negative gap) are treated as already credited.
func (e *Engine) advanceStreak(u *domain.UserProgression, now time.Time, res *domain.EventResult) {
	today := civilDate(now)

	if u.LastActivityDate.IsZero() {
		// First-ever qualifying action: streak starts, no XP.
		u.CurrentStreak = 1
		u.LastActivityDate = today
	} else {
		switch gap := daysBetween(u.LastActivityDate, today); {
		case gap <= 0:
			// Already credited today.
			return

		case gap == 1:
			u.CurrentStreak++
			u.LastActivityDate = today
			e.award(u, e.cfg.XPStreakDay, "streak", res)

		case gap == 2 && u.StreakFreezes > 0:
			u.StreakFreezes--
			u.LastActivityDate = today
			metrics.FreezesConsumed.Inc()

		default:
			u.CurrentStreak = 1
			u.LastActivityDate = today
		}
	}

	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
}
