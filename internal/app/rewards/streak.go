package rewards

import (
	"fmt"
	"time"

	"github.com/smilepoint-health/smilepoint/internal/domain"
)

// ─── Streak Tracking ────────────────────────────────────────────────────────
// Continuity is judged on UTC calendar days: same day is a no-op, exactly
// one day later extends the streak, anything else resets it to 1.

// streakMilestones maps login streak lengths to their one-time bonus.
var streakMilestones = []struct {
	days  int
	bonus int64
}{
	{StreakMilestoneWeek, StreakWeekBonus},
	{StreakMilestoneMonth, StreakMonthBonus},
}

// calendarDay truncates a time to its UTC calendar day. The conversion to
// UTC happens before the date fields are read, so the bucket is independent
// of the input's zone offset.
func calendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// advanceStreak applies the continuity rule to a (current, longest, lastDay)
// triple and returns the updated values. Callers handle the same-day case.
func advanceStreak(current, longest int, lastDay, day time.Time) (int, int) {
	switch {
	case lastDay.IsZero():
		current = 1
	case day.Equal(lastDay.AddDate(0, 0, 1)):
		current++
	default:
		current = 1
	}
	if current > longest {
		longest = current
	}
	return current, longest
}

// applyLogin updates the login streak for a login at the given instant.
// Returns the streak length before and after, and whether anything changed
// (false when the login lands on an already-counted day).
func applyLogin(acc *domain.Account, at time.Time) (prev, cur int, changed bool) {
	day := calendarDay(at)
	st := &acc.Streak

	if !st.LastLoginDay.IsZero() && day.Equal(st.LastLoginDay) {
		return st.CurrentLogin, st.CurrentLogin, false
	}

	prev = st.CurrentLogin
	st.CurrentLogin, st.LongestLogin = advanceStreak(st.CurrentLogin, st.LongestLogin, st.LastLoginDay, day)
	st.LastLoginDay = day
	return prev, st.CurrentLogin, true
}

// applyActivity updates the activity streak for a qualifying action at the
// given instant. Same continuity rule as logins; no milestone bonuses.
func applyActivity(acc *domain.Account, at time.Time) {
	day := calendarDay(at)
	st := &acc.Streak

	if !st.LastActivityDay.IsZero() && day.Equal(st.LastActivityDay) {
		return
	}

	st.CurrentActivity, st.LongestActivity = advanceStreak(st.CurrentActivity, st.LongestActivity, st.LastActivityDay, day)
	st.LastActivityDay = day
}

// awardStreakBonuses pays milestone bonuses crossed by a streak update.
// Crossing detection (prev below, cur at/above) rather than exact equality,
// so a streak that jumps past a milestone after a correction still pays.
func (s *Service) awardStreakBonuses(acc *domain.Account, prev, cur int, now time.Time) {
	for _, m := range streakMilestones {
		if prev < m.days && cur >= m.days {
			s.credit(acc, domain.EntryStreakBonus, m.bonus,
				fmt.Sprintf("%d-day login streak bonus", m.days), now)
		}
	}
}
