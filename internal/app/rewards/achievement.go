package rewards

import (
	"time"

	"github.com/smilepoint-health/smilepoint/internal/domain"
	"github.com/smilepoint-health/smilepoint/internal/infra/metrics"
)

// ─── Achievement Evaluation ─────────────────────────────────────────────────

// runAchievements evaluates every not-yet-unlocked achievement against the
// account's current state, awarding bonuses until a fixed point is reached:
// a bonus entry can push lifetime points (or entry counts) over another
// rule's threshold, so the pass re-scans after any award. The already-
// unlocked guard is taken BEFORE the bonus entry is appended, so an
// achievement's own bonus can never re-trigger its own rule.
// Returns the definitions unlocked by this pass, in unlock order.
func (s *Service) runAchievements(acc *domain.Account, now time.Time) []domain.AchievementDef {
	var unlocked []domain.AchievementDef

	for {
		changed := false
		stats := acc.Stats(now)

		for _, def := range s.catalog.Achievements {
			if def.Rule == nil || acc.HasAchievement(def.ID) {
				continue
			}
			if !def.Rule.Met(stats) {
				continue
			}

			acc.Unlocked = append(acc.Unlocked, domain.UnlockedAchievement{
				ID:         def.ID,
				UnlockedAt: now,
				Points:     def.Points,
			})
			s.credit(acc, domain.EntryAchievementBonus, def.Points,
				"Achievement unlocked: "+def.Name, now)
			metrics.AchievementsUnlocked.WithLabelValues(string(def.Category)).Inc()

			unlocked = append(unlocked, def)
			changed = true
			stats = acc.Stats(now)
		}

		// No award in a full scan — state is stable, stop.
		if !changed {
			break
		}
	}

	return unlocked
}
