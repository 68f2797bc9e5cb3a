package rewards

import "github.com/smilepoint-health/smilepoint/internal/domain"

// ─── Tier Engine ────────────────────────────────────────────────────────────
// Pure functions over the ordered tier ladder. Tier is a reputation measure
// of lifetime earnings: spending never moves it.

// TierFor returns the highest tier whose MinPoints <= totalPoints.
// Assumes tiers are ordered by MinPoints with the first starting at 0.
func TierFor(tiers []domain.Tier, totalPoints int64) domain.Tier {
	current := tiers[0]
	for _, t := range tiers {
		if totalPoints >= t.MinPoints {
			current = t
		}
	}
	return current
}

// NextTier returns the tier after the current one, or false at the top.
func NextTier(tiers []domain.Tier, current domain.Tier) (domain.Tier, bool) {
	for i, t := range tiers {
		if t.ID == current.ID && i+1 < len(tiers) {
			return tiers[i+1], true
		}
	}
	return domain.Tier{}, false
}

// TierProgress returns progress toward the next tier as a percentage,
// clamped to 100 when the account sits in the top tier.
func TierProgress(tiers []domain.Tier, totalPoints int64) float64 {
	current := TierFor(tiers, totalPoints)
	next, ok := NextTier(tiers, current)
	if !ok {
		return 100.0
	}
	span := next.MinPoints - current.MinPoints
	if span <= 0 {
		return 100.0
	}
	pct := float64(totalPoints-current.MinPoints) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// PointsToNextTier returns lifetime points remaining until the next tier,
// or 0 when the account sits in the top tier.
func PointsToNextTier(tiers []domain.Tier, totalPoints int64) int64 {
	current := TierFor(tiers, totalPoints)
	next, ok := NextTier(tiers, current)
	if !ok {
		return 0
	}
	remaining := next.MinPoints - totalPoints
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}
