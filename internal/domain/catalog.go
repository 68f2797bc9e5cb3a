package domain

// ─── Catalog Types ──────────────────────────────────────────────────────────
// The catalog is immutable, process-wide shared state. Tiers are contiguous
// and totally ordered by MinPoints; the last tier is unbounded.

// Tier is a reputation bracket derived from lifetime points. A tier never
// regresses: it is keyed to TotalPoints, not the spendable balance.
type Tier struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MinPoints int64    `json:"min_points"`
	MaxPoints int64    `json:"max_points"` // -1 = unbounded
	Benefits  []string `json:"benefits"`
}

// RewardType categorizes what a redeemed reward grants.
type RewardType string

const (
	RewardDiscount RewardType = "discount"
	RewardService  RewardType = "service"
	RewardMerch    RewardType = "merchandise"
)

// RewardItem is a redeemable catalog entry.
type RewardItem struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Cost  int64      `json:"cost"`
	Type  RewardType `json:"type"`
	Value string     `json:"value"`
}

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatMilestones AchievementCategory = "milestones"
	CatReferrals  AchievementCategory = "referrals"
	CatEngagement AchievementCategory = "engagement"
	CatPoints     AchievementCategory = "points"
)

// AchievementDef defines a single achievement. Rule is evaluated against an
// AccountStats snapshot and is not serialized.
type AchievementDef struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Category AchievementCategory `json:"category"`
	Points   int64               `json:"points_awarded"`
	Rule     UnlockRule          `json:"-"`
}

// Catalog bundles the static rule data the engine runs on.
type Catalog struct {
	Tiers        []Tier               `json:"tiers"`
	Achievements []AchievementDef     `json:"achievements"`
	PointValues  map[ActionKind]int64 `json:"point_values"`
	Rewards      []RewardItem         `json:"reward_items"`
}

// RewardByID looks up a redeemable reward.
func (c *Catalog) RewardByID(id string) (RewardItem, bool) {
	for _, r := range c.Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return RewardItem{}, false
}

// ─── Unlock Rules ───────────────────────────────────────────────────────────
// Each rule kind carries its own evaluator. New achievement families are
// added by extending this set, not by branching inside the engine.

// UnlockRule is the condition under which an achievement unlocks.
type UnlockRule interface {
	Met(s AccountStats) bool
}

// ActionCountRule unlocks after Min occurrences of a specific action.
type ActionCountRule struct {
	Action ActionKind
	Min    int
}

func (r ActionCountRule) Met(s AccountStats) bool { return s.ActionCounts[r.Action] >= r.Min }

// ReferralCountRule unlocks after Min completed referrals.
type ReferralCountRule struct {
	Min int
}

func (r ReferralCountRule) Met(s AccountStats) bool { return s.CompletedReferrals >= r.Min }

// TrailingCountRule unlocks after Min ledger entries in the trailing 30 days.
type TrailingCountRule struct {
	Min int
}

func (r TrailingCountRule) Met(s AccountStats) bool { return s.EntriesLast30Days >= r.Min }

// DistinctActionsRule unlocks after Min distinct action kinds appear in the
// ledger.
type DistinctActionsRule struct {
	Min int
}

func (r DistinctActionsRule) Met(s AccountStats) bool { return s.DistinctActions >= r.Min }

// LifetimePointsRule unlocks once lifetime earnings reach Min.
type LifetimePointsRule struct {
	Min int64
}

func (r LifetimePointsRule) Met(s AccountStats) bool { return s.LifetimePoints >= r.Min }

// LoginStreakRule unlocks once the current login streak reaches Days.
type LoginStreakRule struct {
	Days int
}

func (r LoginStreakRule) Met(s AccountStats) bool { return s.CurrentLoginStreak >= r.Days }
