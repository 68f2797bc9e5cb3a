// Package domain holds the core types of the SmilePoint rewards engine.
// The ledger is the source of truth: every aggregate on an account is
// derivable from its entries, and entries are never mutated after append.
package domain

import "time"

// ─── Action & Ledger Types ──────────────────────────────────────────────────

// ActionKind names a point-earning action performed in the practice dashboard.
type ActionKind string

const (
	ActionPatientAdded         ActionKind = "patient_added"
	ActionAppointmentScheduled ActionKind = "appointment_scheduled"
	ActionAppointmentCompleted ActionKind = "appointment_completed"
	ActionTreatmentPlanCreated ActionKind = "treatment_plan_created"
	ActionTelehealthSession    ActionKind = "telehealth_session"
	ActionProfileCompleted     ActionKind = "profile_completed"
	ActionDailyLogin           ActionKind = "daily_login"
)

// EntryKind tags a ledger entry with the event that produced it.
type EntryKind string

const (
	EntryEarn             EntryKind = "earn"
	EntryAchievementBonus EntryKind = "achievement_bonus"
	EntryReferralBonus    EntryKind = "referral_bonus"
	EntryStreakBonus      EntryKind = "streak_bonus"
	EntryRedemptionDebit  EntryKind = "redemption_debit"
)

// LedgerEntry is an immutable, timestamped record of a signed point change.
// Action is set only for earn entries; bonus and debit entries carry their
// context in Description.
type LedgerEntry struct {
	Timestamp   time.Time  `json:"timestamp"`
	Kind        EntryKind  `json:"kind"`
	Action      ActionKind `json:"action,omitempty"`
	Points      int64      `json:"points"`
	Description string     `json:"description"`
}

// ─── Referrals & Redemptions ────────────────────────────────────────────────

// ReferralStatus is one-way: pending → completed.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralCompleted ReferralStatus = "completed"
)

// Referral tracks an invited colleague from signup to completion bonus.
type Referral struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Status       ReferralStatus `json:"status"`
	SignupDate   time.Time      `json:"signup_date"`
	PointsEarned int64          `json:"points_earned"`
}

// RedemptionRecord records a reward purchase against available points.
type RedemptionRecord struct {
	RewardItemID string    `json:"reward_item_id"`
	Timestamp    time.Time `json:"timestamp"`
	PointsSpent  int64     `json:"points_spent"`
}

// ─── Streaks ────────────────────────────────────────────────────────────────

// Streak tracks consecutive-calendar-day continuity for logins and for
// qualifying activity. Day fields are UTC midnights.
type Streak struct {
	CurrentLogin    int       `json:"current_login"`
	LongestLogin    int       `json:"longest_login"`
	LastLoginDay    time.Time `json:"last_login_day"`
	CurrentActivity int       `json:"current_activity"`
	LongestActivity int       `json:"longest_activity"`
	LastActivityDay time.Time `json:"last_activity_day"`
}

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockedAchievement records a one-time, irreversible unlock.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Points     int64     `json:"points"`
}

// ─── Account ────────────────────────────────────────────────────────────────

// Account is the full per-practice rewards state. Invariants:
// AvailablePoints <= TotalPoints, TotalPoints equals the sum of positive
// ledger entries, and Tier is always derived from TotalPoints.
type Account struct {
	ID              string                `json:"id"`
	TotalPoints     int64                 `json:"total_points"`
	AvailablePoints int64                 `json:"available_points"`
	Tier            string                `json:"tier"`
	Unlocked        []UnlockedAchievement `json:"unlocked_achievements"`
	Ledger          []LedgerEntry         `json:"ledger"`
	Redemptions     []RedemptionRecord    `json:"redemptions"`
	Referrals       []Referral            `json:"referrals"`
	Streak          Streak                `json:"streak"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// NewAccount materializes the zero-state account for an ID. Absence in the
// store is not an error; first access creates one of these.
func NewAccount(id string, now time.Time) *Account {
	return &Account{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasAchievement reports whether the achievement was already unlocked.
func (a *Account) HasAchievement(id string) bool {
	for _, u := range a.Unlocked {
		if u.ID == id {
			return true
		}
	}
	return false
}

// FindReferral returns the referral with the given ID, or nil.
func (a *Account) FindReferral(id string) *Referral {
	for i := range a.Referrals {
		if a.Referrals[i].ID == id {
			return &a.Referrals[i]
		}
	}
	return nil
}

// CompletedReferrals counts referrals that reached the completed state.
func (a *Account) CompletedReferrals() int {
	n := 0
	for _, r := range a.Referrals {
		if r.Status == ReferralCompleted {
			n++
		}
	}
	return n
}

// Stats builds the snapshot that unlock rules are evaluated against.
// All ledger entries count uniformly — bonus and debit entries included.
func (a *Account) Stats(now time.Time) AccountStats {
	s := AccountStats{
		ActionCounts:          make(map[ActionKind]int),
		LedgerEntries:         len(a.Ledger),
		CompletedReferrals:    a.CompletedReferrals(),
		LifetimePoints:        a.TotalPoints,
		CurrentLoginStreak:    a.Streak.CurrentLogin,
		LongestLoginStreak:    a.Streak.LongestLogin,
		CurrentActivityStreak: a.Streak.CurrentActivity,
	}
	windowStart := now.AddDate(0, 0, -30)
	for _, e := range a.Ledger {
		if e.Action != "" {
			s.ActionCounts[e.Action]++
		}
		if e.Timestamp.After(windowStart) {
			s.EntriesLast30Days++
		}
	}
	s.DistinctActions = len(s.ActionCounts)
	return s
}

// AccountStats is the point-in-time snapshot fed to achievement rules.
type AccountStats struct {
	ActionCounts          map[ActionKind]int
	DistinctActions       int
	LedgerEntries         int
	EntriesLast30Days     int
	CompletedReferrals    int
	LifetimePoints        int64
	CurrentLoginStreak    int
	LongestLoginStreak    int
	CurrentActivityStreak int
}

// AccountSummary is the projection used by the leaderboard index.
type AccountSummary struct {
	AccountID   string `json:"account_id"`
	TotalPoints int64  `json:"total_points"`
}

// LeaderboardRow is one leaderboard position with the derived tier.
type LeaderboardRow struct {
	AccountID   string `json:"account_id"`
	TotalPoints int64  `json:"total_points"`
	Tier        string `json:"tier"`
}
