package rewards

import "github.com/smilepoint-health/smilepoint/internal/domain"

// ─── Bonus Constants ────────────────────────────────────────────────────────

// ReferralBonusPoints is the fixed bonus for a completed referral.
const ReferralBonusPoints int64 = 500

// Login streak milestones and their one-time bonuses.
const (
	StreakMilestoneWeek  = 7
	StreakMilestoneMonth = 30

	StreakWeekBonus  int64 = 150
	StreakMonthBonus int64 = 1000
)

// ─── Catalog Definitions ────────────────────────────────────────────────────
// 4 tiers, 7 point-earning actions, 11 achievements, 4 redeemable rewards.

// DefaultCatalog returns the full static rules catalog.
func DefaultCatalog() *domain.Catalog {
	return &domain.Catalog{
		Tiers:        AllTiers(),
		Achievements: AllAchievements(),
		PointValues:  ActionPointValues(),
		Rewards:      AllRewards(),
	}
}

// AllTiers returns the contiguous tier ladder, ordered by MinPoints.
func AllTiers() []domain.Tier {
	return []domain.Tier{
		{
			ID: "bronze", Name: "Bronze", MinPoints: 0, MaxPoints: 999,
			Benefits: []string{"Rewards dashboard", "Monthly practice digest"},
		},
		{
			ID: "silver", Name: "Silver", MinPoints: 1000, MaxPoints: 4999,
			Benefits: []string{"Priority support", "Quarterly webinar access"},
		},
		{
			ID: "gold", Name: "Gold", MinPoints: 5000, MaxPoints: 14999,
			Benefits: []string{"Dedicated account manager", "Early feature access"},
		},
		{
			ID: "platinum", Name: "Platinum", MinPoints: 15000, MaxPoints: -1,
			Benefits: []string{"Annual summit invite", "Custom onboarding for new staff"},
		},
	}
}

// ActionPointValues returns the default points earned per action kind.
// An explicit points override on RecordPoints takes precedence.
func ActionPointValues() map[domain.ActionKind]int64 {
	return map[domain.ActionKind]int64{
		domain.ActionPatientAdded:         50,
		domain.ActionAppointmentScheduled: 25,
		domain.ActionAppointmentCompleted: 30,
		domain.ActionTreatmentPlanCreated: 40,
		domain.ActionTelehealthSession:    35,
		domain.ActionProfileCompleted:     20,
		domain.ActionDailyLogin:           10,
	}
}

// AllAchievements returns the achievement catalog. Each entry carries its
// unlock rule; the engine never branches on achievement IDs.
func AllAchievements() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Milestones ─────────────────────────────────────────────────
		{
			ID: "first_patient", Name: "First Patient", Category: domain.CatMilestones,
			Points: 100,
			Rule:   domain.ActionCountRule{Action: domain.ActionPatientAdded, Min: 1},
		},
		{
			ID: "patient_pro", Name: "Patient Pro", Category: domain.CatMilestones,
			Points: 1000,
			Rule:   domain.ActionCountRule{Action: domain.ActionPatientAdded, Min: 50},
		},
		{
			ID: "scheduling_ace", Name: "Scheduling Ace", Category: domain.CatMilestones,
			Points: 500,
			Rule:   domain.ActionCountRule{Action: domain.ActionAppointmentScheduled, Min: 25},
		},
		{
			ID: "telehealth_pioneer", Name: "Telehealth Pioneer", Category: domain.CatMilestones,
			Points: 300,
			Rule:   domain.ActionCountRule{Action: domain.ActionTelehealthSession, Min: 10},
		},

		// ── Referrals ──────────────────────────────────────────────────
		{
			ID: "first_referral", Name: "Ambassador", Category: domain.CatReferrals,
			Points: 500,
			Rule:   domain.ReferralCountRule{Min: 1},
		},
		{
			ID: "referrer_gold", Name: "Practice Evangelist", Category: domain.CatReferrals,
			Points: 10000,
			Rule:   domain.ReferralCountRule{Min: 5},
		},

		// ── Engagement ─────────────────────────────────────────────────
		{
			ID: "power_user", Name: "Power User", Category: domain.CatEngagement,
			Points: 750,
			Rule:   domain.TrailingCountRule{Min: 50},
		},
		{
			ID: "feature_explorer", Name: "Feature Explorer", Category: domain.CatEngagement,
			Points: 250,
			Rule:   domain.DistinctActionsRule{Min: 5},
		},
		{
			ID: "week_warrior", Name: "Week Warrior", Category: domain.CatEngagement,
			Points: 200,
			Rule:   domain.LoginStreakRule{Days: 7},
		},

		// ── Points ─────────────────────────────────────────────────────
		{
			ID: "point_collector", Name: "Point Collector", Category: domain.CatPoints,
			Points: 250,
			Rule:   domain.LifetimePointsRule{Min: 1000},
		},
		{
			ID: "point_hoarder", Name: "Point Hoarder", Category: domain.CatPoints,
			Points: 2500,
			Rule:   domain.LifetimePointsRule{Min: 10000},
		},
	}
}

// AllRewards returns the redeemable reward catalog.
func AllRewards() []domain.RewardItem {
	return []domain.RewardItem{
		{
			ID: "whitening_kit_discount", Name: "Whitening Kit Discount",
			Cost: 500, Type: domain.RewardDiscount, Value: "15% off whitening kits",
		},
		{
			ID: "free_hygiene_kit", Name: "Free Hygiene Kit",
			Cost: 1000, Type: domain.RewardMerch, Value: "Patient hygiene kit, box of 50",
		},
		{
			ID: "conference_pass", Name: "Conference Pass Discount",
			Cost: 2500, Type: domain.RewardDiscount, Value: "50% off one dental conference pass",
		},
		{
			ID: "team_lunch", Name: "Team Lunch",
			Cost: 5000, Type: domain.RewardService, Value: "Catered lunch for the practice team",
		},
	}
}
