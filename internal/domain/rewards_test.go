package domain_test

import (
	"testing"
	"time"

	"github.com/smilepoint-health/smilepoint/internal/domain"
)

func TestAccountStats_TrailingWindow(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	acc := domain.NewAccount("acc", now.AddDate(0, -3, 0))
	acc.Ledger = []domain.LedgerEntry{
		{Timestamp: now.AddDate(0, 0, -45), Kind: domain.EntryEarn, Action: domain.ActionPatientAdded, Points: 50},
		{Timestamp: now.AddDate(0, 0, -31), Kind: domain.EntryEarn, Action: domain.ActionAppointmentScheduled, Points: 25},
		{Timestamp: now.AddDate(0, 0, -10), Kind: domain.EntryEarn, Action: domain.ActionAppointmentScheduled, Points: 25},
		{Timestamp: now.AddDate(0, 0, -1), Kind: domain.EntryAchievementBonus, Points: 100},
	}

	s := acc.Stats(now)
	if s.LedgerEntries != 4 {
		t.Errorf("LedgerEntries = %d, want 4", s.LedgerEntries)
	}
	if s.EntriesLast30Days != 2 {
		t.Errorf("EntriesLast30Days = %d, want 2 (45- and 31-day-old excluded)", s.EntriesLast30Days)
	}
	if s.ActionCounts[domain.ActionAppointmentScheduled] != 2 {
		t.Errorf("scheduled count = %d, want 2", s.ActionCounts[domain.ActionAppointmentScheduled])
	}
	if s.DistinctActions != 2 {
		t.Errorf("DistinctActions = %d, want 2 (bonus entry carries no action)", s.DistinctActions)
	}
}

func TestAccountStats_ReferralsAndStreaks(t *testing.T) {
	now := time.Now()
	acc := domain.NewAccount("acc", now)
	acc.TotalPoints = 1200
	acc.Referrals = []domain.Referral{
		{ID: "r1", Status: domain.ReferralCompleted},
		{ID: "r2", Status: domain.ReferralPending},
		{ID: "r3", Status: domain.ReferralCompleted},
	}
	acc.Streak.CurrentLogin = 3
	acc.Streak.LongestLogin = 9

	s := acc.Stats(now)
	if s.CompletedReferrals != 2 {
		t.Errorf("CompletedReferrals = %d, want 2", s.CompletedReferrals)
	}
	if s.LifetimePoints != 1200 {
		t.Errorf("LifetimePoints = %d, want 1200", s.LifetimePoints)
	}
	if s.CurrentLoginStreak != 3 || s.LongestLoginStreak != 9 {
		t.Errorf("streaks = %d/%d, want 3/9", s.CurrentLoginStreak, s.LongestLoginStreak)
	}
}

func TestUnlockRules(t *testing.T) {
	s := domain.AccountStats{
		ActionCounts: map[domain.ActionKind]int{
			domain.ActionPatientAdded:         3,
			domain.ActionTelehealthSession:    10,
			domain.ActionAppointmentScheduled: 1,
		},
		DistinctActions:    3,
		EntriesLast30Days:  12,
		CompletedReferrals: 1,
		LifetimePoints:     950,
		CurrentLoginStreak: 6,
	}

	tests := []struct {
		name string
		rule domain.UnlockRule
		want bool
	}{
		{"action count met", domain.ActionCountRule{Action: domain.ActionPatientAdded, Min: 3}, true},
		{"action count not met", domain.ActionCountRule{Action: domain.ActionPatientAdded, Min: 4}, false},
		{"action never performed", domain.ActionCountRule{Action: domain.ActionProfileCompleted, Min: 1}, false},
		{"referral count met", domain.ReferralCountRule{Min: 1}, true},
		{"referral count not met", domain.ReferralCountRule{Min: 5}, false},
		{"trailing count met", domain.TrailingCountRule{Min: 12}, true},
		{"trailing count not met", domain.TrailingCountRule{Min: 13}, false},
		{"distinct actions met", domain.DistinctActionsRule{Min: 3}, true},
		{"distinct actions not met", domain.DistinctActionsRule{Min: 5}, false},
		{"lifetime points not met", domain.LifetimePointsRule{Min: 1000}, false},
		{"lifetime points met", domain.LifetimePointsRule{Min: 950}, true},
		{"login streak not met", domain.LoginStreakRule{Days: 7}, false},
		{"login streak met", domain.LoginStreakRule{Days: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Met(s); got != tt.want {
				t.Errorf("Met() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindReferral(t *testing.T) {
	acc := domain.NewAccount("acc", time.Now())
	acc.Referrals = []domain.Referral{{ID: "r1"}, {ID: "r2"}}

	if ref := acc.FindReferral("r2"); ref == nil || ref.ID != "r2" {
		t.Errorf("FindReferral(r2) = %+v", ref)
	}
	if ref := acc.FindReferral("r9"); ref != nil {
		t.Errorf("FindReferral(r9) = %+v, want nil", ref)
	}

	// The pointer aliases the slice element so status flips stick.
	acc.FindReferral("r1").Status = domain.ReferralCompleted
	if acc.Referrals[0].Status != domain.ReferralCompleted {
		t.Error("FindReferral returned a copy, not an alias")
	}
}

func TestHasAchievement(t *testing.T) {
	acc := domain.NewAccount("acc", time.Now())
	if acc.HasAchievement("first_patient") {
		t.Error("fresh account reports an unlock")
	}
	acc.Unlocked = append(acc.Unlocked, domain.UnlockedAchievement{ID: "first_patient"})
	if !acc.HasAchievement("first_patient") {
		t.Error("unlock not reported")
	}
}
