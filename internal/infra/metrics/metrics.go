// Package metrics provides Prometheus metrics for the rewards engine —
// counters for points flow, redemptions, achievements, referrals, and logins.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Points ─────────────────────────────────────────────────────────────────

// PointsEarned tracks points credited, labeled by ledger entry kind.
var PointsEarned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "points_earned_total",
	Help:      "Total points credited to accounts.",
}, []string{"kind"})

// PointsRedeemed tracks points debited by redemptions.
var PointsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "points_redeemed_total",
	Help:      "Total points spent on reward redemptions.",
})

// ─── Operations ─────────────────────────────────────────────────────────────

// Redemptions tracks redemption attempts by outcome.
var Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "redemptions_total",
	Help:      "Reward redemption attempts.",
}, []string{"outcome"})

// AchievementsUnlocked tracks achievement unlocks by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "achievements_unlocked_total",
	Help:      "Achievements unlocked.",
}, []string{"category"})

// ReferralsCompleted tracks completed referrals.
var ReferralsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "referrals_completed_total",
	Help:      "Referrals that reached the completed state.",
})

// LoginsRecorded tracks login streak updates.
var LoginsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "logins_recorded_total",
	Help:      "Login events recorded against streaks.",
})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests tracks API requests by method, matched route, and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "smilepoint",
	Name:      "http_requests_total",
	Help:      "HTTP requests served by the API.",
}, []string{"method", "route", "status"})
