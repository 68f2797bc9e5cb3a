// Package rewards implements the SmilePoint rewards and loyalty ledger
// engine: points ledger, derived tiers, achievements, streaks, redemptions,
// and referrals. Every mutating operation goes through the ledger first,
// then recomputes the tier and re-evaluates achievements before returning
// the updated account snapshot.
package rewards

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smilepoint-health/smilepoint/internal/domain"
	"github.com/smilepoint-health/smilepoint/internal/infra/metrics"
)

// Service is the rewards engine. Operations on the same account are
// serialized through a per-account mutex; operations on different accounts
// run independently. The catalog is immutable shared state.
type Service struct {
	repo    domain.AccountRepository
	catalog *domain.Catalog

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a rewards engine over the given repository with the
// default catalog.
func NewService(repo domain.AccountRepository) *Service {
	return NewServiceWithCatalog(repo, DefaultCatalog())
}

// NewServiceWithCatalog creates a rewards engine with a custom catalog.
func NewServiceWithCatalog(repo domain.AccountRepository, catalog *domain.Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Catalog returns the static catalog. Callers must not mutate it.
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// ─── Public Operations ──────────────────────────────────────────────────────

// GetAccount returns the account snapshot, materializing and persisting a
// fresh zero-state account on first access. There is no "not found" error.
func (s *Service) GetAccount(accountID string) (*domain.Account, error) {
	defer s.lock(accountID)()

	now := time.Now()
	acc, created, err := s.load(accountID, now)
	if err != nil {
		return nil, err
	}
	if created {
		if err := s.persist(acc); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// RecordPoints appends an earn entry for the given action and returns the
// updated snapshot. points == 0 means "use the catalog value for the
// action"; a positive value overrides it. Unknown actions fail with
// ErrInvalidActionKind and negative overrides with ErrInvalidPoints,
// both before any state changes.
func (s *Service) RecordPoints(accountID string, action domain.ActionKind, points int64) (*domain.Account, error) {
	base, ok := s.catalog.PointValues[action]
	if !ok {
		return nil, domain.ErrInvalidActionKind
	}
	if points < 0 {
		return nil, domain.ErrInvalidPoints
	}
	if points == 0 {
		points = base
	}

	defer s.lock(accountID)()

	now := time.Now()
	acc, _, err := s.load(accountID, now)
	if err != nil {
		return nil, err
	}

	acc.Ledger = append(acc.Ledger, domain.LedgerEntry{
		Timestamp:   now,
		Kind:        domain.EntryEarn,
		Action:      action,
		Points:      points,
		Description: fmt.Sprintf("Earned %d points for %s", points, action),
	})
	acc.TotalPoints += points
	acc.AvailablePoints += points
	metrics.PointsEarned.WithLabelValues(string(domain.EntryEarn)).Add(float64(points))

	applyActivity(acc, now)
	s.finalize(acc, now)

	if err := s.persist(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// RecordLogin updates the login streak for a login at the given instant and
// returns the resulting streak state. A second login on an already-counted
// calendar day is a no-op. Milestone bonuses flow through the ledger when
// the streak crosses a threshold.
func (s *Service) RecordLogin(accountID string, at time.Time) (domain.Streak, error) {
	defer s.lock(accountID)()

	acc, created, err := s.load(accountID, at)
	if err != nil {
		return domain.Streak{}, err
	}

	prev, cur, changed := applyLogin(acc, at)
	if !changed && !created {
		return acc.Streak, nil
	}
	metrics.LoginsRecorded.Inc()

	s.awardStreakBonuses(acc, prev, cur, at)
	s.finalize(acc, at)

	if err := s.persist(acc); err != nil {
		return domain.Streak{}, err
	}
	return acc.Streak, nil
}

// Redeem spends available points on a catalog reward. Fails with
// ErrRewardNotFound or ErrInsufficientPoints with no state change; on
// success the debit, the redemption record, and the re-evaluation land
// in the same persisted snapshot. Lifetime points and tier are untouched.
func (s *Service) Redeem(accountID, rewardItemID string) (*domain.Account, domain.RewardItem, error) {
	item, ok := s.catalog.RewardByID(rewardItemID)
	if !ok {
		metrics.Redemptions.WithLabelValues("reward_not_found").Inc()
		return nil, domain.RewardItem{}, domain.ErrRewardNotFound
	}

	defer s.lock(accountID)()

	now := time.Now()
	acc, _, err := s.load(accountID, now)
	if err != nil {
		return nil, domain.RewardItem{}, err
	}

	if acc.AvailablePoints < item.Cost {
		metrics.Redemptions.WithLabelValues("insufficient_points").Inc()
		return nil, domain.RewardItem{}, domain.ErrInsufficientPoints
	}

	acc.AvailablePoints -= item.Cost
	acc.Ledger = append(acc.Ledger, domain.LedgerEntry{
		Timestamp:   now,
		Kind:        domain.EntryRedemptionDebit,
		Points:      -item.Cost,
		Description: "Redeemed: " + item.Name,
	})
	acc.Redemptions = append(acc.Redemptions, domain.RedemptionRecord{
		RewardItemID: item.ID,
		Timestamp:    now,
		PointsSpent:  item.Cost,
	})

	s.finalize(acc, now)

	if err := s.persist(acc); err != nil {
		return nil, domain.RewardItem{}, err
	}
	metrics.Redemptions.WithLabelValues("ok").Inc()
	metrics.PointsRedeemed.Add(float64(item.Cost))
	return acc, item, nil
}

// CreateReferral registers a pending referral for the account.
func (s *Service) CreateReferral(accountID, email string) (domain.Referral, error) {
	defer s.lock(accountID)()

	now := time.Now()
	acc, _, err := s.load(accountID, now)
	if err != nil {
		return domain.Referral{}, err
	}

	ref := domain.Referral{
		ID:         uuid.NewString(),
		Email:      email,
		Status:     domain.ReferralPending,
		SignupDate: now,
	}
	acc.Referrals = append(acc.Referrals, ref)
	acc.UpdatedAt = now

	if err := s.persist(acc); err != nil {
		return domain.Referral{}, err
	}
	return ref, nil
}

// CompleteReferral transitions a referral to completed and pays the fixed
// bonus through the ledger. The transition is one-way: completing an
// already-completed referral fails with ErrReferralAlreadyCompleted and
// awards nothing.
func (s *Service) CompleteReferral(accountID, referralID string) (domain.Referral, error) {
	defer s.lock(accountID)()

	now := time.Now()
	acc, _, err := s.load(accountID, now)
	if err != nil {
		return domain.Referral{}, err
	}

	ref := acc.FindReferral(referralID)
	if ref == nil {
		return domain.Referral{}, domain.ErrReferralNotFound
	}
	if ref.Status == domain.ReferralCompleted {
		return domain.Referral{}, domain.ErrReferralAlreadyCompleted
	}

	ref.Status = domain.ReferralCompleted
	ref.PointsEarned = ReferralBonusPoints
	s.credit(acc, domain.EntryReferralBonus, ReferralBonusPoints,
		"Referral completed: "+ref.Email, now)
	metrics.ReferralsCompleted.Inc()

	s.finalize(acc, now)

	if err := s.persist(acc); err != nil {
		return domain.Referral{}, err
	}
	return *ref, nil
}

// LedgerHistory returns up to limit ledger entries, most recent first.
func (s *Service) LedgerHistory(accountID string, limit int) ([]domain.LedgerEntry, error) {
	acc, err := s.GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	n := len(acc.Ledger)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.LedgerEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, acc.Ledger[i])
	}
	return out, nil
}

// Leaderboard returns up to limit accounts ordered by lifetime points
// descending, with the tier derived per row.
func (s *Service) Leaderboard(limit int) ([]domain.LeaderboardRow, error) {
	summaries, err := s.repo.TopAccounts(limit)
	if err != nil {
		return nil, fmt.Errorf("list accounts by points: %w", err)
	}

	rows := make([]domain.LeaderboardRow, len(summaries))
	for i, sum := range summaries {
		rows[i] = domain.LeaderboardRow{
			AccountID:   sum.AccountID,
			TotalPoints: sum.TotalPoints,
			Tier:        TierFor(s.catalog.Tiers, sum.TotalPoints).ID,
		}
	}
	return rows, nil
}

// TierProgressFor returns the account's progress toward its next tier.
func (s *Service) TierProgressFor(acc *domain.Account) float64 {
	return TierProgress(s.catalog.Tiers, acc.TotalPoints)
}

// PointsToNextTierFor returns lifetime points remaining until the account's
// next tier, 0 at the top.
func (s *Service) PointsToNextTierFor(acc *domain.Account) int64 {
	return PointsToNextTier(s.catalog.Tiers, acc.TotalPoints)
}

// ─── Internals ──────────────────────────────────────────────────────────────

// lock serializes access to a single account. Returns the unlock func.
func (s *Service) lock(accountID string) func() {
	s.mu.Lock()
	m, ok := s.locks[accountID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[accountID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// load fetches the account or materializes a zero-state one. The returned
// record is the caller's to mutate; nothing is visible until persist.
func (s *Service) load(accountID string, now time.Time) (acc *domain.Account, created bool, err error) {
	acc, err = s.repo.GetAccount(accountID)
	if err != nil {
		return nil, false, fmt.Errorf("load account %s: %w", accountID, err)
	}
	if acc == nil {
		acc = domain.NewAccount(accountID, now)
		created = true
	}
	acc.Tier = TierFor(s.catalog.Tiers, acc.TotalPoints).ID
	return acc, created, nil
}

// credit appends a positive bonus entry and bumps both balances.
func (s *Service) credit(acc *domain.Account, kind domain.EntryKind, points int64, desc string, now time.Time) {
	acc.Ledger = append(acc.Ledger, domain.LedgerEntry{
		Timestamp:   now,
		Kind:        kind,
		Points:      points,
		Description: desc,
	})
	acc.TotalPoints += points
	acc.AvailablePoints += points
	metrics.PointsEarned.WithLabelValues(string(kind)).Add(float64(points))
}

// finalize recomputes the derived tier and runs the achievement pass.
// Called after every balance-affecting mutation, before persisting.
func (s *Service) finalize(acc *domain.Account, now time.Time) {
	s.runAchievements(acc, now)
	acc.Tier = TierFor(s.catalog.Tiers, acc.TotalPoints).ID
	acc.UpdatedAt = now
}

func (s *Service) persist(acc *domain.Account) error {
	if err := s.repo.PutAccount(acc); err != nil {
		return fmt.Errorf("persist account %s: %w", acc.ID, err)
	}
	return nil
}
