// Package memstore provides an in-memory AccountRepository. It backs tests
// and single-process development runs; production uses the sqlite store.
package memstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/smilepoint-health/smilepoint/internal/domain"
)

var _ domain.AccountRepository = (*Store)(nil)

// Store holds full account records keyed by ID. Records are deep-copied on
// the way in and out so callers can mutate freely.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{accounts: make(map[string]*domain.Account)}
}

// GetAccount returns a copy of the stored account, or nil if absent.
func (s *Store) GetAccount(id string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return copyAccount(acc)
}

// PutAccount stores a copy of the account, replacing any prior state.
func (s *Store) PutAccount(a *domain.Account) error {
	cp, err := copyAccount(a)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.accounts[a.ID] = cp
	s.mu.Unlock()
	return nil
}

// TopAccounts returns up to limit summaries ordered by total points
// descending, ties broken by account ID for a stable order.
func (s *Store) TopAccounts(limit int) ([]domain.AccountSummary, error) {
	s.mu.RLock()
	summaries := make([]domain.AccountSummary, 0, len(s.accounts))
	for _, acc := range s.accounts {
		summaries = append(summaries, domain.AccountSummary{
			AccountID:   acc.ID,
			TotalPoints: acc.TotalPoints,
		})
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalPoints != summaries[j].TotalPoints {
			return summaries[i].TotalPoints > summaries[j].TotalPoints
		}
		return summaries[i].AccountID < summaries[j].AccountID
	})

	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// copyAccount deep-copies via JSON — the account shape is plain data.
func copyAccount(a *domain.Account) (*domain.Account, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("copy account: %w", err)
	}
	var cp domain.Account
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("copy account: %w", err)
	}
	return &cp, nil
}
