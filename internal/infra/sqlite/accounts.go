package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/smilepoint-health/smilepoint/internal/domain"
)

// ─── Account Repository ─────────────────────────────────────────────────────

var _ domain.AccountRepository = (*DB)(nil)

// GetAccount retrieves a full account record by ID, or nil if absent.
func (d *DB) GetAccount(id string) (*domain.Account, error) {
	var raw string
	err := d.db.QueryRow(`SELECT snapshot FROM accounts WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error — the engine auto-provisions
	}
	if err != nil {
		return nil, err
	}

	var acc domain.Account
	if err := json.Unmarshal([]byte(raw), &acc); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", id, err)
	}
	return &acc, nil
}

// PutAccount inserts or replaces the full account record.
func (d *DB) PutAccount(a *domain.Account) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode account %s: %w", a.ID, err)
	}

	_, err = d.db.Exec(
		`INSERT INTO accounts (id, total_points, available_points, tier, updated_at, snapshot)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			total_points=excluded.total_points,
			available_points=excluded.available_points,
			tier=excluded.tier,
			updated_at=excluded.updated_at,
			snapshot=excluded.snapshot`,
		a.ID, a.TotalPoints, a.AvailablePoints, a.Tier, a.UpdatedAt.Unix(), string(raw),
	)
	return err
}

// TopAccounts returns up to limit summaries ordered by total points
// descending. Served from the total_points index without decoding snapshots.
func (d *DB) TopAccounts(limit int) ([]domain.AccountSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(
		`SELECT id, total_points FROM accounts
		 ORDER BY total_points DESC, id ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.AccountSummary
	for rows.Next() {
		var s domain.AccountSummary
		if err := rows.Scan(&s.AccountID, &s.TotalPoints); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// AccountCount returns the number of stored accounts.
func (d *DB) AccountCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}
