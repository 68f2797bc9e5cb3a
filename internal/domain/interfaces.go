package domain

// ─── Repository Interface ───────────────────────────────────────────────────
// The engine is storage-agnostic. Infrastructure implements this boundary;
// the application layer depends on it.

// AccountRepository persists full account records. Implementations must
// return a record the caller can mutate freely without affecting stored
// state until PutAccount is called.
type AccountRepository interface {
	// GetAccount returns the stored account, or nil if the ID is unknown.
	// Absence is not an error: the engine materializes a fresh account.
	GetAccount(id string) (*Account, error)

	// PutAccount stores the full account record, replacing any prior state.
	PutAccount(a *Account) error

	// TopAccounts returns up to limit summaries ordered by total points
	// descending. Backed by an index, not a full scan.
	TopAccounts(limit int) ([]AccountSummary, error)
}
