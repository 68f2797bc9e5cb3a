package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. All are validation
// failures: an operation that returns one has made no observable mutation.

var (
	// Redemption errors
	ErrRewardNotFound     = errors.New("reward item not found in catalog")
	ErrInsufficientPoints = errors.New("insufficient available points for redemption")

	// Referral errors
	ErrReferralNotFound         = errors.New("referral not found")
	ErrReferralAlreadyCompleted = errors.New("referral already completed")

	// Points errors
	ErrInvalidActionKind = errors.New("unrecognized point-earning action")
	ErrInvalidPoints     = errors.New("points override must be positive")
)
