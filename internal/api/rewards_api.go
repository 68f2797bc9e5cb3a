package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smilepoint-health/smilepoint/internal/domain"
)

// ─── Account Snapshot ───────────────────────────────────────────────────────

// accountResponse is the account snapshot with derived tier progress.
type accountResponse struct {
	*domain.Account
	TierProgress     float64 `json:"tier_progress"`
	PointsToNextTier int64   `json:"points_to_next_tier"`
}

func (s *Server) snapshot(acc *domain.Account) accountResponse {
	return accountResponse{
		Account:          acc,
		TierProgress:     s.engine.TierProgressFor(acc),
		PointsToNextTier: s.engine.PointsToNextTierFor(acc),
	}
}

// --- GET /api/rewards/accounts/{accountID} ---

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := s.engine.GetAccount(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(acc))
}

// --- GET /api/rewards/accounts/{accountID}/ledger?limit=N ---

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	entries, err := s.engine.LedgerHistory(chi.URLParam(r, "accountID"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// --- GET /api/rewards/accounts/{accountID}/streak ---

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	acc, err := s.engine.GetAccount(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, acc.Streak)
}

// --- POST /api/rewards/accounts/{accountID}/points ---

type recordPointsRequest struct {
	Action string `json:"action"`
	Points int64  `json:"points,omitempty"` // 0 = catalog default
}

func (s *Server) handleRecordPoints(w http.ResponseWriter, r *http.Request) {
	var req recordPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := s.engine.RecordPoints(chi.URLParam(r, "accountID"), domain.ActionKind(req.Action), req.Points)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(acc))
}

// --- POST /api/rewards/accounts/{accountID}/redeem ---

type redeemRequest struct {
	RewardItemID string `json:"reward_item_id"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, item, err := s.engine.Redeem(chi.URLParam(r, "accountID"), req.RewardItemID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account":     s.snapshot(acc),
		"reward_item": item,
	})
}

// --- POST /api/rewards/accounts/{accountID}/login ---

type recordLoginRequest struct {
	At time.Time `json:"at,omitempty"` // zero = now
}

func (s *Server) handleRecordLogin(w http.ResponseWriter, r *http.Request) {
	var req recordLoginRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.At.IsZero() {
		req.At = time.Now()
	}

	streak, err := s.engine.RecordLogin(chi.URLParam(r, "accountID"), req.At)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

// --- POST /api/rewards/accounts/{accountID}/referrals ---

type createReferralRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleCreateReferral(w http.ResponseWriter, r *http.Request) {
	var req createReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	ref, err := s.engine.CreateReferral(chi.URLParam(r, "accountID"), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

// --- POST /api/rewards/accounts/{accountID}/referrals/{referralID}/complete ---

func (s *Server) handleCompleteReferral(w http.ResponseWriter, r *http.Request) {
	ref, err := s.engine.CompleteReferral(
		chi.URLParam(r, "accountID"),
		chi.URLParam(r, "referralID"),
	)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ref)
}

// --- GET /api/rewards/catalog ---

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Catalog())
}

// --- GET /api/rewards/leaderboard?limit=N ---

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	rows, err := s.engine.Leaderboard(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": rows,
	})
}

// ─── Error Mapping ──────────────────────────────────────────────────────────

// writeEngineError maps domain validation errors to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRewardNotFound),
		errors.Is(err, domain.ErrReferralNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientPoints),
		errors.Is(err, domain.ErrReferralAlreadyCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidActionKind),
		errors.Is(err, domain.ErrInvalidPoints):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
