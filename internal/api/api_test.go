package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smilepoint-health/smilepoint/internal/api"
	"github.com/smilepoint-health/smilepoint/internal/app/rewards"
	"github.com/smilepoint-health/smilepoint/internal/infra/memstore"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine := rewards.NewService(memstore.New())
	srv := httptest.NewServer(api.NewServer(engine).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestCORS_ConfiguredOrigins(t *testing.T) {
	engine := rewards.NewService(memstore.New())
	s := api.NewServer(engine)
	s.SetCORSOrigins([]string{"https://app.smilepoint.example"})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	get := func(origin string) string {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
		if err != nil {
			t.Fatal(err)
		}
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.Header.Get("Access-Control-Allow-Origin")
	}

	if got := get("https://app.smilepoint.example"); got != "https://app.smilepoint.example" {
		t.Errorf("allowed origin echoed %q", got)
	}
	if got := get("https://evil.example"); got != "" {
		t.Errorf("unlisted origin got %q, want no allow header", got)
	}
}

func TestCORS_DefaultAllowsAny(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow origin = %q, want *", got)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestGetAccount_ProvisionsFresh(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/rewards/accounts/practice-1")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		ID           string  `json:"id"`
		Tier         string  `json:"tier"`
		TierProgress float64 `json:"tier_progress"`
	}
	decode(t, resp, &body)
	if body.ID != "practice-1" || body.Tier != "bronze" {
		t.Errorf("account = %+v", body)
	}
	if body.TierProgress != 0 {
		t.Errorf("tier_progress = %v, want 0", body.TierProgress)
	}
}

func TestRecordPoints_EndToEnd(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/api/rewards/accounts/acc/points"

	resp := postJSON(t, url, map[string]interface{}{"action": "patient_added"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		TotalPoints int64  `json:"total_points"`
		Tier        string `json:"tier"`
	}
	decode(t, resp, &body)
	// 50 for the action plus the first-patient bonus.
	if body.TotalPoints != 150 {
		t.Errorf("total = %d, want 150", body.TotalPoints)
	}
}

func TestRecordPoints_UnknownAction(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/api/rewards/accounts/acc/points"

	resp := postJSON(t, url, map[string]interface{}{"action": "time_travel"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRecordPoints_NegativePoints(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/api/rewards/accounts/acc/points"

	resp := postJSON(t, url, map[string]interface{}{"action": "patient_added", "points": -10})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRedeem_InsufficientPointsConflict(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/rewards/accounts/acc/redeem",
		map[string]string{"reward_item_id": "team_lunch"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestRedeem_UnknownRewardNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/rewards/accounts/acc/redeem",
		map[string]string{"reward_item_id": "jetpack"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestReferralFlow(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/rewards/accounts/acc/referrals"

	// Missing email rejected.
	resp := postJSON(t, base, map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("create without email: status = %d, want 400", resp.StatusCode)
	}

	resp = postJSON(t, base, map[string]string{"email": "colleague@example.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", resp.StatusCode)
	}
	var ref struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &ref)
	if ref.Status != "pending" || ref.ID == "" {
		t.Fatalf("referral = %+v", ref)
	}

	completeURL := fmt.Sprintf("%s/%s/complete", base, ref.ID)
	resp = postJSON(t, completeURL, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: status = %d, want 200", resp.StatusCode)
	}
	var done struct {
		Status       string `json:"status"`
		PointsEarned int64  `json:"points_earned"`
	}
	decode(t, resp, &done)
	if done.Status != "completed" || done.PointsEarned != rewards.ReferralBonusPoints {
		t.Errorf("completed referral = %+v", done)
	}

	// Second completion conflicts.
	resp = postJSON(t, completeURL, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("re-complete: status = %d, want 409", resp.StatusCode)
	}

	// Unknown referral is 404.
	resp = postJSON(t, base+"/nope/complete", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown referral: status = %d, want 404", resp.StatusCode)
	}
}

func TestLoginEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/rewards/accounts/acc/login", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var streak struct {
		CurrentLogin int `json:"current_login"`
	}
	decode(t, resp, &streak)
	if streak.CurrentLogin != 1 {
		t.Errorf("current_login = %d, want 1", streak.CurrentLogin)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/rewards/catalog")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var cat struct {
		Tiers        []json.RawMessage `json:"tiers"`
		Achievements []json.RawMessage `json:"achievements"`
		Rewards      []json.RawMessage `json:"reward_items"`
	}
	decode(t, resp, &cat)
	if len(cat.Tiers) != 4 {
		t.Errorf("tiers = %d, want 4", len(cat.Tiers))
	}
	if len(cat.Achievements) == 0 || len(cat.Rewards) == 0 {
		t.Errorf("catalog incomplete: %d achievements, %d rewards", len(cat.Achievements), len(cat.Rewards))
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for i, id := range []string{"alpha", "bravo"} {
		resp := postJSON(t, srv.URL+"/api/rewards/accounts/"+id+"/points",
			map[string]interface{}{"action": "appointment_scheduled", "points": (i + 1) * 100})
		resp.Body.Close()
	}

	resp, err := http.Get(srv.URL + "/api/rewards/leaderboard?limit=1")
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Leaderboard []struct {
			AccountID   string `json:"account_id"`
			TotalPoints int64  `json:"total_points"`
			Tier        string `json:"tier"`
		} `json:"leaderboard"`
	}
	decode(t, resp, &body)
	if len(body.Leaderboard) != 1 {
		t.Fatalf("rows = %d, want 1", len(body.Leaderboard))
	}
	if body.Leaderboard[0].AccountID != "bravo" {
		t.Errorf("top = %q, want bravo", body.Leaderboard[0].AccountID)
	}
	if body.Leaderboard[0].Tier != "bronze" {
		t.Errorf("tier = %q, want bronze", body.Leaderboard[0].Tier)
	}
}
