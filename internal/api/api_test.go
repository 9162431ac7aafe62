package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spendquest-app/spendquest/internal/app/progression"
	"github.com/spendquest-app/spendquest/internal/domain"
	"github.com/spendquest-app/spendquest/internal/infra/sqlite"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := progression.DefaultConfig()
	// Deterministic, inert challenge so XP assertions hold.
	cfg.Challenges = []domain.ChallengeTemplate{{
		ID:           "log_streak_long",
		Description:  "Log expenses for 99 days in a row",
		Kind:         domain.ChallengeStreakLength,
		DaysRequired: 99,
		RewardXP:     80,
	}}

	srv := NewServer(progression.NewEngine(db, cfg), "test")
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s response: %v\nbody: %s", method, path, err, w.Body.String())
		}
	}
	return w, decoded
}

func TestAPI_Health(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body)
	}
}

func TestAPI_Version(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "GET", "/api/version", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["version"] != "test" {
		t.Errorf("expected version test, got %v", body)
	}
}

func TestAPI_RecordExpense(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "POST", "/api/users/u1/expenses", `{"category":"Coffee","amount":3.5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body["xp_awarded"] != float64(10) {
		t.Errorf("expected 10 XP awarded, got %v", body["xp_awarded"])
	}
	if body["new_level"] != float64(1) {
		t.Errorf("expected level 1, got %v", body["new_level"])
	}
}

func TestAPI_RecordExpense_BadRequest(t *testing.T) {
	h := newTestServer(t)

	w, _ := doJSON(t, h, "POST", "/api/users/u1/expenses", `{"category":"Coffee","amount":-5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative amount: expected 400, got %d", w.Code)
	}

	w, _ = doJSON(t, h, "POST", "/api/users/u1/expenses", `{"amount":5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing category: expected 400, got %d", w.Code)
	}

	w, _ = doJSON(t, h, "POST", "/api/users/u1/expenses", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", w.Code)
	}
}

func TestAPI_RecordReportView(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "POST", "/api/users/u1/reports", `{"kind":"monthly"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body["xp_awarded"] != float64(15) {
		t.Errorf("expected 15 XP awarded, got %v", body["xp_awarded"])
	}

	w, _ = doJSON(t, h, "POST", "/api/users/u1/reports", `{"kind":"horoscope"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown kind: expected 400, got %d", w.Code)
	}
}

func TestAPI_MonthOutcome(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "POST", "/api/users/u1/month-outcome", `{"under_budget":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	// 25 for the month plus 50 for the first budget_hero tier.
	if body["xp_awarded"] != float64(75) {
		t.Errorf("expected 75 XP awarded, got %v", body["xp_awarded"])
	}
}

func TestAPI_FreezeRefusedForNewUser(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "POST", "/api/users/u1/freezes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("refusal is not an error: expected 200, got %d", w.Code)
	}
	if body["purchased"] != false {
		t.Errorf("new user cannot afford a freeze, got %v", body)
	}
}

func TestAPI_Stats(t *testing.T) {
	h := newTestServer(t)

	if w, _ := doJSON(t, h, "POST", "/api/users/u1/expenses", `{"category":"Coffee","amount":3.5}`); w.Code != http.StatusOK {
		t.Fatalf("setup expense: %d", w.Code)
	}

	w, body := doJSON(t, h, "GET", "/api/users/u1/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["xp"] != float64(10) {
		t.Errorf("expected xp 10, got %v", body["xp"])
	}
	if body["current_streak"] != float64(1) {
		t.Errorf("expected streak 1, got %v", body["current_streak"])
	}
	if body["current_challenge"] == nil {
		t.Error("expected an active challenge in stats")
	}
}

func TestAPI_Achievements(t *testing.T) {
	h := newTestServer(t)

	w, body := doJSON(t, h, "GET", "/api/users/u1/achievements", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	views, ok := body["achievements"].([]interface{})
	if !ok || len(views) != 5 {
		t.Errorf("expected 5 achievements, got %v", body["achievements"])
	}
}

func TestAPI_CORSPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/users/u1/stats", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("preflight: expected 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
