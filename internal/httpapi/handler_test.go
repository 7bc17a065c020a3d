package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fprep/internal/auth"
	"fprep/internal/mealplan"
	"fprep/internal/user"
)

type stubVerifier struct {
	identity *auth.Identity
	err      error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	return s.identity, s.err
}

type stubUsers struct {
	user *user.User
	err  error
}

func (s *stubUsers) FindOrCreate(_ context.Context, _, _, _ string) (*user.User, error) {
	return s.user, s.err
}

type stubPlans struct {
	plans  []mealplan.Record
	err    error
	userID string
}

func (s *stubPlans) ListByUser(_ context.Context, userID string) ([]mealplan.Record, error) {
	s.userID = userID
	return s.plans, s.err
}

func newTestHandler(verifier *stubVerifier, users *stubUsers, plans *stubPlans) (*Handler, *auth.SessionManager) {
	sessions := auth.NewSessionManager("test-secret", time.Hour)
	return NewHandler(verifier, sessions, users, plans), sessions
}

func TestGoogleAuthSuccess(t *testing.T) {
	verifier := &stubVerifier{identity: &auth.Identity{GoogleID: "g-1", Email: "a@b.com", Name: "Ada"}}
	users := &stubUsers{user: &user.User{ID: 7, Email: "a@b.com", Name: "Ada"}}
	h, sessions := newTestHandler(verifier, users, &stubPlans{})

	req := httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"id_token":"tok"}`))
	w := httptest.NewRecorder()
	h.handleGoogleAuth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp authResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.User.ID != 7 || resp.User.Email != "a@b.com" {
		t.Errorf("unexpected user: %+v", resp.User)
	}

	userID, err := sessions.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != "7" {
		t.Errorf("token subject = %q, want %q", userID, "7")
	}
}

func TestGoogleAuthRejectsBadToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("expired")}
	h, _ := newTestHandler(verifier, &stubUsers{}, &stubPlans{})

	req := httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"id_token":"bad"}`))
	w := httptest.NewRecorder()
	h.handleGoogleAuth(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGoogleAuthValidation(t *testing.T) {
	h, _ := newTestHandler(&stubVerifier{}, &stubUsers{}, &stubPlans{})

	req := httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.handleGoogleAuth(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty id_token status = %d, want 400", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	w = httptest.NewRecorder()
	h.handleGoogleAuth(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", w.Code)
	}
}

func TestListPlansRequiresAuth(t *testing.T) {
	h, _ := newTestHandler(&stubVerifier{}, &stubUsers{}, &stubPlans{})

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	w := httptest.NewRecorder()
	h.handleListPlans(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/plans", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	h.handleListPlans(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}

func TestListPlansFiltered(t *testing.T) {
	plans := &stubPlans{plans: []mealplan.Record{
		{ID: 1, Name: "Week 1", Days: 5, CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Week 2", Days: 3, CreatedAt: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Holiday", Days: 7, CreatedAt: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)},
	}}
	h, sessions := newTestHandler(&stubVerifier{}, &stubUsers{}, plans)

	token, err := sessions.Mint("7")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/plans?search=week&start=2026-03-05", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.handleListPlans(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if plans.userID != "7" {
		t.Errorf("listed plans for user %q, want %q", plans.userID, "7")
	}

	var out []planInfo
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Week 2" {
		t.Errorf("filtered plans = %+v, want only Week 2", out)
	}
}

func TestListPlansBadDate(t *testing.T) {
	h, sessions := newTestHandler(&stubVerifier{}, &stubUsers{}, &stubPlans{})
	token, _ := sessions.Mint("7")

	req := httptest.NewRequest(http.MethodGet, "/plans?start=03-05-2026", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.handleListPlans(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
