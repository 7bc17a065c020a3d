package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fprep/internal/auth"
	"fprep/internal/mealplan"
	"fprep/internal/user"
)

// UserStore resolves verified identities to accounts.
type UserStore interface {
	FindOrCreate(ctx context.Context, email, googleID, name string) (*user.User, error)
}

// PlanLister reads a user's saved plans.
type PlanLister interface {
	ListByUser(ctx context.Context, userID string) ([]mealplan.Record, error)
}

// TokenVerifier checks a Google ID token and extracts the identity.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*auth.Identity, error)
}

// Handler serves the JSON API for sign-in and plan history.
type Handler struct {
	verifier TokenVerifier
	sessions *auth.SessionManager
	users    UserStore
	plans    PlanLister
}

// NewHandler creates a Handler.
func NewHandler(verifier TokenVerifier, sessions *auth.SessionManager, users UserStore, plans PlanLister) *Handler {
	return &Handler{verifier: verifier, sessions: sessions, users: users, plans: plans}
}

// RegisterHandlers registers the API endpoints on mux.
func (h *Handler) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/auth/google", h.handleGoogleAuth)
	mux.HandleFunc("/plans", h.handleListPlans)
}

type authRequest struct {
	IDToken string `json:"id_token"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

type userInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) handleGoogleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "id_token is required")
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		log.Printf("Sign-in rejected: %v", err)
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	u, err := h.users.FindOrCreate(r.Context(), identity.Email, identity.GoogleID, identity.Name)
	if err != nil {
		log.Printf("Error resolving user %s: %v", identity.Email, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.sessions.Mint(strconv.FormatInt(u.ID, 10))
	if err != nil {
		log.Printf("Error minting session for user %d: %v", u.ID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userInfo{ID: u.ID, Email: u.Email, Name: u.Name},
	})
}

type planInfo struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Days                int    `json:"days"`
	ExistingIngredients string `json:"existing_ingredients,omitempty"`
	PlanText            string `json:"plan_text"`
	TotalTime           string `json:"total_time,omitempty"`
	Instructions        string `json:"instructions,omitempty"`
	CreatedAt           string `json:"created_at"`
}

func (h *Handler) handleListPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plans, err := h.plans.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing plans for user %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filtered := filter.Apply(plans)
	out := make([]planInfo, 0, len(filtered))
	for _, p := range filtered {
		out = append(out, planInfo{
			ID:                  p.ID,
			Name:                p.Name,
			Days:                p.Days,
			ExistingIngredients: p.ExistingIngredients,
			PlanText:            p.PlanText,
			TotalTime:           p.TotalTime,
			Instructions:        p.Instructions,
			CreatedAt:           p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return "", false
	}
	userID, err := h.sessions.Verify(tokenStr)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return "", false
	}
	return userID, true
}

func parseFilter(r *http.Request) (mealplan.Filter, error) {
	f := mealplan.Filter{Search: r.URL.Query().Get("search")}

	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", v)
		}
		f.StartDate = &t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", v)
		}
		f.EndDate = &t
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
