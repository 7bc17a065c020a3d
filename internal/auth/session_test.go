package auth

import (
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	token, err := m.Mint("42")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "42" {
		t.Errorf("Verify returned user %q, want %q", userID, "42")
	}
}

func TestSessionWrongSecret(t *testing.T) {
	token, err := NewSessionManager("secret-a", time.Hour).Mint("42")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := NewSessionManager("secret-b", time.Hour).Verify(token); err == nil {
		t.Error("token signed with a different secret should not verify")
	}
}

func TestSessionExpired(t *testing.T) {
	m := NewSessionManager("test-secret", -time.Minute)

	token, err := m.Mint("42")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("expired token should not verify")
	}
}

func TestSessionGarbageToken(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Verify(tok); err == nil {
			t.Errorf("Verify(%q) should fail", tok)
		}
	}
}
