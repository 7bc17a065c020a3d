// Package auth verifies Google identity tokens and issues session tokens.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the verified subject of a Google ID token.
type Identity struct {
	GoogleID string
	Email    string
	Name     string
}

// GoogleVerifier validates Google ID tokens against a configured client ID.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier creates a verifier for the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify checks the token's signature, issuer, expiry and audience, and
// returns the identity it asserts.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return &Identity{
		GoogleID: payload.Subject,
		Email:    email,
		Name:     name,
	}, nil
}
