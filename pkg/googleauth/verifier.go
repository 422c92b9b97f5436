package googleauth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Payload holds the claims extracted from a verified Google ID token.
type Payload struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// Verifier validates a Google ID-token assertion and extracts its claims.
// It is injected into the auth use case so the login flow stays testable
// with a fake.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Payload, error)
}

// idTokenVerifier validates assertions against Google's public keys and the
// configured OAuth client id (audience).
type idTokenVerifier struct {
	clientID string
}

// NewVerifier returns a Verifier bound to the given OAuth client id.
func NewVerifier(clientID string) Verifier {
	return &idTokenVerifier{clientID: clientID}
}

func (v *idTokenVerifier) Verify(ctx context.Context, credential string) (*Payload, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	return &Payload{
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
	}, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(claims map[string]interface{}, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
