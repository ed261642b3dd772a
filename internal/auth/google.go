package auth

import (
	"context"
	"errors"

	"rollingpaper/internal/model"

	"google.golang.org/api/idtoken"
)

var (
	ErrInvalidGoogleToken = errors.New("invalid google id token")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrMissingClientID    = errors.New("google client id is not configured")
)

// GoogleVerifier turns a Google Sign-In ID token into an Identity.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// Verify refuses to run without a client id: idtoken skips the audience check for an empty one.
func (g *GoogleVerifier) Verify(ctx context.Context, idToken string) (model.Identity, error) {
	if g.clientID == "" {
		return model.Identity{}, ErrMissingClientID
	}

	payload, err := g.validate(ctx, idToken, g.clientID)
	if err != nil || payload == nil || payload.Subject == "" {
		return model.Identity{}, ErrInvalidGoogleToken
	}

	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if !emailVerified {
		return model.Identity{}, ErrEmailNotVerified
	}

	return model.Identity{
		UID:         payload.Subject,
		Email:       stringClaim(payload.Claims, "email"),
		DisplayName: stringClaim(payload.Claims, "name"),
		PhotoURL:    stringClaim(payload.Claims, "picture"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}
