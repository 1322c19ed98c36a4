package services

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenProvider supplies a bearer token for the speech service. It exists as
// an interface so handlers and pipeline tests can run without a real
// identity provider.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// GoogleTokenProvider exchanges a service-account key for scoped access
// tokens. The underlying token source caches tokens and refreshes them only
// when they expire.
type GoogleTokenProvider struct {
	source oauth2.TokenSource
}

func NewGoogleTokenProvider(credentialsFile string) (*GoogleTokenProvider, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	// TokenSource caches the exchanged token and refreshes it on expiry.
	return &GoogleTokenProvider{source: jwtCfg.TokenSource(context.Background())}, nil
}

func (p *GoogleTokenProvider) Token(ctx context.Context) (string, error) {
	token, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("exchange service account token: %w", err)
	}
	return token.AccessToken, nil
}
