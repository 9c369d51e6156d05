// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProfile is the identity Google vouches for after a code exchange.
type GoogleProfile struct {
	Subject    string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// GoogleProvider runs the authorization-code flow with PKCE.
type GoogleProvider interface {
	// AuthCodeURL is the consent page URL for state, challenged with verifier.
	AuthCodeURL(state, verifier string) string

	// Exchange trades code for a token and fetches the user profile.
	Exchange(ctx context.Context, code, verifier string) (*GoogleProfile, error)
}

// GoogleOAuth implements [GoogleProvider] with golang.org/x/oauth2.
type GoogleOAuth struct {
	config      *oauth2.Config
	userInfoURL string
}

// GoogleOption customizes a [GoogleOAuth].
type GoogleOption func(*GoogleOAuth)

// WithGoogleEndpoints points the provider at different token and userinfo URLs.
func WithGoogleEndpoints(endpoint oauth2.Endpoint, userInfoURL string) GoogleOption {
	return func(g *GoogleOAuth) {
		g.config.Endpoint = endpoint
		g.userInfoURL = userInfoURL
	}
}

// NewGoogleOAuth creates a provider for the given OAuth client.
func NewGoogleOAuth(clientID, clientSecret, redirectURL string, opts ...GoogleOption) *GoogleOAuth {
	provider := &GoogleOAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
	for _, opt := range opts {
		opt(provider)
	}
	return provider
}

func (g *GoogleOAuth) AuthCodeURL(state, verifier string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline, oauth2.S256ChallengeOption(verifier))
}

func (g *GoogleOAuth) Exchange(ctx context.Context, code, verifier string) (*GoogleProfile, error) {
	token, err := g.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("google_code_exchange_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google_userinfo_request_failed: %w", err)
	}

	response, err := g.config.Client(ctx, token).Do(request)
	if err != nil {
		return nil, fmt.Errorf("google_userinfo_request_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google_userinfo_status: %d", response.StatusCode)
	}

	profile := &GoogleProfile{}
	if err := json.NewDecoder(response.Body).Decode(profile); err != nil {
		return nil, fmt.Errorf("google_userinfo_decode_failed: %w", err)
	}
	if profile.Email == "" {
		return nil, errors.New("google_userinfo_missing_email")
	}
	return profile, nil
}
