package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/dooferio/authkit/pkg/store"
)

// GoogleOAuthConfig holds configuration for the Google OAuth provider.
type GoogleOAuthConfig struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
}

type googleAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleAdapter creates a Google OAuth provider adapter.
func NewGoogleAdapter(cfg GoogleOAuthConfig) ProviderAdapter {
	return &googleAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *googleAdapter) Provider() store.Provider {
	return store.ProviderGoogle
}

func (a *googleAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ResolveProfile exchanges the authorization code and fetches the userinfo
// profile from Google.
func (a *googleAdapter) ResolveProfile(ctx context.Context, code string) (OAuthPayload, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return OAuthPayload{}, ErrInvalidCode
	}

	u, err := a.fetchGoogleUser(ctx, tok.AccessToken)
	if err != nil {
		return OAuthPayload{}, fmt.Errorf("fetch google user: %w", err)
	}
	if u.ID == "" {
		return OAuthPayload{}, ErrNoProviderID
	}
	if u.Email == "" {
		return OAuthPayload{}, ErrNoPrimaryEmail
	}

	return OAuthPayload{
		Provider:   store.ProviderGoogle,
		ProviderID: u.ID,
		Email:      u.Email,
		FirstName:  u.GivenName,
		LastName:   u.FamilyName,
		Picture:    u.Picture,
	}, nil
}

type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (a *googleAdapter) fetchGoogleUser(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var user googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Compile-time interface assertion
var _ ProviderAdapter = (*googleAdapter)(nil)
