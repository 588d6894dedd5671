package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// OAuthProviderConfig contains configuration for an OAuth provider
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// OAuthUserInfo contains user information from an OAuth provider
type OAuthUserInfo struct {
	ProviderUserID string // Provider's user ID
	Name           string // User display name
	Email          string // User email (may be empty if not granted)
}

// OAuthProvider handles OAuth authentication against a single provider
type OAuthProvider struct {
	config   *oauth2.Config
	provider string
}

// NewFacebookProvider creates a new Facebook OAuth provider
func NewFacebookProvider(cfg OAuthProviderConfig) *OAuthProvider {
	return &OAuthProvider{
		provider: "facebook",
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     facebook.Endpoint,
		},
	}
}

// GetAuthURL returns the OAuth authorization URL
func (p *OAuthProvider) GetAuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token
func (p *OAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// GetUserInfo retrieves user information from the OAuth provider
func (p *OAuthProvider) GetUserInfo(
	ctx context.Context,
	token *oauth2.Token,
) (*OAuthUserInfo, error) {
	switch p.provider {
	case "facebook":
		return p.getFacebookUserInfo(ctx, token)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", p.provider)
	}
}

// GetProvider returns the provider name
func (p *OAuthProvider) GetProvider() string {
	return p.provider
}

// GetDisplayName returns the human-readable provider name
func (p *OAuthProvider) GetDisplayName() string {
	switch p.provider {
	case "facebook":
		return "Facebook"
	default:
		if len(p.provider) == 0 {
			return ""
		}
		firstChar := p.provider[0]
		if firstChar >= 'a' && firstChar <= 'z' {
			firstChar -= 32
		}
		return string(firstChar) + p.provider[1:]
	}
}

// Facebook user info structure
type facebookUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// getFacebookUserInfo retrieves user info from the Graph API
func (p *OAuthProvider) getFacebookUserInfo(
	ctx context.Context,
	token *oauth2.Token,
) (*OAuthUserInfo, error) {
	client := p.config.Client(ctx, token)

	apiURL := "https://graph.facebook.com/v19.0/me?fields=" + url.QueryEscape("id,name,email")
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("facebook API error: %s - %s", resp.Status, string(body))
	}

	var user facebookUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	if user.ID == "" {
		return nil, fmt.Errorf("facebook response has no user id")
	}

	return &OAuthUserInfo{
		ProviderUserID: user.ID,
		Name:           user.Name,
		Email:          user.Email,
	}, nil
}
