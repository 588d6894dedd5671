package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"

	"github.com/JeonHyeonsu/gaongill/internal/auth"
	"github.com/JeonHyeonsu/gaongill/internal/metrics"
	"github.com/JeonHyeonsu/gaongill/internal/middleware"
	"github.com/JeonHyeonsu/gaongill/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	sessionOAuthState    = "oauth_state"
	sessionOAuthProvider = "oauth_provider"
)

// OAuthHandler hands authentication off to an external identity provider
// and resolves the callback to a local user and session.
type OAuthHandler struct {
	provider    *auth.OAuthProvider
	userService *services.UserService
	httpClient  *http.Client // Custom HTTP client for OAuth requests
	metrics     metrics.Recorder
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(
	provider *auth.OAuthProvider,
	userService *services.UserService,
	httpClient *http.Client,
	m metrics.Recorder,
) *OAuthHandler {
	return &OAuthHandler{
		provider:    provider,
		userService: userService,
		httpClient:  httpClient,
		metrics:     m,
	}
}

// LoginWithProvider redirects the user to the identity provider
func (h *OAuthHandler) LoginWithProvider(c *gin.Context) {
	if h.provider == nil {
		// Provider not configured; fall back to the login form
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	// Generate state for CSRF protection
	state, err := generateRandomState(32)
	if err != nil {
		log.Printf("[OAuth] Failed to generate state: %v", err)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionOAuthState, state)
	session.Set(sessionOAuthProvider, h.provider.GetProvider())
	if err := session.Save(); err != nil {
		log.Printf("[OAuth] Failed to save session: %v", err)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.provider.GetAuthURL(state))
}

// OAuthCallback handles the identity provider callback. Every failure path
// redirects back to the login form; on success a session is established and
// the user lands on the home page.
func (h *OAuthHandler) OAuthCallback(c *gin.Context) {
	if h.provider == nil {
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	providerName := h.provider.GetProvider()
	code := c.Query("code")
	state := c.Query("state")

	// Verify state (CSRF protection)
	session := sessions.Default(c)
	savedState := session.Get(sessionOAuthState)
	savedProvider := session.Get(sessionOAuthProvider)

	if savedState == nil || savedProvider == nil ||
		state != savedState.(string) || providerName != savedProvider.(string) {
		log.Printf("[OAuth] State validation failed for provider=%s", providerName)
		h.metrics.RecordOAuthCallback(providerName, false)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	// Use the configured HTTP client for OAuth requests
	ctx := c.Request.Context()
	if h.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)
	}

	token, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		log.Printf("[OAuth] Failed to exchange code: %v", err)
		h.metrics.RecordOAuthCallback(providerName, false)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	userInfo, err := h.provider.GetUserInfo(ctx, token)
	if err != nil {
		log.Printf("[OAuth] Failed to get user info: %v", err)
		h.metrics.RecordOAuthCallback(providerName, false)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	user, err := h.userService.AuthenticateWithOAuth(c.Request.Context(), providerName, userInfo)
	if err != nil {
		log.Printf("[OAuth] Authentication failed: %v", err)
		h.metrics.RecordOAuthCallback(providerName, false)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	// Clear OAuth handshake data and bind the user to the session
	session.Delete(sessionOAuthState)
	session.Delete(sessionOAuthProvider)
	session.Set(middleware.SessionUserID, user.ID)
	session.Set(middleware.SessionUsername, user.DisplayName)

	if err := session.Save(); err != nil {
		log.Printf("[OAuth] Failed to save session: %v", err)
		h.metrics.RecordOAuthCallback(providerName, false)
		c.Redirect(http.StatusFound, "/signin")
		return
	}

	h.metrics.RecordOAuthCallback(providerName, true)
	h.metrics.RecordLogin(providerName, true)
	log.Printf("[OAuth] User authenticated: provider=%s", providerName)
	c.Redirect(http.StatusFound, "/")
}

// generateRandomState generates a random state string for OAuth CSRF protection
func generateRandomState(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
