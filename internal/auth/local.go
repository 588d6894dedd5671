package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/JeonHyeonsu/gaongill/internal/models"
	"github.com/JeonHyeonsu/gaongill/internal/store"
)

// LocalProvider verifies email/password credentials against the user store
type LocalProvider struct {
	store *store.Store
}

// NewLocalProvider creates a new local authentication provider
func NewLocalProvider(s *store.Store) *LocalProvider {
	return &LocalProvider{store: s}
}

// Authenticate looks up the local account for email and verifies the
// password against the stored salt and hash. An unknown account and a wrong
// password are indistinguishable to the caller; store failures are reported
// separately so they are never mistaken for bad credentials.
func (p *LocalProvider) Authenticate(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	user, err := p.store.GetUserByAuthID(models.LocalAuthID(email))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	if !VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Name returns provider name for logging
func (p *LocalProvider) Name() string {
	return models.ProviderLocal
}
