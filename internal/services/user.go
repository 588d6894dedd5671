package services

import (
	"context"
	"errors"
	"log"

	"github.com/JeonHyeonsu/gaongill/internal/auth"
	"github.com/JeonHyeonsu/gaongill/internal/models"
	"github.com/JeonHyeonsu/gaongill/internal/store"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	store             *store.Store
	localProvider     *auth.LocalProvider
	oauthAutoRegister bool
}

func NewUserService(
	s *store.Store,
	localProvider *auth.LocalProvider,
	oauthAutoRegister bool,
) *UserService {
	return &UserService{
		store:             s,
		localProvider:     localProvider,
		oauthAutoRegister: oauthAutoRegister,
	}
}

// RegisterInput carries the submitted registration form fields. The two
// passwords exist only for the duration of the request and are never
// persisted or logged.
type RegisterInput struct {
	Name           string
	Email          string
	Phone          string
	Job            string
	Password       string
	PasswordRepeat string
}

func (in RegisterInput) formValues() map[string]string {
	return map[string]string{
		"name":            in.Name,
		"email":           in.Email,
		"phone":           in.Phone,
		"job":             in.Job,
		"password":        in.Password,
		"password-repeat": in.PasswordRepeat,
	}
}

// Register runs the registration workflow: validation, password
// confirmation, duplicate check, hash derivation, insert. The returned user
// is ready to bind to a session. The pre-insert duplicate lookup is a fast
// path for a friendly message; the unique index on auth_id decides races.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if violations := signupSchema.Validate(in.formValues()); len(violations) > 0 {
		first := violations[0]
		return nil, &ValidationError{Field: first.Field, Message: first.Message}
	}

	if in.Password != in.PasswordRepeat {
		return nil, ErrPasswordMismatch
	}

	authID := models.LocalAuthID(in.Email)
	_, err := s.store.GetUserByAuthID(authID)
	switch {
	case err == nil:
		return nil, ErrDuplicateAccount
	case !errors.Is(err, store.ErrRecordNotFound):
		log.Printf("[Auth] Duplicate check failed for email=%s: %v", in.Email, err)
		return nil, ErrPersistence
	}

	hash, salt, err := auth.HashPassword(in.Password)
	if err != nil {
		log.Printf("[Auth] Password hashing failed: %v", err)
		return nil, ErrPersistence
	}

	user := &models.User{
		ID:           uuid.New().String(),
		AuthID:       authID,
		Email:        in.Email,
		PasswordHash: hash,
		Salt:         salt,
		Name:         in.Name,
		DisplayName:  in.Name,
		Phone:        in.Phone,
		Job:          in.Job,
	}

	if err := s.store.CreateUser(user); err != nil {
		// ErrDuplicateAuthID here means we lost a check-then-insert race;
		// the caller gets the same generic message as any other store
		// failure.
		log.Printf("[Auth] Failed to create user=%s: %v", in.Email, err)
		return nil, ErrPersistence
	}

	log.Printf("[Auth] New user registered: email=%s", in.Email)
	return user, nil
}

// Authenticate runs the login workflow: validation, then delegated
// credential verification against the local provider.
func (s *UserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*models.User, error) {
	values := map[string]string{"email": email, "password": password}
	if violations := signinSchema.Validate(values); len(violations) > 0 {
		first := violations[0]
		return nil, &ValidationError{Field: first.Field, Message: first.Message}
	}

	user, err := s.localProvider.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("[Auth] Provider failed for email=%s: %v", email, err)
		return nil, ErrAuthInternal
	}

	return user, nil
}

// AuthenticateWithOAuth resolves a federated identity to a local user,
// creating the account on first login when auto-registration is enabled.
func (s *UserService) AuthenticateWithOAuth(
	ctx context.Context,
	provider string,
	info *auth.OAuthUserInfo,
) (*models.User, error) {
	authID := models.FederatedAuthID(provider, info.ProviderUserID)

	user, err := s.store.GetUserByAuthID(authID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		log.Printf("[OAuth] Lookup failed for provider=%s: %v", provider, err)
		return nil, ErrAuthInternal
	}

	if !s.oauthAutoRegister {
		return nil, ErrOAuthAutoRegisterDisabled
	}

	user = &models.User{
		ID:          uuid.New().String(),
		AuthID:      authID,
		Email:       info.Email,
		Name:        info.Name,
		DisplayName: info.Name,
	}

	if err := s.store.CreateUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateAuthID) {
			// Concurrent first login with the same identity; use the row
			// that won.
			return s.store.GetUserByAuthID(authID)
		}
		log.Printf("[OAuth] Failed to create user for provider=%s: %v", provider, err)
		return nil, ErrPersistence
	}

	log.Printf("[OAuth] New user registered: provider=%s", provider)
	return user, nil
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
