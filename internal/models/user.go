package models

import (
	"strings"
	"time"
)

// Auth provider prefixes used to build AuthID values
const (
	ProviderLocal    = "local"
	ProviderFacebook = "facebook"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	AuthID       string `gorm:"uniqueIndex;not null"` // "<provider>:<local-identifier>"
	Email        string `gorm:"index"`
	PasswordHash string // OAuth-only users have empty password
	Salt         string // Per-user random salt for the password hash
	Name         string
	DisplayName  string
	Phone        string
	Job          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocalAuthID builds the AuthID for a local (email/password) account
func LocalAuthID(email string) string {
	return ProviderLocal + ":" + email
}

// FederatedAuthID builds the AuthID for an external identity provider account
func FederatedAuthID(provider, externalID string) string {
	return provider + ":" + externalID
}

// Provider returns the auth provider portion of the AuthID
func (u *User) Provider() string {
	if i := strings.IndexByte(u.AuthID, ':'); i >= 0 {
		return u.AuthID[:i]
	}
	return ""
}

// IsLocal returns true if the user registered with email and password
func (u *User) IsLocal() bool {
	return u.Provider() == ProviderLocal
}
