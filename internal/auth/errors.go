package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("not registered or wrong password")
)
