// Package common defines shared constants and sentinel errors used across
// authgate components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("model is empty")

	// Registration errors.
	ErrDuplicateAccount = errors.New("user registered already")

	// Sign-in errors.
	ErrAccountNotFound    = errors.New("user not found")
	ErrInvalidCredentials = errors.New("email/password not valid")
	ErrRoleNotFound       = errors.New("user role not found")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid")
	ErrNotSignedIn         = errors.New("user has not signed in")
)
