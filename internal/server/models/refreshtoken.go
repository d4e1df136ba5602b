package models

import "time"

// RefreshToken is the single live opaque token for an account. The token
// value is replaced in place on every sign-in and refresh, so the previous
// token stops validating the moment a new one is issued.
type RefreshToken struct {
	AccountID string
	Token     string
	UpdatedAt time.Time
}
