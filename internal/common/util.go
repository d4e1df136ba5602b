package common

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandBase64String returns a base64url string built from size bytes of
// crypto/rand entropy. It backs the opaque refresh tokens, so size should
// stay at or above 64.
//
// Example:
//
//	s, err := MakeRandBase64String(64)
func MakeRandBase64String(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
