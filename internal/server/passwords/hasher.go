// Package passwords provides the one-way hashing capability used to store
// and verify account credentials.
package passwords

import "golang.org/x/crypto/bcrypt"

// Hasher is the hash/verify capability consumed by the account service.
// Verify must not leak timing information about the secret.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password string, digest string) bool
}

// BcryptHasher implements Hasher with bcrypt, which embeds a per-digest
// salt and compares in constant time.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
