// Package auth builds and verifies the signed access tokens issued by the
// account service. Tokens are HS256 JWTs carrying the account's identity
// and role; the signing secret, issuer, and audience come from server
// configuration and never vary per call.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Claims is the claim set embedded in every access token: the registered
// claims plus the identity attributes downstream services authorize on.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	FullName string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Options carries the process-wide signing configuration.
type Options struct {
	SecretKey []byte
	Issuer    string
	Audience  string
	Validity  time.Duration
}

// GenerateToken mints a signed access token for the given identity,
// expiring Validity after issue time.
func GenerateToken(userID, fullName, email, role string, opts Options) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    opts.Issuer,
			Audience:  jwt.ClaimStrings{opts.Audience},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(opts.Validity)),
		},
		UserID:   userID,
		FullName: fullName,
		Email:    email,
		Role:     role,
	})

	return token.SignedString(opts.SecretKey)
}

// ParseToken verifies the token's signature, expiry, issuer, and audience
// against opts and returns its claims. Expired tokens yield
// common.ErrTokenExpired; any other verification failure yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, opts Options) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return opts.SecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(opts.Issuer),
		jwt.WithAudience(opts.Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
