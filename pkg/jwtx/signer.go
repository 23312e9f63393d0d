package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Signer mints tokens with a shared HMAC secret. In production the
// central auth service is the issuer; this signer exists for tests and for
// operational tooling that needs a short-lived admin token.
type HS256Signer struct {
	Secret []byte
	Issuer string
}

// Sign issues a compact JWT for the subject with the given scopes and TTL.
func (s *HS256Signer) Sign(subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   s.Issuer,
		"sub":   subject,
		"scope": JoinScopes(scopes),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})

	return token.SignedString(s.Secret)
}
