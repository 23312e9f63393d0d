package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a raw compact JWT and extracts its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256Verifier verifies tokens signed with a shared HMAC secret. The
// admin-facing endpoints trust tokens minted by the central auth service,
// which shares the secret with us.
type HS256Verifier struct {
	Secret []byte
	Issuer string // expected iss claim, empty disables the check
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	return claimsFromMap(mapClaims)
}

func claimsFromMap(m jwt.MapClaims) (Claims, error) {
	var c Claims

	if iss, err := m.GetIssuer(); err == nil {
		c.Issuer = iss
	}

	sub, err := m.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, ErrTokenInvalid
	}
	c.Subject = sub

	if iat, err := m.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	if exp, err := m.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}

	if scope, ok := m["scope"].(string); ok {
		c.Scopes = ParseScopes(scope)
	}

	return c, nil
}
