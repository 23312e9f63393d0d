package jwtx

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTokenExpired = errors.New("jwtx: token expired")
	ErrTokenInvalid = errors.New("jwtx: token invalid")
)

// Claims is the validated view of an access token the service cares about.
// Scopes are carried in the standard space-delimited "scope" claim.
type Claims struct {
	Issuer    string
	Subject   string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ValidateExpiry checks the token has an expiry and that it is in the future.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt.IsZero() || time.Now().After(c.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// HasScope reports whether the claims carry the given scope.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// ParseScopes splits a space-delimited scope claim into individual scopes.
func ParseScopes(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

// JoinScopes renders scopes as a space-delimited scope claim.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}
