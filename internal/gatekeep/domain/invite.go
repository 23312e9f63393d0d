package domain

import "time"

// Invite is a single-use, time-bounded invitation bound to one email.
// Only the SHA-256 fingerprint of the opaque token is stored; the raw
// token is handed to the caller once at issuance and never again.
type Invite struct {
	ID        string
	TokenHash string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the invite is past its expiry at the given time.
func (i Invite) Expired(now time.Time) bool { return now.After(i.ExpiresAt) }
