package domain

import "time"

// Status of a whitelist entry. An entry is created pending, moves to
// approved or rejected exactly once per review, and a rejected entry may
// be reset to pending by resubmission.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// WhitelistEntry is the per-email access request record. Exactly one entry
// exists per normalized email (unique index in the store).
type WhitelistEntry struct {
	ID          string
	Email       string // lower-cased, trimmed
	Status      Status
	Reason      string // requester-supplied, may be empty
	RequestedAt time.Time
	ReviewedAt  *time.Time // nil while pending
	ReviewedBy  string     // admin subject, empty while pending
	Notes       string     // admin-supplied at review time, may be empty
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Pending reports whether the entry is awaiting review.
func (e WhitelistEntry) Pending() bool { return e.Status == StatusPending }
