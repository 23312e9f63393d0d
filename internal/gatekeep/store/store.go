package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// WhitelistFilter narrows List/Count to a single status. The zero value
// means no filter.
type WhitelistFilter struct {
	Status domain.Status
}

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Whitelist() Whitelist
	Invites() Invites
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Whitelist interface {
	// CreateEntry inserts a new entry. A duplicate normalized email trips
	// the unique index and surfaces as ErrAlreadyExists.
	CreateEntry(ctx context.Context, e domain.WhitelistEntry) error

	// GetEntryByID returns an entry by id.
	GetEntryByID(ctx context.Context, id string) (domain.WhitelistEntry, error)

	// GetEntryByEmail returns the entry for a normalized email.
	GetEntryByEmail(ctx context.Context, email string) (domain.WhitelistEntry, error)

	// ListEntries returns entries ordered by requested_at descending.
	ListEntries(ctx context.Context, filter WhitelistFilter, limit, offset int) ([]domain.WhitelistEntry, error)

	// CountEntries returns the total matching the filter, for pagination.
	CountEntries(ctx context.Context, filter WhitelistFilter) (int, error)

	// SetReview transitions a pending entry to approved/rejected, stamping
	// reviewed_at, reviewed_by and notes.
	SetReview(ctx context.Context, id string, status domain.Status, reviewedBy, notes string, reviewedAt time.Time) error

	// ResetToPending reverts a rejected entry to pending: clears the review
	// fields and refreshes requested_at and reason.
	ResetToPending(ctx context.Context, id, reason string, requestedAt time.Time) error

	// DeleteEntry hard-deletes regardless of status.
	DeleteEntry(ctx context.Context, id string) error
}

type Invites interface {
	// CreateInvite writes a new invite (token_hash is the sha256 of the opaque token).
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByTokenHash returns an invite by hash regardless of expiry;
	// the service decides what expiry means (and cleans up).
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// DeleteInvite removes a single invite (single-use consumption).
	DeleteInvite(ctx context.Context, id string) error

	// DeleteInvitesByEmail removes all invites bound to an email.
	DeleteInvitesByEmail(ctx context.Context, email string) error

	// DeleteExpiredInvites is housekeeping.
	DeleteExpiredInvites(ctx context.Context) error
}

type Users interface {
	// GetUserByEmail returns a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Duplicate email surfaces as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}
