package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	gatemail "github.com/aussiebroadwan/gatekeep/internal/gatekeep/mail"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
	"github.com/aussiebroadwan/gatekeep/pkg/idx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrReasonTooLong   = errors.New("reason exceeds maximum length")
	ErrNotesTooLong    = errors.New("notes exceed maximum length")
	ErrInvalidAction   = errors.New("invalid review action")
	ErrInvalidStatus   = errors.New("invalid status filter")
	ErrAlreadyPending  = errors.New("request already pending review")
	ErrAlreadyApproved = errors.New("email already approved")
	ErrAlreadyReviewed = errors.New("request already reviewed")
	ErrEntryNotFound   = errors.New("whitelist request not found")
)

const (
	MaxReasonLength = 500
	MaxNotesLength  = 1000

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// WhitelistService owns the per-email access request state machine:
// create→pending, pending→approved|rejected (admin review), and
// rejected→pending (resubmission). Approved is terminal.
type WhitelistService struct {
	Store   store.Store
	Invites *InviteService
	Mailer  gatemail.Mailer

	AppName   string // display name used in the invitation email
	PublicURL string // base URL for the activation link
}

// Page is one page of whitelist entries plus pagination metadata.
type Page struct {
	Entries  []domain.WhitelistEntry
	Total    int
	Page     int
	PageSize int
}

// ReviewResult is the outcome of a review. InvitationSent reports whether
// the best-effort invitation email went out; it never affects the review
// itself.
type ReviewResult struct {
	Entry          domain.WhitelistEntry
	InvitationSent bool
}

// NormalizeEmail lower-cases and trims an email address and validates its
// syntax. All store lookups and writes go through the normalized form.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return email, nil
}

// Submit records an access request for an email. A new email creates a
// pending entry; a rejected entry is reset to pending as a resubmission of
// the same row; pending and approved entries conflict without mutation.
func (s *WhitelistService) Submit(
	ctx context.Context,
	email string,
	reason string,
) (domain.WhitelistEntry, error) {
	log := slogx.FromContext(ctx)

	email, err := NormalizeEmail(email)
	if err != nil {
		return domain.WhitelistEntry{}, err
	}
	if len(reason) > MaxReasonLength {
		return domain.WhitelistEntry{}, ErrReasonTooLong
	}

	now := time.Now().UTC()
	var entry domain.WhitelistEntry

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Whitelist().GetEntryByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			entry = domain.WhitelistEntry{
				ID:          idx.New().String(),
				Email:       email,
				Status:      domain.StatusPending,
				Reason:      reason,
				RequestedAt: now,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			return tx.Whitelist().CreateEntry(ctx, entry)
		}
		if err != nil {
			return err
		}

		switch existing.Status {
		case domain.StatusApproved:
			return ErrAlreadyApproved
		case domain.StatusPending:
			return ErrAlreadyPending
		case domain.StatusRejected:
			if err := tx.Whitelist().ResetToPending(ctx, existing.ID, reason, now); err != nil {
				return err
			}
			entry, err = tx.Whitelist().GetEntryByID(ctx, existing.ID)
			return err
		}
		return fmt.Errorf("unexpected whitelist status %q", existing.Status)
	})

	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost the insert race to a concurrent submit. Report the state of
		// the winning row instead of a storage error.
		existing, gerr := s.Store.Whitelist().GetEntryByEmail(ctx, email)
		if gerr == nil && existing.Status == domain.StatusApproved {
			return domain.WhitelistEntry{}, ErrAlreadyApproved
		}
		return domain.WhitelistEntry{}, ErrAlreadyPending
	}
	if err != nil {
		return domain.WhitelistEntry{}, err
	}

	log.Info("whitelist request submitted",
		slog.String("entry_id", entry.ID),
		slog.String("email", entry.Email),
	)

	return entry, nil
}

// List returns entries ordered by requested_at descending. The page size is
// clamped to MaxPageSize regardless of what the caller asks for.
func (s *WhitelistService) List(
	ctx context.Context,
	status domain.Status,
	page, pageSize int,
) (Page, error) {
	if status != "" && !status.Valid() {
		return Page{}, ErrInvalidStatus
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filter := store.WhitelistFilter{Status: status}

	total, err := s.Store.Whitelist().CountEntries(ctx, filter)
	if err != nil {
		return Page{}, err
	}

	entries, err := s.Store.Whitelist().ListEntries(ctx, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Review transitions a pending entry to approved or rejected. On approval
// with sendInvitation, an invitation token is issued and emailed
// best-effort after the review is persisted; a dispatch failure is logged
// and reported via ReviewResult.InvitationSent, never as an error.
func (s *WhitelistService) Review(
	ctx context.Context,
	requestID string,
	action domain.Status,
	reviewerID string,
	notes string,
	sendInvitation bool,
) (ReviewResult, error) {
	log := slogx.FromContext(ctx)

	if action != domain.StatusApproved && action != domain.StatusRejected {
		return ReviewResult{}, ErrInvalidAction
	}
	if len(notes) > MaxNotesLength {
		return ReviewResult{}, ErrNotesTooLong
	}

	now := time.Now().UTC()
	var entry domain.WhitelistEntry

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Whitelist().GetEntryByID(ctx, requestID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrEntryNotFound
		}
		if err != nil {
			return err
		}

		if !existing.Pending() {
			return ErrAlreadyReviewed
		}

		if err := tx.Whitelist().SetReview(ctx, requestID, action, reviewerID, notes, now); err != nil {
			// The row moved under us between the read and the update.
			if errors.Is(err, store.ErrNotFound) {
				return ErrAlreadyReviewed
			}
			return err
		}

		entry, err = tx.Whitelist().GetEntryByID(ctx, requestID)
		return err
	})
	if err != nil {
		return ReviewResult{}, err
	}

	log.Info("whitelist request reviewed",
		slog.String("entry_id", entry.ID),
		slog.String("email", entry.Email),
		slog.String("action", string(action)),
		slog.String("reviewed_by", reviewerID),
	)

	result := ReviewResult{Entry: entry}

	// The review is authoritative once persisted; everything below is
	// best-effort and must not fail the operation.
	if action == domain.StatusApproved && sendInvitation {
		result.InvitationSent = s.sendInvitation(ctx, entry.Email)
	}

	return result, nil
}

// sendInvitation issues a token and emails it. Returns whether the email
// was dispatched.
func (s *WhitelistService) sendInvitation(ctx context.Context, email string) bool {
	log := slogx.FromContext(ctx)

	token, err := s.Invites.Issue(ctx, email)
	if err != nil {
		log.Error("failed to issue invitation token",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return false
	}

	subject := fmt.Sprintf("You're invited to %s", s.AppName)
	link := fmt.Sprintf("%s/register?token=%s", strings.TrimRight(s.PublicURL, "/"), token)
	textBody := fmt.Sprintf(
		"Your request to join %s has been approved.\n\n"+
			"Complete your registration within %s using the link below:\n\n%s\n",
		s.AppName, s.Invites.TTL, link,
	)
	htmlBody := fmt.Sprintf(
		`<p>Your request to join %s has been approved.</p>`+
			`<p>Complete your registration within %s using the link below:</p>`+
			`<p><a href="%s">Accept invitation</a></p>`,
		s.AppName, s.Invites.TTL, link,
	)

	if err := s.Mailer.Send(ctx, email, subject, textBody, htmlBody); err != nil {
		log.Error("failed to send invitation email",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return false
	}

	return true
}

// Delete hard-deletes an entry regardless of status.
func (s *WhitelistService) Delete(ctx context.Context, requestID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Whitelist().DeleteEntry(ctx, requestID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		return err
	}

	log.Info("whitelist request deleted", slog.String("entry_id", requestID))
	return nil
}

// IsApproved reports whether the email has an approved entry. It is used
// as a registration gate and fails closed: malformed emails, missing
// entries and store errors all report false.
func (s *WhitelistService) IsApproved(ctx context.Context, email string) bool {
	log := slogx.FromContext(ctx)

	email, err := NormalizeEmail(email)
	if err != nil {
		return false
	}

	entry, err := s.Store.Whitelist().GetEntryByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("whitelist lookup failed, treating as not approved",
				slog.String("email", email),
				slog.Any("error", err),
			)
		}
		return false
	}

	return entry.Status == domain.StatusApproved
}
