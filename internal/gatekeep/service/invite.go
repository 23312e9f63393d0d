package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/idx"
	"github.com/aussiebroadwan/gatekeep/pkg/slogx"
)

var (
	ErrInviteNotFound      = errors.New("invitation not found or expired")
	ErrInviteEmailMismatch = errors.New("invitation was issued for a different email")
	ErrAccountExists       = errors.New("account already exists")
	ErrWeakPassword        = errors.New("password does not meet minimum length")
)

// MinPasswordLength is the floor for redeemed account passwords.
const MinPasswordLength = 8

// DefaultInviteTTL is how long an issued invitation stays redeemable.
const DefaultInviteTTL = 24 * time.Hour

// InviteService issues and redeems single-use invitation tokens. Only the
// SHA-256 fingerprint of a token is stored; the raw token exists once, in
// the invitation email.
type InviteService struct {
	Store store.Store
	TTL   time.Duration
}

// Issue mints a raw invitation token bound to an email and persists its
// fingerprint. The returned token is the only copy.
func (s *InviteService) Issue(ctx context.Context, email string) (string, error) {
	log := slogx.FromContext(ctx)

	email, err := NormalizeEmail(email)
	if err != nil {
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}

	now := time.Now().UTC()
	inv := domain.Invite{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		Email:     email,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.Store.Invites().CreateInvite(ctx, inv); err != nil {
		return "", fmt.Errorf("failed to persist invite: %w", err)
	}

	log.Info("invitation issued",
		slog.String("invite_id", inv.ID),
		slog.String("email", email),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	return token, nil
}

// Validate resolves a raw token to its invite. An expired invite is deleted
// on sight and reported as not found. When email is non-empty it must match
// the address the invite was issued for.
func (s *InviteService) Validate(ctx context.Context, token, email string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Invite{}, ErrInviteNotFound
	}

	inv, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invite{}, ErrInviteNotFound
	}
	if err != nil {
		return domain.Invite{}, err
	}

	if inv.Expired(time.Now().UTC()) {
		if derr := s.Store.Invites().DeleteInvite(ctx, inv.ID); derr != nil && !errors.Is(derr, store.ErrNotFound) {
			log.Warn("failed to delete expired invite",
				slog.String("invite_id", inv.ID),
				slog.Any("error", derr),
			)
		}
		return domain.Invite{}, ErrInviteNotFound
	}

	if email != "" {
		norm, err := NormalizeEmail(email)
		if err != nil {
			return domain.Invite{}, err
		}
		if norm != inv.Email {
			return domain.Invite{}, ErrInviteEmailMismatch
		}
	}

	return inv, nil
}

// Redeem consumes a valid invite and creates the account in one
// transaction. The token is single-use: success deletes every invite bound
// to the email.
func (s *InviteService) Redeem(ctx context.Context, token, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Validate(ctx, token, email)
	if err != nil {
		return domain.User{}, err
	}

	if len(password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        inv.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrAccountExists
			}
			return err
		}
		return tx.Invites().DeleteInvitesByEmail(ctx, inv.Email)
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("invitation redeemed",
		slog.String("invite_id", inv.ID),
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}
