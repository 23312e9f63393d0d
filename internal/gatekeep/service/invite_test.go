package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/idx"
)

func setTestPepper(t *testing.T) {
	t.Helper()
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
}

func TestIssueAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := &InviteService{Store: newTestStore(t), TTL: time.Hour}

	token, err := svc.Issue(ctx, "Invited@Example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Token binds to the normalized email.
	inv, err := svc.Validate(ctx, token, "invited@example.com")
	require.NoError(t, err)
	require.Equal(t, "invited@example.com", inv.Email)
	require.True(t, inv.ExpiresAt.After(time.Now().UTC()))

	// Validation without an email only checks the token.
	_, err = svc.Validate(ctx, token, "")
	require.NoError(t, err)

	_, err = svc.Validate(ctx, token, "other@example.com")
	require.ErrorIs(t, err, ErrInviteEmailMismatch)
}

func TestValidateUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc := &InviteService{Store: newTestStore(t), TTL: time.Hour}

	_, err := svc.Validate(ctx, "", "")
	require.ErrorIs(t, err, ErrInviteNotFound)

	_, err = svc.Validate(ctx, "definitely-not-a-token", "")
	require.ErrorIs(t, err, ErrInviteNotFound)
}

func TestValidateExpiredInviteIsDeleted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc := &InviteService{Store: s, TTL: time.Hour}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	hash := cryptox.FingerprintToken(token)
	now := time.Now().UTC()
	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		ID:        idx.New().String(),
		TokenHash: hash,
		Email:     "late@example.com",
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-25 * time.Hour),
	}))

	_, err = svc.Validate(ctx, token, "late@example.com")
	require.ErrorIs(t, err, ErrInviteNotFound)

	// The expired row is gone, not just rejected.
	_, err = s.Invites().GetInviteByTokenHash(ctx, hash)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeemCreatesUserAndConsumesToken(t *testing.T) {
	ctx := context.Background()
	setTestPepper(t)

	s := newTestStore(t)
	svc := &InviteService{Store: s, TTL: time.Hour}

	token, err := svc.Issue(ctx, "newbie@example.com")
	require.NoError(t, err)

	user, err := svc.Redeem(ctx, token, "newbie@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, "newbie@example.com", user.Email)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "correct horse battery", user.PasswordHash)

	got, err := s.Users().GetUserByEmail(ctx, "newbie@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// Single use: the token is spent.
	_, err = svc.Redeem(ctx, token, "newbie@example.com", "correct horse battery")
	require.ErrorIs(t, err, ErrInviteNotFound)
}

func TestRedeemGuards(t *testing.T) {
	ctx := context.Background()
	setTestPepper(t)

	s := newTestStore(t)
	svc := &InviteService{Store: s, TTL: time.Hour}

	token, err := svc.Issue(ctx, "strict@example.com")
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, token, "strict@example.com", "short")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Redeem(ctx, token, "impostor@example.com", "long enough password")
	require.ErrorIs(t, err, ErrInviteEmailMismatch)

	// An already registered email cannot redeem, and the failed attempt
	// leaves the invite intact.
	now := time.Now().UTC()
	require.NoError(t, s.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        "strict@example.com",
		PasswordHash: "$argon2id$stub",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	_, err = svc.Redeem(ctx, token, "strict@example.com", "long enough password")
	require.ErrorIs(t, err, ErrAccountExists)

	_, err = svc.Validate(ctx, token, "strict@example.com")
	require.NoError(t, err)
}
