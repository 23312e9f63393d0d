package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
)

func newGate(s store.Store, privateBeta, openReg bool) *GateService {
	invites := &InviteService{Store: s, TTL: time.Hour}
	return &GateService{
		Whitelist: &WhitelistService{
			Store:     s,
			Invites:   invites,
			Mailer:    &captureMailer{},
			AppName:   "Gatekeep",
			PublicURL: "https://chat.example.com",
		},
		Invites:          invites,
		PrivateBeta:      privateBeta,
		OpenRegistration: openReg,
	}
}

func approveEmail(t *testing.T, gate *GateService, email string) {
	t.Helper()
	ctx := context.Background()

	entry, err := gate.Whitelist.Submit(ctx, email, "")
	require.NoError(t, err)
	_, err = gate.Whitelist.Review(ctx, entry.ID, domain.StatusApproved, "admin-1", "", false)
	require.NoError(t, err)
}

func TestCanRegisterInviteTakesPrecedence(t *testing.T) {
	ctx := context.Background()
	gate := newGate(newTestStore(t), true, false)

	// Not whitelisted, but holding a valid invite: the invite wins even
	// under private beta.
	token, err := gate.Invites.Issue(ctx, "vip@example.com")
	require.NoError(t, err)

	decision := gate.CanRegister(ctx, "vip@example.com", token)
	require.True(t, decision.Allowed)
	require.Equal(t, ViaInvite, decision.Via)
}

func TestCanRegisterPrivateBeta(t *testing.T) {
	ctx := context.Background()
	gate := newGate(newTestStore(t), true, true)

	decision := gate.CanRegister(ctx, "outsider@example.com", "")
	require.False(t, decision.Allowed)
	require.ErrorIs(t, decision.Deny, ErrInvitationOnly)

	approveEmail(t, gate, "insider@example.com")
	decision = gate.CanRegister(ctx, "insider@example.com", "")
	require.True(t, decision.Allowed)
	require.Equal(t, ViaWhitelist, decision.Via)
}

func TestCanRegisterOpenAndClosed(t *testing.T) {
	ctx := context.Background()

	open := newGate(newTestStore(t), false, true)
	decision := open.CanRegister(ctx, "anyone@example.com", "")
	require.True(t, decision.Allowed)
	require.Equal(t, ViaOpen, decision.Via)

	closed := newGate(newTestStore(t), false, false)
	decision = closed.CanRegister(ctx, "anyone@example.com", "")
	require.False(t, decision.Allowed)
	require.ErrorIs(t, decision.Deny, ErrRegistrationDisabled)
}

func TestCanRegisterBadInviteFallsThrough(t *testing.T) {
	ctx := context.Background()
	gate := newGate(newTestStore(t), false, true)

	// A garbage token does not block an otherwise open gate.
	decision := gate.CanRegister(ctx, "anyone@example.com", "garbage-token")
	require.True(t, decision.Allowed)
	require.Equal(t, ViaOpen, decision.Via)

	// Under private beta the same garbage token denies.
	beta := newGate(newTestStore(t), true, false)
	decision = beta.CanRegister(ctx, "anyone@example.com", "garbage-token")
	require.False(t, decision.Allowed)
	require.ErrorIs(t, decision.Deny, ErrInvitationOnly)
}

func TestRegisterViaInviteConsumesToken(t *testing.T) {
	ctx := context.Background()
	setTestPepper(t)
	gate := newGate(newTestStore(t), true, false)

	token, err := gate.Invites.Issue(ctx, "vip@example.com")
	require.NoError(t, err)

	user, err := gate.Register(ctx, "vip@example.com", "long enough password", token)
	require.NoError(t, err)
	require.Equal(t, "vip@example.com", user.Email)

	_, err = gate.Invites.Validate(ctx, token, "")
	require.ErrorIs(t, err, ErrInviteNotFound, "token is single use")
}

func TestRegisterViaWhitelist(t *testing.T) {
	ctx := context.Background()
	setTestPepper(t)
	gate := newGate(newTestStore(t), true, false)

	approveEmail(t, gate, "insider@example.com")

	user, err := gate.Register(ctx, "Insider@Example.com", "long enough password", "")
	require.NoError(t, err)
	require.Equal(t, "insider@example.com", user.Email)

	// Same email cannot register twice.
	_, err = gate.Register(ctx, "insider@example.com", "long enough password", "")
	require.ErrorIs(t, err, ErrAccountExists)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	gate := newGate(newTestStore(t), false, true)

	_, err := gate.Register(ctx, "not-an-email", "long enough password", "")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = gate.Register(ctx, "fine@example.com", "short", "")
	require.ErrorIs(t, err, ErrWeakPassword)

	closed := newGate(newTestStore(t), false, false)
	_, err = closed.Register(ctx, "fine@example.com", "long enough password", "")
	require.ErrorIs(t, err, ErrRegistrationDisabled)
}
