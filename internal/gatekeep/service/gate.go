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
	ErrInvitationOnly       = errors.New("registration is by invitation only")
	ErrRegistrationDisabled = errors.New("registration is disabled")
)

// Gate access paths, in precedence order.
const (
	ViaInvite    = "invite"
	ViaWhitelist = "whitelist"
	ViaOpen      = "open"
)

// Decision is the outcome of the registration gate for one attempt.
type Decision struct {
	Allowed bool
	Via     string // which path admitted the caller, empty when denied
	Deny    error  // sentinel explaining a denial, nil when allowed
}

// GateService decides who may register. A valid invite token always admits.
// Without one, private beta admits only approved emails; otherwise open
// registration admits everyone. With both flags off, registration is
// closed.
type GateService struct {
	Whitelist *WhitelistService
	Invites   *InviteService

	PrivateBeta      bool
	OpenRegistration bool
}

// CanRegister evaluates the gate without mutating anything. An invalid or
// expired invite token does not short-circuit a denial; the caller falls
// through to the flag-based paths.
func (g *GateService) CanRegister(ctx context.Context, email, inviteToken string) Decision {
	log := slogx.FromContext(ctx)

	if inviteToken != "" {
		_, err := g.Invites.Validate(ctx, inviteToken, email)
		if err == nil {
			return Decision{Allowed: true, Via: ViaInvite}
		}
		log.Debug("invite token rejected, falling through to gate flags",
			slog.Any("error", err),
		)
	}

	if g.PrivateBeta {
		if g.Whitelist.IsApproved(ctx, email) {
			return Decision{Allowed: true, Via: ViaWhitelist}
		}
		return Decision{Deny: ErrInvitationOnly}
	}

	if g.OpenRegistration {
		return Decision{Allowed: true, Via: ViaOpen}
	}

	return Decision{Deny: ErrRegistrationDisabled}
}

// Register runs the gate and creates the account. Invite-path registrations
// go through Redeem so the token is consumed atomically with the account
// creation.
func (g *GateService) Register(ctx context.Context, email, password, inviteToken string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	norm, err := NormalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}

	decision := g.CanRegister(ctx, norm, inviteToken)
	if !decision.Allowed {
		return domain.User{}, decision.Deny
	}

	if decision.Via == ViaInvite {
		return g.Invites.Redeem(ctx, inviteToken, norm, password)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        norm,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := g.Whitelist.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrAccountExists
		}
		return domain.User{}, err
	}

	log.Info("account registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("via", decision.Via),
	)

	return user, nil
}
