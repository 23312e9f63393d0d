package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invites (id, token_hash, email, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		inv.ID,
		inv.TokenHash,
		inv.Email,
		inv.ExpiresAt,
		inv.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByTokenHash(
	ctx context.Context,
	hash string,
) (domain.Invite, error) {
	var inv domain.Invite
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, email, expires_at, created_at
		FROM invites
		WHERE token_hash = ?`, hash).Scan(
		&inv.ID,
		&inv.TokenHash,
		&inv.Email,
		&inv.ExpiresAt,
		&inv.CreatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitesRepo) DeleteInvite(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE id = ?`, id)
	return err
}

func (r *invitesRepo) DeleteInvitesByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE email = ?`, email)
	return err
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE expires_at < ?`, time.Now().UTC())
	return err
}
