package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/domain"
	"github.com/aussiebroadwan/gatekeep/internal/gatekeep/store"
)

type whitelistRepo struct {
	db dbtx
}

const whitelistColumns = `id, email, status, reason, requested_at, reviewed_at, reviewed_by, notes, created_at, updated_at`

func (r *whitelistRepo) CreateEntry(ctx context.Context, e domain.WhitelistEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO whitelist_entries (`+whitelistColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Email,
		string(e.Status),
		e.Reason,
		e.RequestedAt,
		nullTime(e.ReviewedAt),
		mapStringNull(e.ReviewedBy),
		e.Notes,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *whitelistRepo) GetEntryByID(ctx context.Context, id string) (domain.WhitelistEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+whitelistColumns+`
		FROM whitelist_entries
		WHERE id = ?`, id)
	return scanEntry(row)
}

func (r *whitelistRepo) GetEntryByEmail(ctx context.Context, email string) (domain.WhitelistEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+whitelistColumns+`
		FROM whitelist_entries
		WHERE email = ?`, email)
	return scanEntry(row)
}

func (r *whitelistRepo) ListEntries(
	ctx context.Context,
	filter store.WhitelistFilter,
	limit, offset int,
) ([]domain.WhitelistEntry, error) {
	query := `
		SELECT ` + whitelistColumns + `
		FROM whitelist_entries`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY requested_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WhitelistEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *whitelistRepo) CountEntries(ctx context.Context, filter store.WhitelistFilter) (int, error) {
	query := `SELECT COUNT(*) FROM whitelist_entries`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *whitelistRepo) SetReview(
	ctx context.Context,
	id string,
	status domain.Status,
	reviewedBy, notes string,
	reviewedAt time.Time,
) error {
	// Guard the pending-only transition at the storage level too.
	res, err := r.db.ExecContext(ctx, `
		UPDATE whitelist_entries
		SET status = ?, reviewed_at = ?, reviewed_by = ?, notes = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(status),
		reviewedAt,
		mapStringNull(reviewedBy),
		notes,
		reviewedAt,
		id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *whitelistRepo) ResetToPending(
	ctx context.Context,
	id, reason string,
	requestedAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE whitelist_entries
		SET status = 'pending', reason = ?, requested_at = ?,
		    reviewed_at = NULL, reviewed_by = NULL, notes = '', updated_at = ?
		WHERE id = ? AND status = 'rejected'`,
		reason,
		requestedAt,
		requestedAt,
		id,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *whitelistRepo) DeleteEntry(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM whitelist_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (domain.WhitelistEntry, error) {
	var (
		e          domain.WhitelistEntry
		status     string
		reviewedAt sql.NullTime
		reviewedBy sql.NullString
	)

	err := s.Scan(
		&e.ID,
		&e.Email,
		&status,
		&e.Reason,
		&e.RequestedAt,
		&reviewedAt,
		&reviewedBy,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return domain.WhitelistEntry{}, mapNotFound(err)
	}

	e.Status = domain.Status(status)
	e.ReviewedAt = mapNullTimePtr(reviewedAt)
	e.ReviewedBy = mapNullString(reviewedBy)
	return e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
