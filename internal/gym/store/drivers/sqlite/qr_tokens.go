package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
)

const qrColumns = `id, token_hash, member_id, expires_at, created_at`

type qrTokensRepo struct {
	db dbtx
}

func scanQR(row scanner) (domain.TemporalQR, error) {
	var (
		qr       domain.TemporalQR
		memberID sql.NullString
		expires  int64
	)
	if err := row.Scan(&qr.ID, &qr.TokenHash, &memberID, &expires, ts(&qr.CreatedAt)); err != nil {
		return domain.TemporalQR{}, err
	}
	qr.MemberID = mapNullString(memberID)
	qr.ExpiresAt = time.UnixMilli(expires).UTC()
	return qr, nil
}

func (r *qrTokensRepo) Create(ctx context.Context, qr domain.TemporalQR) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO qr_tokens (`+qrColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		qr.ID, qr.TokenHash, mapStringNull(qr.MemberID),
		qr.ExpiresAt.UnixMilli(), timestamp(qr.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *qrTokensRepo) Get(ctx context.Context, tokenHash string, now time.Time) (domain.TemporalQR, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+qrColumns+` FROM qr_tokens WHERE token_hash = ?`, tokenHash)
	qr, err := scanQR(row)
	if err != nil {
		return domain.TemporalQR{}, mapNotFound(err)
	}
	if qr.Expired(now) {
		return domain.TemporalQR{}, store.ErrExpired
	}
	return qr, nil
}

// Consume is a single DELETE guarded on expiry so concurrent callers race on
// the row itself.
func (r *qrTokensRepo) Consume(ctx context.Context, tokenHash string, now time.Time) (domain.TemporalQR, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM qr_tokens
		WHERE token_hash = ? AND expires_at >= ?
		RETURNING `+qrColumns,
		tokenHash, now.UnixMilli(),
	)
	qr, err := scanQR(row)
	if err == nil {
		return qr, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.TemporalQR{}, err
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM qr_tokens WHERE token_hash = ?`, tokenHash).Scan(&one)
	if err != nil {
		return domain.TemporalQR{}, mapNotFound(err)
	}
	return domain.TemporalQR{}, store.ErrExpired
}

func (r *qrTokensRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM qr_tokens WHERE expires_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
