package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
)

const memberColumns = `id, name, lastname, email, billing_state, expiration_day, marked_days, created_at, updated_at`

type membersRepo struct {
	db dbtx
}

func scanMember(row scanner) (domain.Member, error) {
	var (
		m     domain.Member
		state string
		exp   sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Lastname, &m.Email, &state, &exp, &m.MarkedDays, ts(&m.CreatedAt), ts(&m.UpdatedAt)); err != nil {
		return domain.Member{}, err
	}
	m.BillingState = domain.BillingState(state)

	day, err := mapNullDate(exp)
	if err != nil {
		return domain.Member{}, err
	}
	m.ExpirationDay = day
	return m, nil
}

func collectMembers(rows *sql.Rows) ([]domain.Member, error) {
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membersRepo) Get(ctx context.Context, id string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) Create(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (`+memberColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Lastname, m.Email, string(m.BillingState),
		mapOptionalDate(m.ExpirationDay), m.MarkedDays,
		timestamp(m.CreatedAt), timestamp(m.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *membersRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.Member, error) {
	after, limit := pageArgs(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

func (r *membersRepo) ListByBillingState(
	ctx context.Context,
	state domain.BillingState,
	opts store.ListOptions,
) ([]domain.Member, error) {
	after, limit := pageArgs(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE billing_state = ? AND id > ?
		ORDER BY id
		LIMIT ?`, string(state), after, limit)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

func (r *membersRepo) IncrementMarkedDays(
	ctx context.Context,
	id string,
	today, now time.Time,
) (domain.Member, bool, error) {
	var seen bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE member_id = ? AND check_in_day = ?
		)`, id, formatDate(today)).Scan(&seen)
	if err != nil {
		return domain.Member{}, false, err
	}

	step := 1
	if seen {
		step = 0
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET marked_days = marked_days + ?, updated_at = ?
		WHERE id = ?
		  AND billing_state = 'OK'
		  AND expiration_day IS NOT NULL
		  AND expiration_day >= ?
		RETURNING `+memberColumns,
		step, timestamp(now), id, formatDate(today),
	)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, false, r.missingOrConflict(ctx, id)
	}
	if err != nil {
		return domain.Member{}, false, err
	}
	return m, !seen, nil
}

func (r *membersRepo) ApplyPayment(
	ctx context.Context,
	id string,
	expirationDay, now time.Time,
) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE members
		SET billing_state = 'OK', expiration_day = ?, marked_days = 0, updated_at = ?
		WHERE id = ?
		RETURNING `+memberColumns,
		formatDate(expirationDay), timestamp(now), id,
	)
	m, err := scanMember(row)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membersRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE expiration_day IS NOT NULL
		  AND expiration_day >= ?
		  AND expiration_day < ?
		ORDER BY id`, formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

func (r *membersRepo) MarkLapsed(ctx context.Context, today, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET billing_state = 'defeated', updated_at = ?
		WHERE billing_state = 'OK'
		  AND expiration_day IS NOT NULL
		  AND expiration_day < ?`, timestamp(now), formatDate(today))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// missingOrConflict distinguishes an absent member from one whose guard
// failed after a conditional update matched nothing.
func (r *membersRepo) missingOrConflict(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM members WHERE id = ?`, id).Scan(&one)
	if err != nil {
		return mapNotFound(err)
	}
	return store.ErrConflict
}
