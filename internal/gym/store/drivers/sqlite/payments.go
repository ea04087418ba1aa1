package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
)

const paymentColumns = `id, member_id, amount, concept, payment_date, status, created_at`

type paymentsRepo struct {
	db dbtx
}

func scanPayment(row scanner) (domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	if err := row.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Concept, ts(&p.PaymentDate), &status, ts(&p.CreatedAt)); err != nil {
		return domain.Payment{}, err
	}
	p.Status = domain.PaymentStatus(status)
	return p, nil
}

func collectPayments(rows *sql.Rows) ([]domain.Payment, error) {
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentsRepo) Get(ctx context.Context, id string) (domain.Payment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if err != nil {
		return domain.Payment{}, mapNotFound(err)
	}
	return p, nil
}

func (r *paymentsRepo) Create(ctx context.Context, p domain.Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.MemberID, p.Amount, p.Concept,
		timestamp(p.PaymentDate), string(p.Status), timestamp(p.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *paymentsRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.Payment, error) {
	after, limit := pageArgs(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}

func (r *paymentsRepo) ListByMember(
	ctx context.Context,
	memberID string,
	opts store.ListOptions,
) ([]domain.Payment, error) {
	after, limit := pageArgs(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE member_id = ? AND id > ?
		ORDER BY id
		LIMIT ?`, memberID, after, limit)
	if err != nil {
		return nil, err
	}
	return collectPayments(rows)
}
