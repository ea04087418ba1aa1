package sqlite

import (
	"context"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
)

type settingsRepo struct {
	db dbtx
}

func (r *settingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT gym_name, notif_payment_reminder, notif_debt_alert, updated_at
		FROM settings WHERE id = 1`,
	).Scan(&s.GymName, &s.NotifPaymentReminder, &s.NotifDebtAlert, ts(&s.UpdatedAt))
	if err != nil {
		return domain.Settings{}, mapNotFound(err)
	}
	return s, nil
}

func (r *settingsRepo) Update(ctx context.Context, s domain.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, gym_name, notif_payment_reminder, notif_debt_alert, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			gym_name = excluded.gym_name,
			notif_payment_reminder = excluded.notif_payment_reminder,
			notif_debt_alert = excluded.notif_debt_alert,
			updated_at = excluded.updated_at`,
		s.GymName, s.NotifPaymentReminder, s.NotifDebtAlert, timestamp(s.UpdatedAt),
	)
	return err
}
