package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
)

// SettingsUpdate is a partial update; nil fields keep their current value.
type SettingsUpdate struct {
	GymName              *string `json:"gym_name" validate:"omitnil,notblank,max=100"`
	NotifPaymentReminder *bool   `json:"notif_payment_reminder"`
	NotifDebtAlert       *bool   `json:"notif_debt_alert"`
}

type SettingsService struct {
	Store store.Store
	Clock
}

func (s *SettingsService) GetSettings(ctx context.Context) (domain.Settings, error) {
	return s.Store.Settings().Get(ctx)
}

func (s *SettingsService) UpdateSettings(ctx context.Context, upd SettingsUpdate) (domain.Settings, error) {
	if err := validateStruct(ErrInvalidSettings, upd); err != nil {
		return domain.Settings{}, err
	}

	var out domain.Settings
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Settings().Get(ctx)
		if err != nil {
			return err
		}
		if upd.GymName != nil {
			cur.GymName = *upd.GymName
		}
		if upd.NotifPaymentReminder != nil {
			cur.NotifPaymentReminder = *upd.NotifPaymentReminder
		}
		if upd.NotifDebtAlert != nil {
			cur.NotifDebtAlert = *upd.NotifDebtAlert
		}
		cur.UpdatedAt = s.now()
		out = cur
		return tx.Settings().Update(ctx, cur)
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to update settings", slog.Any("error", err))
		return domain.Settings{}, err
	}

	slogx.FromContext(ctx).Info("settings updated",
		slog.Bool("notif_payment_reminder", out.NotifPaymentReminder),
		slog.Bool("notif_debt_alert", out.NotifDebtAlert),
	)
	return out, nil
}
