package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/notify"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
)

type ReminderKind string

const (
	ReminderPayment ReminderKind = "payment_reminder"
	ReminderDebt    ReminderKind = "debt_alert"
)

// Day offsets from today of the expiration_day each kind targets.
const (
	paymentReminderOffset = 3
	debtAlertOffset       = -1
)

// KindReport summarises one kind of notification in a sweep.
type KindReport struct {
	Kind    ReminderKind `json:"kind"`
	Enabled bool         `json:"enabled"`
	Matched int          `json:"matched"`
	Sent    int          `json:"sent"`
	Skipped int          `json:"skipped"` // Members without an email
	Failed  int          `json:"failed"`
	Error   string       `json:"error,omitempty"`
}

type SweepReport struct {
	Date       time.Time  `json:"date"`
	Reminders  KindReport `json:"payment_reminders"`
	DebtAlerts KindReport `json:"debt_alerts"`
}

// ReminderService finds members whose expiration is three days away or one
// day past and notifies each of them once per run. Runs are at-least-once;
// a second run on the same day sends again.
type ReminderService struct {
	Store    store.Store
	Notifier notify.Sender
	Metrics  *Metrics
	Clock
}

// Sweep re-reads the notification toggles and runs both kinds. Failures are
// logged and counted per member; nothing aborts the sweep.
func (s *ReminderService) Sweep(ctx context.Context) SweepReport {
	ctx, span := startSpan(ctx, "reminder.sweep")
	defer span.End()

	start := time.Now()
	defer func() { s.Metrics.sweep(time.Since(start)) }()

	log := slogx.FromContext(ctx)
	today := s.today()
	report := SweepReport{
		Date:       today,
		Reminders:  KindReport{Kind: ReminderPayment},
		DebtAlerts: KindReport{Kind: ReminderDebt},
	}

	settings, err := s.Store.Settings().Get(ctx)
	if err != nil {
		log.Error("failed to load settings, skipping sweep", slog.Any("error", err))
		report.Reminders.Error = err.Error()
		report.DebtAlerts.Error = err.Error()
		return report
	}

	report.Reminders.Enabled = settings.NotifPaymentReminder
	report.DebtAlerts.Enabled = settings.NotifDebtAlert

	s.runKind(ctx, settings, today, paymentReminderOffset, &report.Reminders)
	s.runKind(ctx, settings, today, debtAlertOffset, &report.DebtAlerts)

	log.Info("reminder sweep completed",
		slog.String("date", today.Format(time.DateOnly)),
		slog.Int("reminders_sent", report.Reminders.Sent),
		slog.Int("reminders_failed", report.Reminders.Failed),
		slog.Int("debt_alerts_sent", report.DebtAlerts.Sent),
		slog.Int("debt_alerts_failed", report.DebtAlerts.Failed),
	)
	return report
}

func (s *ReminderService) runKind(
	ctx context.Context,
	settings domain.Settings,
	today time.Time,
	offset int,
	rep *KindReport,
) {
	log := slogx.FromContext(ctx).With(slog.String("kind", string(rep.Kind)))
	if !rep.Enabled {
		log.Info("notification kind disabled, skipping")
		return
	}

	from := domain.AddDays(today, offset)
	members, err := s.Store.Members().ListExpiringBetween(ctx, from, domain.AddDays(from, 1))
	if err != nil {
		log.Error("failed to list members", slog.Any("error", err))
		rep.Error = err.Error()
		return
	}
	rep.Matched = len(members)

	for _, m := range members {
		if m.Email == "" {
			rep.Skipped++
			continue
		}

		err := s.Notifier.Send(ctx, reminderMessage(rep.Kind, m, settings.GymName))
		s.Metrics.reminder(rep.Kind, err)
		if err != nil {
			rep.Failed++
			log.Warn("failed to send notification",
				slog.String("member_id", m.ID),
				slog.Any("error", err),
			)
			continue
		}
		rep.Sent++
	}
}

func reminderMessage(kind ReminderKind, m domain.Member, gymName string) notify.Message {
	msg := notify.Message{
		To:     m.Email,
		ToName: m.FullName(),
		Vars: map[string]string{
			"member_name": m.Name,
			"gym_name":    gymName,
		},
	}
	if m.ExpirationDay != nil {
		msg.Vars["expiration_day"] = m.ExpirationDay.Format(time.DateOnly)
	}

	switch kind {
	case ReminderDebt:
		msg.TemplateKey = notify.TemplateDebtAlert
		msg.Subject = gymName + ": your membership has expired"
	default:
		msg.TemplateKey = notify.TemplatePaymentReminder
		msg.Subject = gymName + ": your membership expires soon"
	}
	return msg
}
