package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/notify"
	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/stretchr/testify/require"
)

// seedExpiring inserts a current member whose expiration_day is today+offset.
func seedExpiring(t *testing.T, env *testEnv, name, email string, offset int) domain.Member {
	t.Helper()
	exp := domain.AddDays(domain.CalendarDate(env.clock.Now(), time.UTC), offset)
	m := domain.NewMember(idx.New().String(), name, "", email, env.clock.Now())
	m.BillingState = domain.BillingOK
	m.ExpirationDay = &exp
	require.NoError(t, env.store.Members().Create(context.Background(), m))
	return m
}

func recipients(msgs []notify.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.To)
	}
	return out
}

func TestSweepWindows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedExpiring(t, env, "Two", "two@example.com", 2)
	seedExpiring(t, env, "Three", "three@example.com", 3)
	seedExpiring(t, env, "Four", "four@example.com", 4)
	seedExpiring(t, env, "Yesterday", "late@example.com", -1)
	seedExpiring(t, env, "TwoAgo", "older@example.com", -2)
	seedExpiring(t, env, "Today", "today@example.com", 0)

	report := env.reminders.Sweep(ctx)
	require.Equal(t, 1, report.Reminders.Sent)
	require.Equal(t, 1, report.DebtAlerts.Sent)
	require.ElementsMatch(t, []string{"three@example.com", "late@example.com"}, recipients(env.notifier.Sent()))

	for _, msg := range env.notifier.Sent() {
		switch msg.To {
		case "three@example.com":
			require.Equal(t, notify.TemplatePaymentReminder, msg.TemplateKey)
			require.Equal(t, "2024-03-13", msg.Vars["expiration_day"])
		case "late@example.com":
			require.Equal(t, notify.TemplateDebtAlert, msg.TemplateKey)
			require.Equal(t, "2024-03-09", msg.Vars["expiration_day"])
		}
		require.Equal(t, "Gym", msg.Vars["gym_name"])
	}
}

func TestSweepRespectsToggles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedExpiring(t, env, "Three", "three@example.com", 3)
	seedExpiring(t, env, "Late", "late@example.com", -1)

	off := false
	_, err := env.settings.UpdateSettings(ctx, SettingsUpdate{NotifPaymentReminder: &off, NotifDebtAlert: &off})
	require.NoError(t, err)

	report := env.reminders.Sweep(ctx)
	require.False(t, report.Reminders.Enabled)
	require.False(t, report.DebtAlerts.Enabled)
	require.Empty(t, env.notifier.Sent())

	// Toggles are read on every run.
	on := true
	_, err = env.settings.UpdateSettings(ctx, SettingsUpdate{NotifDebtAlert: &on})
	require.NoError(t, err)

	report = env.reminders.Sweep(ctx)
	require.Equal(t, 0, report.Reminders.Sent)
	require.Equal(t, 1, report.DebtAlerts.Sent)
	require.Equal(t, []string{"late@example.com"}, recipients(env.notifier.Sent()))
}

func TestSweepIsolatesFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedExpiring(t, env, "A", "a@example.com", 3)
	seedExpiring(t, env, "B", "b@example.com", 3)
	seedExpiring(t, env, "C", "c@example.com", 3)
	seedExpiring(t, env, "NoMail", "", 3)
	env.notifier.failFor["b@example.com"] = errors.New("mailbox unavailable")

	report := env.reminders.Sweep(ctx)
	require.Equal(t, 4, report.Reminders.Matched)
	require.Equal(t, 2, report.Reminders.Sent)
	require.Equal(t, 1, report.Reminders.Failed)
	require.Equal(t, 1, report.Reminders.Skipped)
	require.ElementsMatch(t, []string{"a@example.com", "c@example.com"}, recipients(env.notifier.Sent()))
}

func TestSweepIsAtLeastOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedExpiring(t, env, "Three", "three@example.com", 3)

	env.reminders.Sweep(ctx)
	env.reminders.Sweep(ctx)
	require.Len(t, env.notifier.Sent(), 2)
}

func TestSweepUsesGymTimezone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	loc := time.FixedZone("UTC-5", -5*60*60)
	env.reminders.Location = loc
	// 02:00 UTC on Mar 10 is still Mar 9 in the gym's zone.
	env.clock.Set(time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC))

	exp := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	m := domain.NewMember(idx.New().String(), "Tz", "", "tz@example.com", env.clock.Now())
	m.BillingState = domain.BillingOK
	m.ExpirationDay = &exp
	require.NoError(t, env.store.Members().Create(ctx, m))

	report := env.reminders.Sweep(ctx)
	require.True(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC).Equal(report.Date))
	require.Equal(t, 1, report.Reminders.Sent)
}

func TestReminderScheduler(t *testing.T) {
	env := newTestEnv(t)

	_, err := NewReminderScheduler(env.reminders, slog.Default(), "not a cron spec", time.UTC)
	require.Error(t, err)

	loc := time.FixedZone("UTC+2", 2*60*60)
	sched, err := NewReminderScheduler(env.reminders, slog.Default(), "", loc)
	require.NoError(t, err)
	require.Equal(t, DefaultReminderSchedule, sched.Spec)

	sched.Start()
	next := sched.Next().In(loc)
	sched.Stop()

	require.Equal(t, 9, next.Hour())
	require.Equal(t, 0, next.Minute())
}
