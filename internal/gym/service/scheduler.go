package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"github.com/robfig/cron/v3"
)

// DefaultReminderSchedule runs the sweep daily at 09:00 gym time.
const DefaultReminderSchedule = "0 9 * * *"

// ReminderScheduler fires ReminderService.Sweep on a cron schedule. An
// overlapping run is skipped rather than queued.
type ReminderScheduler struct {
	Reminders *ReminderService
	Logger    *slog.Logger
	Spec      string
	Location  *time.Location

	cron *cron.Cron
}

func NewReminderScheduler(reminders *ReminderService, logger *slog.Logger, spec string, loc *time.Location) (*ReminderScheduler, error) {
	if spec == "" {
		spec = DefaultReminderSchedule
	}
	if loc == nil {
		loc = time.UTC
	}

	cl := slogx.CronLogger{Logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		cron.WithLogger(cl),
	)

	s := &ReminderScheduler{
		Reminders: reminders,
		Logger:    logger,
		Spec:      spec,
		Location:  loc,
		cron:      c,
	}
	if _, err := c.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ReminderScheduler) run() {
	ctx := slogx.WithContext(context.Background(), s.Logger.With(slog.String("job", "reminder_sweep")))
	s.Reminders.Sweep(ctx)
}

// Next reports when the sweep will fire next.
func (s *ReminderScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Start is non-blocking.
func (s *ReminderScheduler) Start() {
	s.cron.Start()
	s.Logger.Info("reminder scheduler started",
		slog.String("schedule", s.Spec),
		slog.String("timezone", s.Location.String()),
	)
}

// Stop waits for a running sweep to finish.
func (s *ReminderScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.Logger.Info("reminder scheduler stopped")
}
