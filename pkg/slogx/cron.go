package slogx

import "log/slog"

// CronLogger adapts a slog.Logger to the robfig/cron Logger interface.
type CronLogger struct {
	Logger *slog.Logger
}

func (l CronLogger) Info(msg string, keysAndValues ...any) {
	l.Logger.Debug("cron: "+msg, keysAndValues...)
}

func (l CronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.Logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
