package notify

import (
	"context"
	"log/slog"
)

// LogSender renders messages and writes them to the log instead of
// delivering them. Used in development and when no provider is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	body, err := Render(msg)
	if err != nil {
		return err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "notification",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("template", msg.TemplateKey),
		slog.String("body", body.Text),
	)
	return nil
}
