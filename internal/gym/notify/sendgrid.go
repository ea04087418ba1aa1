package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sony/gobreaker/v2"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridConfig configures the SendGrid sender and its circuit breaker.
type SendGridConfig struct {
	APIKey   string
	From     string
	FromName string
	Host     string // Defaults to the public API

	// Breaker opens after FailureThreshold consecutive failures and stays
	// open for OpenTimeout before letting MaxRequests probes through.
	FailureThreshold uint32
	OpenTimeout      time.Duration
	MaxRequests      uint32
}

// SendGridSender delivers mail through the SendGrid v3 API. Calls go through
// a circuit breaker so an outage fails fast for the rest of a sweep.
type SendGridSender struct {
	cfg     SendGridConfig
	from    *sgmail.Email
	breaker *gobreaker.CircuitBreaker[*rest.Response]
	logger  *slog.Logger
}

var _ Sender = (*SendGridSender)(nil)

func NewSendGridSender(cfg SendGridConfig, logger *slog.Logger) *SendGridSender {
	if cfg.Host == "" {
		cfg.Host = sendGridHost
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &SendGridSender{
		cfg:    cfg,
		from:   sgmail.NewEmail(cfg.FromName, cfg.From),
		logger: logger,
	}
	s.breaker = gobreaker.NewCircuitBreaker[*rest.Response](gobreaker.Settings{
		Name:        "sendgrid",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return s
}

func (s *SendGridSender) prepare(msg Message, body Rendered) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", body.Text),
		sgmail.NewContent("text/html", body.HTML),
	)
	return m
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := Render(msg)
	if err != nil {
		return err
	}

	req := sendgrid.GetRequest(s.cfg.APIKey, sendGridEndpoint, s.cfg.Host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg, body))

	_, err = s.breaker.Execute(func() (*rest.Response, error) {
		res, err := sendgrid.API(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode >= http.StatusBadRequest {
			return res, fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
		}
		return res, nil
	})
	return err
}
