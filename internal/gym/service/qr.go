package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/cryptox"
	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultQRTTL is how long an issued token stays redeemable.
const DefaultQRTTL = 60 * time.Second

// QRPNGSize is the edge length of rendered kiosk codes in pixels.
const QRPNGSize = 256

// IssuedToken is the only place the raw token ever appears. The store keeps
// its fingerprint.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// QRService issues and redeems temporal QR tokens.
type QRService struct {
	Tokens  store.QRTokens
	TTL     time.Duration
	Metrics *Metrics
	Clock
}

func (s *QRService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultQRTTL
	}
	return s.TTL
}

// Issue creates a token bound to memberID. An empty memberID issues a kiosk
// entrance token that the scanning member identifies themselves against.
func (s *QRService) Issue(ctx context.Context, memberID string) (IssuedToken, error) {
	ctx, span := startSpan(ctx, "qr.issue", attribute.String("gym.member_id", memberID))
	var err error
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)

	token, err := cryptox.NewToken()
	if err != nil {
		log.Error("failed to generate qr token", slog.Any("error", err))
		return IssuedToken{}, err
	}

	now := s.now()
	qr := domain.TemporalQR{
		ID:        idx.NewAt(now).String(),
		TokenHash: cryptox.Fingerprint(token),
		MemberID:  memberID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}
	if err = s.Tokens.Create(ctx, qr); err != nil {
		log.Error("failed to store qr token",
			slog.String("qr_id", qr.ID),
			slog.Any("error", err),
		)
		return IssuedToken{}, err
	}

	kind := "member"
	if qr.Entrance() {
		kind = "entrance"
	}
	s.Metrics.issued(kind)

	log.Debug("issued qr token",
		slog.String("qr_id", qr.ID),
		slog.String("kind", kind),
		slog.Time("expires_at", qr.ExpiresAt),
	)
	return IssuedToken{Token: token, ExpiresAt: qr.ExpiresAt}, nil
}

// IssueEntranceToken issues a token for the kiosk screen.
func (s *QRService) IssueEntranceToken(ctx context.Context) (IssuedToken, error) {
	return s.Issue(ctx, "")
}

// Peek validates a token without consuming it.
func (s *QRService) Peek(ctx context.Context, token string) (domain.TemporalQR, error) {
	ctx, span := startSpan(ctx, "qr.peek")
	var err error
	defer func() { endSpan(span, err) }()

	if !cryptox.WellFormed(token) {
		err = ErrTokenNotFound
		s.Metrics.peeked(err)
		return domain.TemporalQR{}, err
	}

	var qr domain.TemporalQR
	qr, err = s.Tokens.Get(ctx, cryptox.Fingerprint(token), s.now())
	err = mapTokenErr(err)
	s.Metrics.peeked(err)
	if err != nil {
		if KindOf(err) == KindInternal {
			slogx.FromContext(ctx).Error("failed to look up qr token", slog.Any("error", err))
		}
		return domain.TemporalQR{}, err
	}
	span.SetAttributes(attribute.Bool("gym.qr.entrance", qr.Entrance()))
	return qr, nil
}

// Consume redeems a token. Of any number of concurrent calls with the same
// token at most one succeeds; the rest fail with ErrTokenNotFound.
func (s *QRService) Consume(ctx context.Context, token string) (domain.TemporalQR, error) {
	ctx, span := startSpan(ctx, "qr.consume")
	var err error
	defer func() { endSpan(span, err) }()

	if !cryptox.WellFormed(token) {
		err = ErrTokenNotFound
		s.Metrics.consumed(err)
		return domain.TemporalQR{}, err
	}

	var qr domain.TemporalQR
	qr, err = s.Tokens.Consume(ctx, cryptox.Fingerprint(token), s.now())
	err = mapTokenErr(err)
	s.Metrics.consumed(err)
	if err != nil {
		if KindOf(err) == KindInternal {
			slogx.FromContext(ctx).Error("failed to consume qr token", slog.Any("error", err))
		}
		return domain.TemporalQR{}, err
	}
	return qr, nil
}

// RenderPNG encodes token as a QR code image for the kiosk screen.
func (s *QRService) RenderPNG(token string) ([]byte, error) {
	return qrcode.Encode(token, qrcode.Medium, QRPNGSize)
}

func mapTokenErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrTokenNotFound
	case errors.Is(err, store.ErrExpired):
		return ErrTokenExpired
	}
	return err
}
