package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"go.opentelemetry.io/otel/attribute"
)

// PaymentRequest registers one completed payment. PaymentDate defaults to
// now when nil.
type PaymentRequest struct {
	MemberID    string     `json:"member_id" validate:"required"`
	Amount      int64      `json:"amount" validate:"gt=0"`
	Concept     string     `json:"concept" validate:"notblank,max=200"`
	PaymentDate *time.Time `json:"payment_date"`
}

type PaymentService struct {
	Store   store.Store
	Metrics *Metrics
	Clock
}

// RegisterPayment records a completed payment and brings the member current:
// billing state OK, expiration one calendar month after the payment date and
// the attendance counter reset. Both writes share one transaction.
func (s *PaymentService) RegisterPayment(ctx context.Context, req PaymentRequest) (domain.Payment, domain.Member, error) {
	ctx, span := startSpan(ctx, "payment.register", attribute.String("gym.member_id", req.MemberID))
	var err error
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx).With(slog.String("member_id", req.MemberID))

	if err = validateStruct(ErrInvalidPayment, req); err != nil {
		log.Warn("rejected invalid payment", slog.Any("error", err))
		return domain.Payment{}, domain.Member{}, err
	}

	now := s.now()
	paymentDate := now
	if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
		paymentDate = *req.PaymentDate
	}

	next, err := domain.NextExpiration(paymentDate.In(s.location()))
	if err != nil {
		err = invalid(ErrInvalidPayment, "payment_date is not a valid date")
		return domain.Payment{}, domain.Member{}, err
	}
	expirationDay := domain.CalendarDate(next, s.location())

	payment := domain.Payment{
		ID:          idx.NewAt(now).String(),
		MemberID:    req.MemberID,
		Amount:      req.Amount,
		Concept:     req.Concept,
		PaymentDate: paymentDate,
		Status:      domain.PaymentCompleted,
		CreatedAt:   now,
	}

	var member domain.Member
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Members().Get(ctx, req.MemberID); err != nil {
			return err
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}
		updated, err := tx.Members().ApplyPayment(ctx, req.MemberID, expirationDay, now)
		if err != nil {
			return err
		}
		member = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("payment for unknown member")
			err = ErrMemberNotFound
			return domain.Payment{}, domain.Member{}, err
		}
		log.Error("failed to register payment", slog.Any("error", err))
		return domain.Payment{}, domain.Member{}, err
	}

	s.Metrics.payment()
	log.Info("payment registered",
		slog.String("payment_id", payment.ID),
		slog.Int64("amount", payment.Amount),
		slog.String("expiration_day", expirationDay.Format(time.DateOnly)),
	)
	return payment, member, nil
}

// ListPayments returns a member's payment history, oldest first.
func (s *PaymentService) ListPayments(ctx context.Context, memberID string, opts store.ListOptions) ([]domain.Payment, error) {
	if _, err := s.Store.Members().Get(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.Store.Payments().ListByMember(ctx, memberID, opts)
}

// GetPayment looks a single payment up by id.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (domain.Payment, error) {
	p, err := s.Store.Payments().Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Payment{}, ErrPaymentNotFound
	}
	return p, err
}
