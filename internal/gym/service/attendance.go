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

// Scanner is the side of the counter that read a QR code.
type Scanner int

const (
	// ScannerMemberApp is a member's own device reading the kiosk entrance
	// code. The member is whoever is signed in to the app.
	ScannerMemberApp Scanner = iota + 1
	// ScannerDesk is staff or a kiosk reading the code on a member's screen.
	ScannerDesk
)

// EntryRequest is a single check-in attempt.
//
// For QR_SCAN the token and Scanner are required. A member code is only
// redeemable at the desk, where MemberID is an optional cross-check. An
// entrance code is only redeemable by the member app, where MemberID is the
// signed-in member. For MANUAL the caller has already verified MemberID.
type EntryRequest struct {
	Token    string
	MemberID string
	Method   domain.CheckInMethod
	Scanner  Scanner
}

// EntryResult is the member snapshot after the check-in was recorded.
// Counted is false for a repeat visit on a day already marked.
type EntryResult struct {
	Member      domain.Member
	CheckInTime time.Time
	Method      domain.CheckInMethod
	RecordID    string
	Counted     bool
}

type AttendanceService struct {
	Store   store.Store
	QR      *QRService
	Metrics *Metrics
	Clock
}

// RegisterEntry validates the member's standing and records one attendance.
// A QR token is only consumed once the member is known to be current, so a
// rejected check-in leaves the token redeemable.
func (s *AttendanceService) RegisterEntry(ctx context.Context, req EntryRequest) (EntryResult, error) {
	ctx, span := startSpan(ctx, "attendance.register_entry", attribute.String("gym.method", string(req.Method)))
	res, err := s.registerEntry(ctx, req)
	s.Metrics.checkin(string(req.Method), err)
	endSpan(span, err)
	return res, err
}

func (s *AttendanceService) registerEntry(ctx context.Context, req EntryRequest) (EntryResult, error) {
	log := slogx.FromContext(ctx)

	memberID, err := s.resolveMember(ctx, req)
	if err != nil {
		return EntryResult{}, err
	}
	log = log.With(slog.String("member_id", memberID))

	member, err := s.Store.Members().Get(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("check-in for unknown member")
			return EntryResult{}, ErrMemberNotFound
		}
		log.Error("failed to load member", slog.Any("error", err))
		return EntryResult{}, err
	}

	today := s.today()
	if !domain.Standing(member, today) {
		log.Info("check-in rejected, dues not current",
			slog.String("billing_state", string(member.BillingState)),
		)
		return EntryResult{}, ErrOverdueFee
	}

	if req.Method == domain.MethodQRScan {
		qr, err := s.QR.Consume(ctx, req.Token)
		if err != nil {
			log.Info("qr token redemption failed", slog.Any("error", err))
			return EntryResult{}, err
		}
		if qr.MemberID != "" && qr.MemberID != memberID {
			return EntryResult{}, ErrTokenMemberMismatch
		}
	}

	now := s.now()
	rec := domain.AttendanceRecord{
		ID:          idx.NewAt(now).String(),
		MemberID:    memberID,
		CheckInTime: now,
		Day:         today,
		Method:      req.Method,
	}

	var counted bool
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		updated, c, err := tx.Members().IncrementMarkedDays(ctx, memberID, today, now)
		if err != nil {
			return err
		}
		member, counted = updated, c
		return tx.Attendance().Create(ctx, rec)
	})
	switch {
	case errors.Is(err, store.ErrConflict):
		// Standing changed between the check and the update.
		log.Info("check-in rejected, dues lapsed during check-in")
		return EntryResult{}, ErrOverdueFee
	case errors.Is(err, store.ErrNotFound):
		return EntryResult{}, ErrMemberNotFound
	case err != nil:
		log.Error("failed to record attendance", slog.Any("error", err))
		return EntryResult{}, err
	}

	log.Info("member checked in",
		slog.String("method", string(req.Method)),
		slog.Int("marked_days", member.MarkedDays),
		slog.Bool("counted", counted),
	)
	return EntryResult{
		Member:      member,
		CheckInTime: now,
		Method:      req.Method,
		RecordID:    rec.ID,
		Counted:     counted,
	}, nil
}

// resolveMember decides whose check-in this is without side effects, so a
// code presented to the wrong scanner is still redeemable afterwards.
func (s *AttendanceService) resolveMember(ctx context.Context, req EntryRequest) (string, error) {
	switch req.Method {
	case domain.MethodManual:
		if req.MemberID == "" {
			return "", ErrMemberRequired
		}
		return req.MemberID, nil

	case domain.MethodQRScan:
		if req.Token == "" {
			return "", ErrTokenRequired
		}
		if req.Scanner != ScannerMemberApp && req.Scanner != ScannerDesk {
			return "", ErrUnknownScanner
		}
		qr, err := s.QR.Peek(ctx, req.Token)
		if err != nil {
			return "", err
		}
		if qr.Entrance() {
			switch {
			case req.Scanner != ScannerMemberApp:
				return "", ErrEntranceCodeAtDesk
			case req.MemberID == "":
				return "", ErrMemberRequired
			}
			return req.MemberID, nil
		}
		switch {
		case req.Scanner != ScannerDesk:
			return "", ErrMemberCodeSelfScan
		case req.MemberID != "" && req.MemberID != qr.MemberID:
			return "", ErrTokenMemberMismatch
		}
		return qr.MemberID, nil
	}
	return "", ErrInvalidMethod
}

// ListAttendance returns a member's check-in history.
func (s *AttendanceService) ListAttendance(ctx context.Context, memberID string, opts store.ListOptions) ([]domain.AttendanceRecord, error) {
	if _, err := s.Store.Members().Get(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.Store.Attendance().ListByMember(ctx, memberID, opts)
}
