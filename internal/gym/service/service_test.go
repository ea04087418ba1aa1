package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/notify"
	"github.com/aussiebroadwan/gymtab/internal/gym/store/drivers/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingSender captures messages and fails for addresses in failFor.
type recordingSender struct {
	mu      sync.Mutex
	sent    []notify.Message
	failFor map[string]error
}

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[msg.To]; ok {
		return err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) Sent() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.sent...)
}

type testEnv struct {
	store      *sqlite.Store
	clock      *fakeClock
	metrics    *Metrics
	notifier   *recordingSender
	qr         *QRService
	attendance *AttendanceService
	payments   *PaymentService
	members    *MemberService
	settings   *SettingsService
	reminders  *ReminderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	fc := &fakeClock{t: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)}
	clock := Clock{Now: fc.Now, Location: time.UTC}
	notifier := &recordingSender{failFor: map[string]error{}}

	qr := &QRService{Tokens: st.QRTokens(), TTL: time.Minute, Metrics: metrics, Clock: clock}
	return &testEnv{
		store:      st,
		clock:      fc,
		metrics:    metrics,
		notifier:   notifier,
		qr:         qr,
		attendance: &AttendanceService{Store: st, QR: qr, Metrics: metrics, Clock: clock},
		payments:   &PaymentService{Store: st, Metrics: metrics, Clock: clock},
		members:    &MemberService{Store: st, Clock: clock},
		settings:   &SettingsService{Store: st, Clock: clock},
		reminders:  &ReminderService{Store: st, Notifier: notifier, Metrics: metrics, Clock: clock},
	}
}

func (e *testEnv) newMember(t *testing.T, name, email string) domain.Member {
	t.Helper()
	v, err := e.members.CreateMember(context.Background(), CreateMemberRequest{Name: name, Lastname: "Tester", Email: email})
	require.NoError(t, err)
	return v.Member
}

// paidMember creates a member and registers a payment dated paidOn.
func (e *testEnv) paidMember(t *testing.T, name, email string, paidOn time.Time) domain.Member {
	t.Helper()
	m := e.newMember(t, name, email)
	_, updated, err := e.payments.RegisterPayment(context.Background(), PaymentRequest{
		MemberID: m.ID, Amount: 3500, Concept: "Monthly fee", PaymentDate: &paidOn,
	})
	require.NoError(t, err)
	return updated
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindNotFound, KindOf(ErrMemberNotFound))
	require.Equal(t, KindBadRequest, KindOf(ErrOverdueFee))
	require.Equal(t, KindBadRequest, KindOf(invalid(ErrInvalidPayment, "amount")))
	require.Equal(t, KindInternal, KindOf(context.DeadlineExceeded))
	require.Equal(t, "overdue_fee", CodeOf(ErrOverdueFee))
	require.Equal(t, "server_error", CodeOf(context.Canceled))
	require.Equal(t, "Overdue fee", ErrOverdueFee.Error())
}
