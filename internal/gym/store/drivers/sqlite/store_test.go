package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/cryptox"
	"github.com/aussiebroadwan/gymtab/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createMember(t *testing.T, s store.Store, email string, exp *time.Time, state domain.BillingState) domain.Member {
	t.Helper()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	m := domain.NewMember(idx.New().String(), "Ana", "Diaz", email, now)
	m.ExpirationDay = exp
	m.BillingState = state
	require.NoError(t, s.Members().Create(context.Background(), m))
	return m
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestMembersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	exp := date(2024, 3, 31)
	m := createMember(t, s, "ana@example.com", &exp, domain.BillingOK)

	got, err := s.Members().Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, m.Name, got.Name)
	require.Equal(t, domain.BillingOK, got.BillingState)
	require.NotNil(t, got.ExpirationDay)
	require.True(t, exp.Equal(*got.ExpirationDay))
	require.True(t, m.CreatedAt.Equal(got.CreatedAt))

	_, err = s.Members().Get(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMembersDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	createMember(t, s, "dup@example.com", nil, domain.BillingPending)

	m := domain.NewMember(idx.New().String(), "Other", "", "dup@example.com", time.Now())
	err := s.Members().Create(context.Background(), m)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// Empty emails are not unique.
	createMember(t, s, "", nil, domain.BillingPending)
	createMember(t, s, "", nil, domain.BillingPending)
}

func TestMembersListPagination(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for range 5 {
		createMember(t, s, "", nil, domain.BillingPending)
	}
	exp := date(2024, 2, 1)
	createMember(t, s, "", &exp, domain.BillingOK)

	first, err := s.Members().List(ctx, store.ListOptions{Limit: 4})
	require.NoError(t, err)
	require.Len(t, first, 4)

	rest, err := s.Members().List(ctx, store.ListOptions{Limit: 4, After: first[3].ID})
	require.NoError(t, err)
	require.Len(t, rest, 2)

	pending, err := s.Members().ListByBillingState(ctx, domain.BillingPending, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, pending, 5)
}

func TestIncrementMarkedDaysGuard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)

	exp := date(2024, 3, 31)
	current := createMember(t, s, "", &exp, domain.BillingOK)

	got, counted, err := s.Members().IncrementMarkedDays(ctx, current.ID, date(2024, 3, 31), now)
	require.NoError(t, err)
	require.True(t, counted)
	require.Equal(t, 1, got.MarkedDays)

	_, _, err = s.Members().IncrementMarkedDays(ctx, current.ID, date(2024, 4, 1), now)
	require.ErrorIs(t, err, store.ErrConflict)

	pending := createMember(t, s, "", nil, domain.BillingPending)
	_, _, err = s.Members().IncrementMarkedDays(ctx, pending.ID, date(2024, 3, 1), now)
	require.ErrorIs(t, err, store.ErrConflict)

	_, _, err = s.Members().IncrementMarkedDays(ctx, idx.New().String(), date(2024, 3, 1), now)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err = s.Members().Get(ctx, current.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.MarkedDays)
}

func TestIncrementMarkedDaysOncePerDay(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	exp := date(2024, 3, 31)
	m := createMember(t, s, "", &exp, domain.BillingOK)

	checkIn := func(day time.Time) (domain.Member, bool) {
		t.Helper()
		var (
			got     domain.Member
			counted bool
		)
		require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
			var err error
			got, counted, err = tx.Members().IncrementMarkedDays(ctx, m.ID, day, now)
			if err != nil {
				return err
			}
			return tx.Attendance().Create(ctx, domain.AttendanceRecord{
				ID: idx.New().String(), MemberID: m.ID, CheckInTime: now, Day: day, Method: domain.MethodManual,
			})
		}))
		return got, counted
	}

	got, counted := checkIn(date(2024, 3, 10))
	require.True(t, counted)
	require.Equal(t, 1, got.MarkedDays)

	for range 4 {
		got, counted = checkIn(date(2024, 3, 10))
		require.False(t, counted)
		require.Equal(t, 1, got.MarkedDays)
	}

	got, counted = checkIn(date(2024, 3, 11))
	require.True(t, counted)
	require.Equal(t, 2, got.MarkedDays)

	recs, err := s.Attendance().ListByMember(ctx, m.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 6)
	require.True(t, date(2024, 3, 11).Equal(recs[5].Day))
}

func TestApplyPaymentResetsCounter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	exp := date(2024, 3, 31)
	m := createMember(t, s, "", &exp, domain.BillingOK)
	_, _, err := s.Members().IncrementMarkedDays(ctx, m.ID, date(2024, 3, 10), now)
	require.NoError(t, err)

	got, err := s.Members().ApplyPayment(ctx, m.ID, date(2024, 4, 30), now)
	require.NoError(t, err)
	require.Equal(t, 0, got.MarkedDays)
	require.Equal(t, domain.BillingOK, got.BillingState)
	require.True(t, date(2024, 4, 30).Equal(*got.ExpirationDay))

	_, err = s.Members().ApplyPayment(ctx, idx.New().String(), date(2024, 4, 30), now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListExpiringBetweenIsHalfOpen(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	d1, d2, d3 := date(2024, 5, 4), date(2024, 5, 5), date(2024, 5, 6)
	a := createMember(t, s, "", &d1, domain.BillingOK)
	createMember(t, s, "", &d2, domain.BillingOK)
	createMember(t, s, "", &d3, domain.BillingOK)
	createMember(t, s, "", nil, domain.BillingPending)

	got, err := s.Members().ListExpiringBetween(ctx, date(2024, 5, 4), date(2024, 5, 5))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, a.ID, got[0].ID)
}

func TestMarkLapsed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	past, today := date(2024, 5, 3), date(2024, 5, 4)
	lapsed := createMember(t, s, "", &past, domain.BillingOK)
	current := createMember(t, s, "", &today, domain.BillingOK)

	n, err := s.Members().MarkLapsed(ctx, today, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := s.Members().Get(ctx, lapsed.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BillingDefeated, got.BillingState)

	got, err = s.Members().Get(ctx, current.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BillingOK, got.BillingState)
}

func TestAttendanceAndPayments(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	m := createMember(t, s, "", nil, domain.BillingPending)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	rec := domain.AttendanceRecord{ID: idx.New().String(), MemberID: m.ID, CheckInTime: now, Day: date(2024, 3, 10), Method: domain.MethodQRScan}
	require.NoError(t, s.Attendance().Create(ctx, rec))

	orphan := domain.AttendanceRecord{ID: idx.New().String(), MemberID: idx.New().String(), CheckInTime: now, Method: domain.MethodManual}
	require.Error(t, s.Attendance().Create(ctx, orphan))

	recs, err := s.Attendance().ListByMember(ctx, m.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, domain.MethodQRScan, recs[0].Method)
	require.True(t, now.Equal(recs[0].CheckInTime))

	p := domain.Payment{
		ID: idx.New().String(), MemberID: m.ID, Amount: 3500, Concept: "Monthly",
		PaymentDate: now, Status: domain.PaymentCompleted, CreatedAt: now,
	}
	require.NoError(t, s.Payments().Create(ctx, p))

	got, err := s.Payments().Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3500), got.Amount)

	bad := p
	bad.ID = idx.New().String()
	bad.Amount = 0
	require.Error(t, s.Payments().Create(ctx, bad))

	all, err := s.Payments().ListByMember(ctx, m.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSettingsSeededAndUpdated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	got, err := s.Settings().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Gym", got.GymName)
	require.True(t, got.NotifPaymentReminder)
	require.True(t, got.NotifDebtAlert)

	got.GymName = "Iron Temple"
	got.NotifDebtAlert = false
	got.UpdatedAt = time.Now()
	require.NoError(t, s.Settings().Update(ctx, got))

	again, err := s.Settings().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Iron Temple", again.GymName)
	require.False(t, again.NotifDebtAlert)
	require.True(t, again.NotifPaymentReminder)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sentinel := errors.New("boom")
	id := idx.New().String()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Members().Create(ctx, domain.NewMember(id, "Tx", "", "", time.Now())))
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Members().Get(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestQRTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	m := createMember(t, s, "", nil, domain.BillingPending)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	token := cryptox.MustNewToken()
	qr := domain.TemporalQR{
		ID: idx.New().String(), TokenHash: cryptox.Fingerprint(token), MemberID: m.ID,
		ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}
	require.NoError(t, s.QRTokens().Create(ctx, qr))

	peek, err := s.QRTokens().Get(ctx, qr.TokenHash, now)
	require.NoError(t, err)
	require.Equal(t, m.ID, peek.MemberID)

	_, err = s.QRTokens().Get(ctx, qr.TokenHash, now.Add(2*time.Minute))
	require.ErrorIs(t, err, store.ErrExpired)
	_, err = s.QRTokens().Consume(ctx, qr.TokenHash, now.Add(2*time.Minute))
	require.ErrorIs(t, err, store.ErrExpired)

	// Valid at exactly the expiry instant.
	got, err := s.QRTokens().Consume(ctx, qr.TokenHash, qr.ExpiresAt)
	require.NoError(t, err)
	require.Equal(t, qr.ID, got.ID)
	require.True(t, qr.ExpiresAt.Equal(got.ExpiresAt))

	_, err = s.QRTokens().Consume(ctx, qr.TokenHash, now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestQRTokenEntranceAndPurge(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := range 3 {
		qr := domain.TemporalQR{
			ID: idx.New().String(), TokenHash: cryptox.Fingerprint(cryptox.MustNewToken()),
			ExpiresAt: now.Add(time.Duration(i-1) * time.Hour), CreatedAt: now,
		}
		require.NoError(t, s.QRTokens().Create(ctx, qr))
	}

	n, err := s.QRTokens().DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestQRTokenConcurrentConsume(t *testing.T) {
	ctx := context.Background()

	s, err := NewStore(filepath.Join(t.TempDir(), "gym.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	now := time.Now()
	qr := domain.TemporalQR{
		ID: idx.New().String(), TokenHash: cryptox.Fingerprint("concurrent-token"),
		ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}
	require.NoError(t, s.QRTokens().Create(ctx, qr))

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.QRTokens().Consume(ctx, qr.TokenHash, now)
		}()
	}
	wg.Wait()

	success := 0
	for _, err := range errs {
		if err == nil {
			success++
			continue
		}
		require.ErrorIs(t, err, store.ErrNotFound)
	}
	require.Equal(t, 1, success)
}
