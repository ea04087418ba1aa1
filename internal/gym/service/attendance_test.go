package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/stretchr/testify/require"
)

func TestRegisterEntryWithMemberToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.paidMember(t, "Ana", "", env.clock.Now())

	issued, err := env.qr.Issue(ctx, m.ID)
	require.NoError(t, err)

	res, err := env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerDesk})
	require.NoError(t, err)
	require.Equal(t, m.ID, res.Member.ID)
	require.Equal(t, 1, res.Member.MarkedDays)
	require.True(t, res.Counted)
	require.Equal(t, "Ana", res.Member.Name)
	require.True(t, res.CheckInTime.Equal(env.clock.Now()))
	require.NotNil(t, res.Member.ExpirationDay)

	recs, err := env.store.Attendance().ListByMember(ctx, m.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, domain.MethodQRScan, recs[0].Method)
	require.True(t, env.attendance.today().Equal(recs[0].Day))

	// The token is gone.
	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerDesk})
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMemberCodeNeedsDeskScanner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.paidMember(t, "Ana", "", env.clock.Now())

	issued, err := env.qr.Issue(ctx, m.ID)
	require.NoError(t, err)

	// The member cannot redeem their own code from the app.
	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{
		Token: issued.Token, MemberID: m.ID, Method: domain.MethodQRScan, Scanner: ScannerMemberApp,
	})
	require.ErrorIs(t, err, ErrMemberCodeSelfScan)
	require.Equal(t, KindForbidden, KindOf(err))

	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan})
	require.ErrorIs(t, err, ErrUnknownScanner)

	got, err := env.store.Members().Get(ctx, m.ID)
	require.NoError(t, err)
	require.Zero(t, got.MarkedDays)

	// Still redeemable at the desk.
	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerDesk})
	require.NoError(t, err)
}

func TestRegisterEntryWithEntranceToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.paidMember(t, "Ana", "", env.clock.Now())

	issued, err := env.qr.IssueEntranceToken(ctx)
	require.NoError(t, err)

	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerMemberApp})
	require.ErrorIs(t, err, ErrMemberRequired)

	// A desk scanner has no member to attribute an entrance code to.
	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{
		Token: issued.Token, MemberID: m.ID, Method: domain.MethodQRScan, Scanner: ScannerDesk,
	})
	require.ErrorIs(t, err, ErrEntranceCodeAtDesk)

	res, err := env.attendance.RegisterEntry(ctx, EntryRequest{
		Token: issued.Token, MemberID: m.ID, Method: domain.MethodQRScan, Scanner: ScannerMemberApp,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Member.MarkedDays)
}

func TestRegisterEntryTokenMemberMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.paidMember(t, "Ana", "", env.clock.Now())
	other := env.paidMember(t, "Bea", "", env.clock.Now())

	issued, err := env.qr.Issue(ctx, owner.ID)
	require.NoError(t, err)

	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{
		Token: issued.Token, MemberID: other.ID, Method: domain.MethodQRScan, Scanner: ScannerDesk,
	})
	require.ErrorIs(t, err, ErrTokenMemberMismatch)

	// Token survives a rejected attempt.
	_, err = env.qr.Peek(ctx, issued.Token)
	require.NoError(t, err)
}

func TestRegisterEntryOverdueLeavesTokenValid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.newMember(t, "Pending", "")

	issued, err := env.qr.Issue(ctx, m.ID)
	require.NoError(t, err)

	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerDesk})
	require.ErrorIs(t, err, ErrOverdueFee)
	require.Equal(t, KindBadRequest, KindOf(err))

	got, err := env.store.Members().Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.MarkedDays)

	_, err = env.qr.Peek(ctx, issued.Token)
	require.NoError(t, err)
}

func TestRegisterEntryRejectsLapsedMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Paid Feb 1, so covered through Mar 1 while the row still reads OK.
	m := env.paidMember(t, "Late", "", time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))
	require.Equal(t, domain.BillingOK, m.BillingState)

	_, err := env.attendance.RegisterEntry(ctx, EntryRequest{MemberID: m.ID, Method: domain.MethodManual})
	require.ErrorIs(t, err, ErrOverdueFee)

	got, err := env.store.Members().Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.MarkedDays)
}

func TestRegisterEntryOnExpirationDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	m := env.paidMember(t, "Edge", "", time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC))
	require.True(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).Equal(*m.ExpirationDay))

	env.clock.Set(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC))
	_, err := env.attendance.RegisterEntry(ctx, EntryRequest{MemberID: m.ID, Method: domain.MethodManual})
	require.NoError(t, err)

	env.clock.Set(time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC))
	_, err = env.attendance.RegisterEntry(ctx, EntryRequest{MemberID: m.ID, Method: domain.MethodManual})
	require.ErrorIs(t, err, ErrOverdueFee)
}

func TestRegisterEntryManual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.paidMember(t, "Ana", "", env.clock.Now())

	for i := 1; i <= 3; i++ {
		env.clock.Advance(24 * time.Hour)
		res, err := env.attendance.RegisterEntry(ctx, EntryRequest{MemberID: m.ID, Method: domain.MethodManual})
		require.NoError(t, err)
		require.Equal(t, i, res.Member.MarkedDays)
		require.Equal(t, domain.MethodManual, res.Method)
	}

	recs, err := env.attendance.ListAttendance(ctx, m.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 3)
}

func TestRegisterEntryCountsDaysNotVisits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.paidMember(t, "Ana", "", env.clock.Now())

	first, err := env.attendance.RegisterEntry(ctx, EntryRequest{MemberID: m.ID, Method: domain.MethodManual})
	require.NoError(t, err)
	require.True(t, first.Counted)

	// Four more entries at the same instant, mixing manual and desk scans.
	for i := range 4 {
		req := EntryRequest{MemberID: m.ID, Method: domain.MethodManual}
		if i%2 == 0 {
			issued, err := env.qr.Issue(ctx, m.ID)
			require.NoError(t, err)
			req = EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerDesk}
		}
		res, err := env.attendance.RegisterEntry(ctx, req)
		require.NoError(t, err)
		require.False(t, res.Counted)
		require.Equal(t, 1, res.Member.MarkedDays)
	}

	recs, err := env.attendance.ListAttendance(ctx, m.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 5)

	env.clock.Advance(24 * time.Hour)
	next, err := env.attendance.RegisterEntry(ctx, EntryRequest{MemberID: m.ID, Method: domain.MethodManual})
	require.NoError(t, err)
	require.True(t, next.Counted)
	require.Equal(t, 2, next.Member.MarkedDays)
}

func TestRegisterEntryValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  EntryRequest
		want error
	}{
		{"manual without member", EntryRequest{Method: domain.MethodManual}, ErrMemberRequired},
		{"scan without token", EntryRequest{Method: domain.MethodQRScan}, ErrTokenRequired},
		{"unknown method", EntryRequest{MemberID: "x", Method: "WAVE"}, ErrInvalidMethod},
		{"scan without scanner", EntryRequest{Token: "abcdefghijklmnopqrstuv", Method: domain.MethodQRScan}, ErrUnknownScanner},
		{"unknown token", EntryRequest{Token: "abcdefghijklmnopqrstuv", Method: domain.MethodQRScan, Scanner: ScannerDesk}, ErrTokenNotFound},
		{"unknown member", EntryRequest{MemberID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Method: domain.MethodManual}, ErrMemberNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.attendance.RegisterEntry(ctx, tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := env.attendance.ListAttendance(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ", store.ListOptions{})
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRegisterEntryConcurrentRedemption(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	m := env.paidMember(t, "Ana", "", env.clock.Now())

	issued, err := env.qr.Issue(ctx, m.ID)
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.attendance.RegisterEntry(ctx, EntryRequest{Token: issued.Token, Method: domain.MethodQRScan, Scanner: ScannerDesk})
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, ErrTokenNotFound)
	}
	require.Equal(t, 1, wins)

	got, err := env.store.Members().Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.MarkedDays)
}
