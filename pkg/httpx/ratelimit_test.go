package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/httpx"
	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

// as sends a request on behalf of an authenticated caller.
func as(h http.Handler, subject string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/checkins", nil)
	req.RemoteAddr = "10.0.0.7:5000"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if subject != "" {
		req = req.WithContext(httpx.WithCaller(req.Context(), httpx.Caller{Subject: subject, Scopes: []string{jwtx.ScopeStaff}}))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCheckInBudgetIsPerCaller(t *testing.T) {
	limiter := httpx.NewLimiter(httpx.Limits{
		httpx.GroupCheckIn: {Requests: 1, Window: time.Hour, Burst: 3},
	}, false)
	checkins := limiter.Limit(httpx.GroupCheckIn)(ok)

	for range 3 {
		require.Equal(t, http.StatusNoContent, as(checkins, "desk-1", nil).Code)
	}

	rec := as(checkins, "desk-1", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "1/1h0m0s", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "3600", rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "rate_limit_exceeded", body["error"])

	// The second desk has its own bucket.
	require.Equal(t, http.StatusNoContent, as(checkins, "desk-2", nil).Code)
}

func TestGroupsDoNotShareBudgets(t *testing.T) {
	limiter := httpx.NewLimiter(httpx.Limits{
		httpx.GroupWrite:   {Requests: 1, Window: time.Hour, Burst: 1},
		httpx.GroupCheckIn: {Requests: 1, Window: time.Hour, Burst: 1},
	}, false)
	payments := limiter.Limit(httpx.GroupWrite)(ok)
	checkins := limiter.Limit(httpx.GroupCheckIn)(ok)

	require.Equal(t, http.StatusNoContent, as(payments, "desk", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, as(payments, "desk", nil).Code)

	require.Equal(t, http.StatusNoContent, as(checkins, "desk", nil).Code)
}

func TestSweepDefaultBudget(t *testing.T) {
	sweeps := httpx.NewLimiter(nil, false).Limit(httpx.GroupSweep)(ok)

	require.Equal(t, http.StatusNoContent, as(sweeps, "owner", nil).Code)
	require.Equal(t, http.StatusNoContent, as(sweeps, "owner", nil).Code)

	rec := as(sweeps, "owner", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	// Six an hour refill one every ten minutes.
	require.Equal(t, "600", rec.Header().Get("Retry-After"))
	require.Equal(t, "6/1h0m0s", rec.Header().Get("X-RateLimit-Limit"))
}

func TestClientHeadersDoNotChangeTheBucket(t *testing.T) {
	limiter := httpx.NewLimiter(httpx.Limits{
		httpx.GroupKiosk: {Requests: 1, Window: time.Hour, Burst: 2},
	}, true)
	entrance := limiter.Limit(httpx.GroupKiosk)(ok)

	require.Equal(t, http.StatusNoContent, as(entrance, "kiosk-1", map[string]string{"X-Kiosk-ID": "a"}).Code)
	require.Equal(t, http.StatusNoContent, as(entrance, "kiosk-1", map[string]string{"X-Kiosk-ID": "b"}).Code)

	for _, h := range []map[string]string{
		{"X-Kiosk-ID": "c"},
		{"X-Forwarded-For": "203.0.113.9"},
		{"X-Real-IP": "203.0.113.10"},
	} {
		require.Equal(t, http.StatusTooManyRequests, as(entrance, "kiosk-1", h).Code, "headers %v", h)
	}
}

func TestPublicRoutesKeyOnClientAddress(t *testing.T) {
	probe := httpx.Limits{httpx.GroupProbe: {Requests: 1, Window: time.Hour, Burst: 1}}

	t.Run("forwarded header ignored by default", func(t *testing.T) {
		livez := httpx.NewLimiter(probe, false).Limit(httpx.GroupProbe)(ok)

		require.Equal(t, http.StatusNoContent, as(livez, "", nil).Code)
		rec := as(livez, "", map[string]string{"X-Forwarded-For": "203.0.113.1"})
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("forwarded header honoured behind a proxy", func(t *testing.T) {
		livez := httpx.NewLimiter(probe, true).Limit(httpx.GroupProbe)(ok)

		require.Equal(t, http.StatusNoContent, as(livez, "", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}).Code)
		require.Equal(t, http.StatusNoContent, as(livez, "", map[string]string{"X-Forwarded-For": "203.0.113.2"}).Code)
		require.Equal(t, http.StatusTooManyRequests, as(livez, "", map[string]string{"X-Forwarded-For": "203.0.113.1"}).Code)
	})
}

func TestMissingGroupsFallBackToDefaults(t *testing.T) {
	limiter := httpx.NewLimiter(httpx.Limits{
		httpx.GroupCheckIn: {Requests: 1, Window: time.Hour, Burst: 1},
	}, false)
	memberQR := limiter.Limit(httpx.GroupMemberQR)(ok)

	burst := httpx.DefaultLimits()[httpx.GroupMemberQR].Burst
	for range burst {
		require.Equal(t, http.StatusNoContent, as(memberQR, "01HMEMBER", nil).Code)
	}
	require.Equal(t, http.StatusTooManyRequests, as(memberQR, "01HMEMBER", nil).Code)
}

func TestAuthenticatedRequestsKeyOnTokenSubject(t *testing.T) {
	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "gymtab-test")
	require.NoError(t, err)
	limiter := httpx.NewLimiter(httpx.Limits{
		httpx.GroupCheckIn: {Requests: 1, Window: time.Hour, Burst: 1},
	}, false)
	h := httpx.Chain(ok, httpx.Authenticate(signer), limiter.Limit(httpx.GroupCheckIn))

	send := func(subject, addr string) int {
		tok, err := signer.Sign(jwtx.NewAccessClaims(subject, []string{jwtx.ScopeStaff}, time.Hour, "gymtab-test", "", time.Now()))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/checkins", nil)
		req.RemoteAddr = addr
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusNoContent, send("desk", "10.0.0.1:1"))
	// A new address does not buy the same subject a new bucket.
	require.Equal(t, http.StatusTooManyRequests, send("desk", "10.0.0.2:1"))
	// Two desks behind one NAT do not share one.
	require.Equal(t, http.StatusNoContent, send("kiosk-1", "10.0.0.1:1"))
}
