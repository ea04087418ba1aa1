package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"golang.org/x/time/rate"
)

// Group names a family of routes that share one request budget per caller.
type Group string

const (
	GroupCheckIn  Group = "checkin"   // POST /v1/checkins
	GroupKiosk    Group = "kiosk"     // entrance code refreshes
	GroupMemberQR Group = "member_qr" // POST /v1/qr/me
	GroupRead     Group = "read"      // staff lookups and listings
	GroupWrite    Group = "write"     // members, payments, settings
	GroupSweep    Group = "sweep"     // POST /v1/sweeps
	GroupProbe    Group = "probe"     // livez, readyz, metrics
)

// Limit is a token bucket: Burst requests at once, refilled at Requests per
// Window.
type Limit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

func (l Limit) every() rate.Limit {
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// refill is how long an untouched bucket takes to fill up again. After
// that it is indistinguishable from a new one and can be dropped.
func (l Limit) refill() time.Duration {
	return time.Duration(float64(l.Burst) / float64(l.every()) * float64(time.Second))
}

func (l Limit) String() string {
	return strconv.Itoa(l.Requests) + "/" + l.Window.String()
}

// Limits is the budget of every route group.
type Limits map[Group]Limit

// DefaultLimits are sized for one front desk, a couple of kiosks and a few
// hundred members.
func DefaultLimits() Limits {
	return Limits{
		// A desk scanner at opening time, one caller for the whole queue.
		GroupCheckIn: {Requests: 60, Window: time.Minute, Burst: 20},
		// Kiosks refresh the entrance code at a fraction of the token TTL.
		GroupKiosk: {Requests: 30, Window: time.Minute, Burst: 10},
		// A member only needs a fresh code when the last one expired.
		GroupMemberQR: {Requests: 10, Window: time.Minute, Burst: 5},
		GroupRead:     {Requests: 120, Window: time.Minute, Burst: 60},
		GroupWrite:    {Requests: 20, Window: time.Minute, Burst: 20},
		// Every sweep mails the whole expiring cohort.
		GroupSweep: {Requests: 6, Window: time.Hour, Burst: 2},
		GroupProbe: {Requests: 600, Window: time.Minute, Burst: 100},
	}
}

// Limiter enforces Limits with one bucket per group and caller.
//
// Authenticated callers are keyed on the subject of their verified token,
// so a kiosk or desk cannot shed its budget by changing a header. Public
// routes fall back to the client address; X-Forwarded-For is only read when
// TrustProxy is set.
type Limiter struct {
	limits     Limits
	trustProxy bool
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[bucketKey]*bucket
	lastSweep time.Time
}

type bucketKey struct {
	group  Group
	caller string
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// sweepEvery bounds how often idle buckets are dropped.
const sweepEvery = time.Minute

// NewLimiter builds a Limiter. Groups missing from limits use
// DefaultLimits.
func NewLimiter(limits Limits, trustProxy bool) *Limiter {
	merged := DefaultLimits()
	for g, l := range limits {
		merged[g] = l
	}
	return &Limiter{
		limits:     merged,
		trustProxy: trustProxy,
		now:        time.Now,
		buckets:    make(map[bucketKey]*bucket),
	}
}

// Limit returns the middleware for group g. On routes that authenticate it
// must run after Authenticate.
func (l *Limiter) Limit(g Group) Middleware {
	limit := l.limits[g]
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := l.callerKey(r)
			wait, ok := l.take(g, caller)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retry := max(int(wait.Round(time.Second)/time.Second), 1)
			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"group", string(g),
				"caller", caller,
				"retry_after", retry,
			)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Limit", limit.String())
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// take spends one token from the caller's bucket in group g. When the
// bucket is empty nothing is spent and wait is the time until the next
// token.
func (l *Limiter) take(g Group, caller string) (wait time.Duration, ok bool) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	k := bucketKey{group: g, caller: caller}
	b, found := l.buckets[k]
	if !found {
		limit := l.limits[g]
		b = &bucket{lim: rate.NewLimiter(limit.every(), limit.Burst)}
		l.buckets[k] = b
	}
	b.seen = now

	res := b.lim.ReserveN(now, 1)
	if !res.OK() {
		return 0, false
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return d, false
	}
	return 0, true
}

// sweep drops buckets that have been idle long enough to be full again.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.seen) >= l.limits[k.group].refill() {
			delete(l.buckets, k)
		}
	}
}

func (l *Limiter) callerKey(r *http.Request) string {
	if c, ok := CallerFrom(r.Context()); ok && c.Subject != "" {
		return "sub:" + c.Subject
	}
	return "ip:" + l.clientIP(r)
}

func (l *Limiter) clientIP(r *http.Request) string {
	if l.trustProxy {
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
