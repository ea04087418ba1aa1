package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/gymtab/api/gym" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store  store.Store
	tokens store.QRTokens

	QRService         *service.QRService
	AttendanceService *service.AttendanceService
	PaymentService    *service.PaymentService
	MemberService     *service.MemberService
	SettingsService   *service.SettingsService
	ReminderService   *service.ReminderService

	// MetricsHandler serves /metrics. Defaults to the global Prometheus registry.
	MetricsHandler http.Handler

	// Limits overrides the per group rate limits; missing groups use
	// httpx.DefaultLimits.
	Limits httpx.Limits
	// TrustProxy keys public routes on X-Forwarded-For. Only set it behind
	// a proxy that overwrites the header.
	TrustProxy bool
}

// NewRouter creates a router. tokens is the QR token store in use, which
// may live outside st.
func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	tokens store.QRTokens,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		tokens:       tokens,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	limiter := httpx.NewLimiter(r.Limits, r.TrustProxy)
	for _, rt := range r.routes() {
		r.mount(limiter, rt)
	}

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			gymtab Membership Service API
//	@version		0.1.0
//	@description	Membership billing and attendance for a single gym: temporal QR check-ins, payments that
//	@description	renew membership by one calendar month, and daily payment reminders.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gymtab
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 access token minted with gymctl. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// route is one entry of the API table. A route without scopes is public.
type route struct {
	pattern string
	handler http.Handler
	group   httpx.Group
	scopes  []string
}

var (
	memberScopes = []string{jwtx.ScopeMember}
	deskScopes   = []string{jwtx.ScopeStaff, jwtx.ScopeAdmin}
	adminScopes  = []string{jwtx.ScopeAdmin}
	// Check-ins pick the member and scanner from the caller's scopes.
	checkInScopes = []string{jwtx.ScopeMember, jwtx.ScopeStaff, jwtx.ScopeAdmin}
)

// routes is the whole API: pattern, handler, rate limit group and the
// scopes that may call it.
func (r *Router) routes() []route {
	qr := &QRHandler{QRService: r.QRService}
	checkins := &CheckInHandler{AttendanceService: r.AttendanceService, MemberService: r.MemberService}
	members := &MembersHandler{MemberService: r.MemberService, AttendanceService: r.AttendanceService}
	payments := &PaymentsHandler{PaymentService: r.PaymentService, MemberService: r.MemberService}
	settings := &SettingsHandler{SettingsService: r.SettingsService}
	sweeps := &SweepHandler{ReminderService: r.ReminderService}

	metrics := r.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	return []route{
		{"POST /v1/qr/entrance", http.HandlerFunc(qr.HandleEntrance), httpx.GroupKiosk, deskScopes},
		{"GET /v1/qr/entrance.png", http.HandlerFunc(qr.HandleEntrancePNG), httpx.GroupKiosk, deskScopes},
		{"POST /v1/qr/me", http.HandlerFunc(qr.HandleMember), httpx.GroupMemberQR, memberScopes},

		{"POST /v1/checkins", checkins, httpx.GroupCheckIn, checkInScopes},

		{"POST /v1/members", http.HandlerFunc(members.HandleCreate), httpx.GroupWrite, adminScopes},
		{"GET /v1/members", http.HandlerFunc(members.HandleList), httpx.GroupRead, deskScopes},
		{"GET /v1/members/{id}", http.HandlerFunc(members.HandleGet), httpx.GroupRead, deskScopes},
		{"GET /v1/members/{id}/attendance", http.HandlerFunc(members.HandleAttendance), httpx.GroupRead, deskScopes},

		{"POST /v1/payments", http.HandlerFunc(payments.HandleCreate), httpx.GroupWrite, deskScopes},
		{"GET /v1/members/{id}/payments", http.HandlerFunc(payments.HandleList), httpx.GroupRead, deskScopes},

		{"GET /v1/settings", http.HandlerFunc(settings.HandleGet), httpx.GroupRead, adminScopes},
		{"PUT /v1/settings", http.HandlerFunc(settings.HandleUpdate), httpx.GroupWrite, adminScopes},

		{"POST /v1/sweeps", sweeps, httpx.GroupSweep, adminScopes},

		{"GET /livez", LivezHandler(r.startTime, r.buildVersion), httpx.GroupProbe, nil},
		{"GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens), httpx.GroupProbe, nil},
		{"GET /metrics", metrics, httpx.GroupProbe, nil},
	}
}

// mount registers rt behind authentication, its scope check and its rate
// limit. The limit runs after authentication so it keys on the token
// subject.
func (r *Router) mount(limiter *httpx.Limiter, rt route) {
	if len(rt.scopes) == 0 {
		r.Mux.Handle(rt.pattern, httpx.Chain(rt.handler, limiter.Limit(rt.group)))
		return
	}
	r.Mux.Handle(rt.pattern, httpx.Chain(rt.handler,
		httpx.Authenticate(r.verifier),
		httpx.Authorize(rt.scopes...),
		limiter.Limit(rt.group),
	))
}
