package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/gymtab/internal/gym/http"
	"github.com/aussiebroadwan/gymtab/internal/gym/notify"
	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	redisstore "github.com/aussiebroadwan/gymtab/internal/gym/store/drivers/redis"
	"github.com/aussiebroadwan/gymtab/internal/gym/store/drivers/sqlite"
	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application wires the gym service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	tokens   store.QRTokens
	redis    *redis.Client // nil unless GYM_REDIS_URL is set
	verifier *jwtx.HS256
	notifier notify.Sender
	metrics  *service.Metrics

	// Services
	qrService           *service.QRService
	attendanceService   *service.AttendanceService
	paymentService      *service.PaymentService
	memberService       *service.MemberService
	settingsService     *service.SettingsService
	reminderService     *service.ReminderService
	housekeepingService *service.HousekeepingService
	scheduler           *service.ReminderScheduler

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialised.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gymd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: service.DefaultMetrics(),
	}

	verifier, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initTokenStore(); err != nil {
		app.closeResources()
		return nil, err
	}
	app.initNotifier()
	if err := app.initServices(); err != nil {
		app.closeResources()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the background workers and the HTTP server and blocks until
// ctx is cancelled, a shutdown signal arrives or the server fails.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.housekeepingService.Start()
	app.scheduler.Start()

	app.logger.Info("gym service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"timezone", app.cfg.Timezone.String(),
		"next_reminder_sweep", app.scheduler.Next(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested")
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown drains HTTP, stops the workers and closes the stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gym service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.scheduler.Stop()
	app.housekeepingService.Stop()

	if err := app.closeResources(); err != nil {
		return err
	}

	app.logger.Info("gym service stopped")
	return nil
}

func (app *Application) closeResources() error {
	var errs []error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
			errs = append(errs, err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initTokenStore keeps QR tokens in SQLite unless a Redis URL is configured.
func (app *Application) initTokenStore() error {
	if app.cfg.RedisURL == "" {
		app.tokens = app.db.QRTokens()
		return nil
	}

	opt, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse GYM_REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.redis = client
	app.tokens = redisstore.NewQRTokens(client, app.cfg.QRRetention)
	app.logger.Info("qr tokens stored in redis", "addr", opt.Addr, "db", opt.DB)
	return nil
}

func (app *Application) initNotifier() {
	switch app.cfg.MailProvider {
	case MailProviderSendGrid:
		app.notifier = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:   app.cfg.SendGridAPIKey,
			From:     app.cfg.MailFrom,
			FromName: app.cfg.MailFromName,
		}, app.logger)
		app.logger.Info("notifications delivered through sendgrid")
	default:
		app.notifier = &notify.LogSender{Logger: app.logger}
		app.logger.Info("notifications written to the log")
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	clock := service.Clock{Now: time.Now, Location: app.cfg.Timezone}

	app.qrService = &service.QRService{
		Tokens:  app.tokens,
		TTL:     app.cfg.QRTTL,
		Metrics: app.metrics,
		Clock:   clock,
	}
	app.attendanceService = &service.AttendanceService{
		Store:   app.db,
		QR:      app.qrService,
		Metrics: app.metrics,
		Clock:   clock,
	}
	app.paymentService = &service.PaymentService{Store: app.db, Metrics: app.metrics, Clock: clock}
	app.memberService = &service.MemberService{Store: app.db, Clock: clock}
	app.settingsService = &service.SettingsService{Store: app.db, Clock: clock}
	app.reminderService = &service.ReminderService{
		Store:    app.db,
		Notifier: app.notifier,
		Metrics:  app.metrics,
		Clock:    clock,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.tokens,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	app.housekeepingService.Retention = app.cfg.QRRetention
	app.housekeepingService.Metrics = app.metrics
	app.housekeepingService.Clock = clock

	scheduler, err := service.NewReminderScheduler(
		app.reminderService,
		app.logger,
		app.cfg.ReminderSchedule,
		app.cfg.Timezone,
	)
	if err != nil {
		return fmt.Errorf("invalid GYM_REMINDER_SCHEDULE %q: %w", app.cfg.ReminderSchedule, err)
	}
	app.scheduler = scheduler
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.tokens,
		app.logger,
	)

	router.QRService = app.qrService
	router.AttendanceService = app.attendanceService
	router.PaymentService = app.paymentService
	router.MemberService = app.memberService
	router.SettingsService = app.settingsService
	router.ReminderService = app.reminderService
	router.Limits = app.cfg.RateLimits
	router.TrustProxy = app.cfg.TrustProxy
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
