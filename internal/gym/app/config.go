package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // GYM_TIMEZONE must resolve in scratch images

	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Mail providers.
const (
	MailProviderLog      = "log"
	MailProviderSendGrid = "sendgrid"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	DatabaseFile     string         // Path to the SQLite database file (default: ./gym.db)
	Timezone         *time.Location // Gym timezone; calendar dates are taken here (default: UTC)
	QRTTL            time.Duration  // Lifetime of issued QR tokens (default: 60s)
	QRRetention      time.Duration  // How long expired tokens are kept (default: 24h)
	RedisURL         string         // Optional: keep QR tokens in Redis, e.g. redis://localhost:6379/0
	ReminderSchedule string         // Cron spec for the reminder sweep (default: 0 9 * * *)

	JWTSecret string // Required: HS256 secret shared with the token minter, at least 32 bytes
	JWTIssuer string // Expected iss claim (default: gymtab)

	MailProvider   string // log or sendgrid (default: log)
	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	// RateLimits per route group, from GYM_RATELIMIT_<GROUP>_REQUESTS,
	// _WINDOW and _BURST (e.g. GYM_RATELIMIT_CHECKIN_BURST=40)
	RateLimits httpx.Limits
	TrustProxy bool // Key anonymous callers on X-Forwarded-For (default: false)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PORT", 8080)
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second)
	v.SetDefault("HOUSEKEEPING_INTERVAL", time.Hour)

	v.SetDefault("GYM_DATABASE_FILE", "gym.db")
	v.SetDefault("GYM_TIMEZONE", "UTC")
	v.SetDefault("GYM_QR_TTL", service.DefaultQRTTL)
	v.SetDefault("GYM_QR_RETENTION", service.DefaultQRRetention)
	v.SetDefault("GYM_REDIS_URL", "")
	v.SetDefault("GYM_REMINDER_SCHEDULE", service.DefaultReminderSchedule)

	v.SetDefault("GYM_JWT_SECRET", "")
	v.SetDefault("GYM_JWT_ISSUER", "gymtab")

	v.SetDefault("GYM_MAIL_PROVIDER", MailProviderLog)
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("GYM_MAIL_FROM", "noreply@localhost")
	v.SetDefault("GYM_MAIL_FROM_NAME", "")

	v.SetDefault("GYM_TRUST_PROXY", false)
	for group, l := range httpx.DefaultLimits() {
		prefix := rateLimitPrefix(group)
		v.SetDefault(prefix+"REQUESTS", l.Requests)
		v.SetDefault(prefix+"WINDOW", l.Window)
		v.SetDefault(prefix+"BURST", l.Burst)
	}

	v.AutomaticEnv()
	return v
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	return configFrom(newViper())
}

func configFrom(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:                  v.GetString("ENV"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		Port:                 v.GetInt("PORT"),
		ShutdownGracePeriod:  v.GetDuration("SHUTDOWN_GRACE_PERIOD"),
		HousekeepingInterval: v.GetDuration("HOUSEKEEPING_INTERVAL"),

		DatabaseFile:     v.GetString("GYM_DATABASE_FILE"),
		QRTTL:            v.GetDuration("GYM_QR_TTL"),
		QRRetention:      v.GetDuration("GYM_QR_RETENTION"),
		RedisURL:         v.GetString("GYM_REDIS_URL"),
		ReminderSchedule: v.GetString("GYM_REMINDER_SCHEDULE"),

		JWTSecret: v.GetString("GYM_JWT_SECRET"),
		JWTIssuer: v.GetString("GYM_JWT_ISSUER"),

		MailProvider:   strings.ToLower(v.GetString("GYM_MAIL_PROVIDER")),
		SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
		MailFrom:       v.GetString("GYM_MAIL_FROM"),
		MailFromName:   v.GetString("GYM_MAIL_FROM_NAME"),

		RateLimits: make(httpx.Limits),
		TrustProxy: v.GetBool("GYM_TRUST_PROXY"),
	}

	for group := range httpx.DefaultLimits() {
		prefix := rateLimitPrefix(group)
		cfg.RateLimits[group] = httpx.Limit{
			Requests: v.GetInt(prefix + "REQUESTS"),
			Window:   v.GetDuration(prefix + "WINDOW"),
			Burst:    v.GetInt(prefix + "BURST"),
		}
	}

	loc, err := time.LoadLocation(v.GetString("GYM_TIMEZONE"))
	if err != nil {
		return Config{}, fmt.Errorf("GYM_TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	if cfg.MailFromName == "" {
		cfg.MailFromName = "gymtab"
	}

	return cfg, cfg.Validate()
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < jwtx.MinSecretSize {
		errs = append(errs, fmt.Errorf("GYM_JWT_SECRET must be at least %d bytes", jwtx.MinSecretSize))
	}
	if c.QRTTL <= 0 {
		errs = append(errs, errors.New("GYM_QR_TTL must be positive"))
	}
	if c.QRRetention < 0 {
		errs = append(errs, errors.New("GYM_QR_RETENTION must not be negative"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	for group, l := range c.RateLimits {
		if l.Requests <= 0 || l.Window <= 0 || l.Burst <= 0 {
			errs = append(errs, fmt.Errorf("%s* must all be positive, got %d per %s burst %d",
				rateLimitPrefix(group), l.Requests, l.Window, l.Burst))
		}
	}
	switch c.MailProvider {
	case MailProviderLog:
	case MailProviderSendGrid:
		if c.SendGridAPIKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required with GYM_MAIL_PROVIDER=sendgrid"))
		}
	default:
		errs = append(errs, fmt.Errorf("GYM_MAIL_PROVIDER %q is not log or sendgrid", c.MailProvider))
	}
	return errors.Join(errs...)
}

func rateLimitPrefix(g httpx.Group) string {
	return "GYM_RATELIMIT_" + strings.ToUpper(string(g)) + "_"
}
