package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrExpired is returned by QRTokens when the token exists but is past
	// its expiry.
	ErrExpired = errors.New("store: expired")
	// ErrConflict is returned when a conditional update matched the row but
	// its precondition no longer held.
	ErrConflict = errors.New("store: precondition failed")
)

// DefaultListLimit applies when ListOptions.Limit is zero.
const DefaultListLimit = 50

// ListOptions is keyset pagination over ULID ids.
type ListOptions struct {
	Limit int
	After string // Return rows with id > After
}

// Normalize clamps the limit into [1, 500].
func (o ListOptions) Normalize() ListOptions {
	switch {
	case o.Limit <= 0:
		o.Limit = DefaultListLimit
	case o.Limit > 500:
		o.Limit = 500
	}
	return o
}

// Repository is the CRUD surface shared by every entity repo. Entity repos
// embed it and add their own conditional operations.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, v T) error
	List(ctx context.Context, opts ListOptions) ([]T, error)
}

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories. Tx-scoped stores refuse to open nested
// transactions.
type Store interface {
	Members() Members
	Attendance() Attendance
	Payments() Payments
	Settings() Settings
	QRTokens() QRTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. fn must only use the tx it is
	// given. If fn returns an error the transaction is rolled back.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Members interface {
	Repository[domain.Member]

	// ListByBillingState filters List by stored state.
	ListByBillingState(ctx context.Context, state domain.BillingState, opts ListOptions) ([]domain.Member, error)

	// IncrementMarkedDays counts the calendar date today as attended, guarded
	// by the member being current on that date. A date that already has an
	// attendance record for the member is not counted again and counted comes
	// back false. Run it in the same transaction as the attendance insert.
	// Returns ErrConflict when the member exists but is not current.
	IncrementMarkedDays(ctx context.Context, id string, today, now time.Time) (m domain.Member, counted bool, err error)

	// ApplyPayment sets billing_state OK, the new expiration day and resets
	// marked_days to zero.
	ApplyPayment(ctx context.Context, id string, expirationDay, now time.Time) (domain.Member, error)

	// ListExpiringBetween returns members whose expiration_day is in
	// [from, to), ordered by id.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Member, error)

	// MarkLapsed moves OK members whose expiration_day is before today to
	// defeated and returns how many rows changed.
	MarkLapsed(ctx context.Context, today, now time.Time) (int64, error)
}

type Attendance interface {
	Repository[domain.AttendanceRecord]

	// ListByMember returns a member's check-ins, oldest first.
	ListByMember(ctx context.Context, memberID string, opts ListOptions) ([]domain.AttendanceRecord, error)
}

type Payments interface {
	Repository[domain.Payment]

	// ListByMember returns a member's payments, oldest first.
	ListByMember(ctx context.Context, memberID string, opts ListOptions) ([]domain.Payment, error)
}

type Settings interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) error
}

// QRTokens persists temporal QR tokens keyed by fingerprint. Implemented by
// the sqlite driver and the redis driver.
type QRTokens interface {
	Create(ctx context.Context, qr domain.TemporalQR) error

	// Get returns a token without consuming it. Returns ErrNotFound or
	// ErrExpired like Consume.
	Get(ctx context.Context, tokenHash string, now time.Time) (domain.TemporalQR, error)

	// Consume deletes the token and returns it. It is a compare-and-delete:
	// of any number of concurrent callers at most one gets the record, the
	// rest get ErrNotFound. Expired tokens are left in place and reported
	// as ErrExpired.
	Consume(ctx context.Context, tokenHash string, now time.Time) (domain.TemporalQR, error)

	// DeleteExpired purges tokens that expired before the cutoff.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
