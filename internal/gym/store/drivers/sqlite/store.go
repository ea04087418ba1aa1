package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	_ "modernc.org/sqlite"
)

// dateLayout is how calendar dates are stored in TEXT columns so that
// lexical comparison matches chronological order.
const dateLayout = "2006-01-02"

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repo runs
// unchanged inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the database at dsn. A bare file path gets the pragmas the
// service relies on; ":memory:" is pinned to a single connection so every
// caller sees the same database.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, err
	}
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	params := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate"
	if !isMemory(dsn) {
		params += "&_pragma=journal_mode(WAL)"
	}
	return dsn + sep + params
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Members() store.Members       { return &membersRepo{db: s.db} }
func (s *Store) Attendance() store.Attendance { return &attendanceRepo{db: s.db} }
func (s *Store) Payments() store.Payments     { return &paymentsRepo{db: s.db} }
func (s *Store) Settings() store.Settings     { return &settingsRepo{db: s.db} }
func (s *Store) QRTokens() store.QRTokens     { return &qrTokensRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr translates constraint violations into store errors.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return store.ErrAlreadyExists
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ErrNotFound
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapOptionalDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func mapNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// pageArgs returns the keyset predicate arguments for opts.
func pageArgs(opts store.ListOptions) (string, int) {
	opts = opts.Normalize()
	return opts.After, opts.Limit
}

// timestampLayouts are accepted when a DATETIME column comes back as text,
// which happens for RETURNING rows and the seeded settings row.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// sqlTime scans a DATETIME column regardless of how the driver surfaces it.
type sqlTime struct{ t *time.Time }

func (s sqlTime) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*s.t = x.UTC()
		return nil
	case int64:
		*s.t = time.Unix(x, 0).UTC()
		return nil
	case []byte:
		return s.parse(string(x))
	case string:
		return s.parse(x)
	case nil:
		*s.t = time.Time{}
		return nil
	}
	return fmt.Errorf("sqlite: cannot scan %T into time", v)
}

func (s sqlTime) parse(v string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqlite: unrecognised timestamp %q", v)
}

func ts(t *time.Time) sqlTime { return sqlTime{t: t} }

// timestamp is the stored form of every DATETIME value.
func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
