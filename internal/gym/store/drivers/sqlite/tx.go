package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/gymtab/internal/gym/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Members() store.Members       { return &membersRepo{db: t.tx} }
func (t *txStore) Attendance() store.Attendance { return &attendanceRepo{db: t.tx} }
func (t *txStore) Payments() store.Payments     { return &paymentsRepo{db: t.tx} }
func (t *txStore) Settings() store.Settings     { return &settingsRepo{db: t.tx} }
func (t *txStore) QRTokens() store.QRTokens     { return &qrTokensRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations are applied before any tx
