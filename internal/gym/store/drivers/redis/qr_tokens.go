// Package redis stores temporal QR tokens in Redis so several gymd
// replicas can share them. Everything else stays in SQL.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every token key: gym:qr:{fingerprint}
const KeyPrefix = "gym:qr:"

// consumeScript deletes the token hash only if it has not expired. It
// returns nil when the key is gone, 0 when expired, and the hash fields when
// this caller won the token.
var consumeScript = redis.NewScript(`
local fields = redis.call('HGETALL', KEYS[1])
if #fields == 0 then
	return nil
end
local expires = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if expires < tonumber(ARGV[1]) then
	return 0
end
redis.call('DEL', KEYS[1])
return fields
`)

// createScript writes the whole token hash and its TTL in one step, so a
// reader never sees a key without expires_at or without an expiry. It
// returns 0 when the fingerprint is already taken.
var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1],
	'id', ARGV[1],
	'member_id', ARGV[2],
	'expires_at', ARGV[3],
	'created_at', ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// QRTokens implements store.QRTokens on a Redis hash per token. Keys carry
// a TTL of the token lifetime plus Retention so expired tokens can still
// be reported as expired for a while before Redis evicts them.
type QRTokens struct {
	Client    redis.UniversalClient
	Retention time.Duration
}

var _ store.QRTokens = (*QRTokens)(nil)

func NewQRTokens(client redis.UniversalClient, retention time.Duration) *QRTokens {
	return &QRTokens{Client: client, Retention: retention}
}

func key(tokenHash string) string { return KeyPrefix + tokenHash }

// Ping is used by the readiness probe.
func (r *QRTokens) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *QRTokens) Create(ctx context.Context, qr domain.TemporalQR) error {
	ttl := qr.ExpiresAt.Sub(qr.CreatedAt) + r.Retention
	if ttl <= 0 {
		ttl = time.Second
	}

	created, err := createScript.Run(ctx, r.Client, []string{key(qr.TokenHash)},
		qr.ID,
		qr.MemberID,
		qr.ExpiresAt.UnixMilli(),
		qr.CreatedAt.UnixMilli(),
		ttl.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if created == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *QRTokens) Get(ctx context.Context, tokenHash string, now time.Time) (domain.TemporalQR, error) {
	fields, err := r.Client.HGetAll(ctx, key(tokenHash)).Result()
	if err != nil {
		return domain.TemporalQR{}, err
	}
	if len(fields) == 0 {
		return domain.TemporalQR{}, store.ErrNotFound
	}

	qr, err := decode(tokenHash, fields)
	if err != nil {
		return domain.TemporalQR{}, err
	}
	if qr.Expired(now) {
		return domain.TemporalQR{}, store.ErrExpired
	}
	return qr, nil
}

func (r *QRTokens) Consume(ctx context.Context, tokenHash string, now time.Time) (domain.TemporalQR, error) {
	res, err := consumeScript.Run(ctx, r.Client, []string{key(tokenHash)}, now.UnixMilli()).Result()
	if errors.Is(err, redis.Nil) {
		return domain.TemporalQR{}, store.ErrNotFound
	}
	if err != nil {
		return domain.TemporalQR{}, err
	}

	switch v := res.(type) {
	case int64:
		return domain.TemporalQR{}, store.ErrExpired
	case []any:
		fields := make(map[string]string, len(v)/2)
		for i := 0; i+1 < len(v); i += 2 {
			k, _ := v[i].(string)
			val, _ := v[i+1].(string)
			fields[k] = val
		}
		return decode(tokenHash, fields)
	}
	return domain.TemporalQR{}, fmt.Errorf("redis: unexpected consume reply %T", res)
}

// DeleteExpired is a no-op: Redis evicts keys once their TTL elapses.
func (r *QRTokens) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func decode(tokenHash string, fields map[string]string) (domain.TemporalQR, error) {
	expires, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return domain.TemporalQR{}, fmt.Errorf("redis: bad expires_at: %w", err)
	}
	created, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return domain.TemporalQR{}, fmt.Errorf("redis: bad created_at: %w", err)
	}
	return domain.TemporalQR{
		ID:        fields["id"],
		TokenHash: tokenHash,
		MemberID:  fields["member_id"],
		ExpiresAt: time.UnixMilli(expires).UTC(),
		CreatedAt: time.UnixMilli(created).UTC(),
	}, nil
}
