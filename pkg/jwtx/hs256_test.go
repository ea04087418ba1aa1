package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte(strings.Repeat("s", jwtx.MinSecretSize))

func TestHS256RoundTrip(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "gym-idp")
	require.NoError(t, err)
	require.Equal(t, "HS256", h.Alg())

	claims := jwtx.NewAccessClaims("staff-1", []string{jwtx.ScopeStaff}, time.Minute, "", "Front desk", time.Now())
	raw, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "staff-1", got.Subject)
	require.Equal(t, "gym-idp", got.Issuer)
	require.Equal(t, []string{jwtx.ScopeStaff}, got.Scopes)
}

func TestHS256RejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), "")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256Verify(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "gym-idp")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte(strings.Repeat("x", jwtx.MinSecretSize)), "gym-idp")
		require.NoError(t, err)

		raw, err := other.Sign(jwtx.NewAccessClaims("a", nil, time.Minute, "", "", time.Now()))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired", func(t *testing.T) {
		raw, err := h.Sign(jwtx.NewAccessClaims("a", nil, time.Minute, "", "", time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		raw, err := h.Sign(jwtx.NewAccessClaims("a", nil, time.Minute, "rogue", "", time.Now()))
		require.NoError(t, err)

		_, err = h.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}
