package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMintTokenVerifies(t *testing.T) {
	now := time.Now()
	token, err := mintToken([]byte(testSecret), "gymtab", "owner", []string{jwtx.ScopeAdmin}, "Owner", time.Hour, now)
	require.NoError(t, err)

	verifier, err := jwtx.NewHS256([]byte(testSecret), "gymtab")
	require.NoError(t, err)
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "owner", claims.Subject)
	require.True(t, claims.HasScope(jwtx.ScopeAdmin))
	require.Equal(t, "Owner", claims.Name)
}

func TestMintTokenRejects(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		secret  string
		subject string
		scopes  []string
		ttl     time.Duration
	}{
		{"short secret", "short", "owner", []string{jwtx.ScopeAdmin}, time.Hour},
		{"no subject", testSecret, "", []string{jwtx.ScopeAdmin}, time.Hour},
		{"no scopes", testSecret, "owner", nil, time.Hour},
		{"unknown scope", testSecret, "owner", []string{"gym:root"}, time.Hour},
		{"zero ttl", testSecret, "owner", []string{jwtx.ScopeAdmin}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mintToken([]byte(tt.secret), "gymtab", tt.subject, tt.scopes, "", tt.ttl, now)
			require.Error(t, err)
		})
	}
}

func TestTokenMintCommandReadsSecretFromEnv(t *testing.T) {
	t.Setenv("GYM_JWT_SECRET", testSecret)
	t.Setenv("GYM_JWT_ISSUER", "gym-test")

	out, err := run(t, "token", "mint", "--subject", "01MEMBER", "--scope", jwtx.ScopeMember)
	require.NoError(t, err)

	verifier, err := jwtx.NewHS256([]byte(testSecret), "gym-test")
	require.NoError(t, err)
	claims, err := verifier.Verify(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	require.Equal(t, "01MEMBER", claims.Subject)
	require.Equal(t, []string{jwtx.ScopeMember}, claims.Scopes)
}

func TestCommandsRequireToken(t *testing.T) {
	t.Setenv("GYM_TOKEN", "")
	_, err := run(t, "member", "get", "01X")
	require.ErrorContains(t, err, "no token")
}

func TestSettingsSetSendsOnlyChangedFlags(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/v1/settings", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gymsdk.SettingsResponse{GymName: "Iron Temple"})
	}))
	defer srv.Close()

	out, err := run(t, "--url", srv.URL, "--token", "tok", "settings", "set", "--debt-alert=false")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"notif_debt_alert": false}, got)
	require.Contains(t, out, `"gym_name": "Iron Temple"`)

	_, err = run(t, "--url", srv.URL, "--token", "tok", "settings", "set")
	require.ErrorContains(t, err, "nothing to update")
}

func TestPaymentRegisterParsesDate(t *testing.T) {
	var got gymsdk.PaymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(gymsdk.RegisterPaymentResponse{})
	}))
	defer srv.Close()

	_, err := run(t, "--url", srv.URL, "--token", "tok",
		"payment", "register", "--member", "01M", "--amount", "15000", "--concept", "March", "--date", "2024-01-31")
	require.NoError(t, err)
	require.Equal(t, "01M", got.MemberID)
	require.EqualValues(t, 15000, got.Amount)
	require.NotNil(t, got.PaymentDate)
	require.Equal(t, "2024-01-31", got.PaymentDate.Format(gymsdk.DateLayout))

	_, err = run(t, "--url", srv.URL, "--token", "tok",
		"payment", "register", "--member", "01M", "--amount", "1", "--date", "31/01/2024")
	require.ErrorContains(t, err, "--date")
}

func TestAPIErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","error_description":"member not found"}`))
	}))
	defer srv.Close()

	_, err := run(t, "--url", srv.URL, "--token", "tok", "member", "get", "01NOPE")
	require.Error(t, err)
	require.True(t, gymsdk.IsNotFound(err))
}

func TestQREntranceWritesPNG(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/qr/entrance.png", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "entrance.png")
	_, err := run(t, "--url", srv.URL, "--token", "tok", "qr", "entrance", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, png, data)
}

func TestCheckInScanSendsCode(t *testing.T) {
	var got gymsdk.CheckInRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/checkins", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(gymsdk.CheckInResponse{RecordID: "r1", Method: gymsdk.MethodQRScan, Counted: true})
	}))
	defer srv.Close()

	out, err := run(t, "--url", srv.URL, "--token", "tok", "checkin", "scan", "--code", "abcdefghijklmnopqrstuv")
	require.NoError(t, err)
	require.Equal(t, gymsdk.MethodQRScan, got.Method)
	require.Equal(t, "abcdefghijklmnopqrstuv", got.Token)
	require.Empty(t, got.MemberID)
	require.Contains(t, out, `"counted": true`)

	_, err = run(t, "--url", srv.URL, "--token", "tok", "checkin", "scan")
	require.ErrorContains(t, err, "code")
}
