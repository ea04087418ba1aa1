package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
	"github.com/aussiebroadwan/gymtab/pkg/slogx"
)

// Authenticate admits requests carrying a valid gym access token and stores
// the Caller on the request context. Errors follow RFC 6750.
func Authenticate(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeInvalidToken(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("access token rejected", "err", err)
				writeInvalidToken(w, "token verification failed")
				return
			}
			if err := claims.ValidateExpiry(); err != nil {
				writeInvalidToken(w, "token expired")
				return
			}

			ctx := WithCaller(r.Context(), callerFromClaims(claims))
			ctx = slogx.WithAttrs(ctx, "sub", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize lets the request through when the caller holds any of scopes.
// It must run after Authenticate.
func Authorize(scopes ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := CallerFrom(r.Context()); ok && c.HasAny(scopes...) {
				next.ServeHTTP(w, r)
				return
			}
			WriteScopeError(w, scopes...)
		})
	}
}

// WriteScopeError answers 403 insufficient_scope naming the scopes that
// would have been accepted.
func WriteScopeError(w http.ResponseWriter, scopes ...string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(scopes, " ")+`"`)
	WriteError(w, http.StatusForbidden, "insufficient_scope",
		"one of these scopes is required: "+strings.Join(scopes, ", "))
}

// bearerToken reads the Authorization header. The scheme is matched
// case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeInvalidToken(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
