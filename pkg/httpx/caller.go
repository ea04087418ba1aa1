package httpx

import (
	"context"
	"slices"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

// Caller is the principal behind an authenticated request, taken from the
// verified access token.
type Caller struct {
	// Subject is a member id for member tokens and a staff, kiosk or
	// operator identifier otherwise.
	Subject string
	Scopes  []string
	Name    string
}

func callerFromClaims(c jwtx.Claims) Caller {
	return Caller{Subject: c.Subject, Scopes: c.Scopes, Name: c.Name}
}

// Has reports whether the caller holds scope.
func (c Caller) Has(scope string) bool { return slices.Contains(c.Scopes, scope) }

// HasAny reports whether the caller holds at least one of scopes.
func (c Caller) HasAny(scopes ...string) bool {
	return slices.ContainsFunc(scopes, c.Has)
}

// Desk reports whether the caller works the front desk: staff, a kiosk
// holding a staff token, or an admin.
func (c Caller) Desk() bool { return c.HasAny(jwtx.ScopeStaff, jwtx.ScopeAdmin) }

type callerKey struct{}

// WithCaller returns a copy of ctx carrying c.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller Authenticate stored on ctx. ok is false for
// public routes.
func CallerFrom(ctx context.Context) (c Caller, ok bool) {
	c, ok = ctx.Value(callerKey{}).(Caller)
	return c, ok
}
