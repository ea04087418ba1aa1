package domain

import "time"

// TemporalQR is a short-lived, single-use check-in token. Only the
// fingerprint of the token is persisted.
type TemporalQR struct {
	ID        string
	TokenHash string
	MemberID  string // Empty for kiosk entrance tokens
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer valid at now. A token is
// still valid at exactly ExpiresAt.
func (q TemporalQR) Expired(now time.Time) bool {
	return now.After(q.ExpiresAt)
}

// Entrance reports whether this is a kiosk token not bound to a member.
func (q TemporalQR) Entrance() bool { return q.MemberID == "" }
