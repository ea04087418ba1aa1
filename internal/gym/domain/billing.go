package domain

import (
	"errors"
	"time"
)

// ErrInvalidDate is returned for zero time values.
var ErrInvalidDate = errors.New("domain: invalid date")

// NextExpiration returns paymentDate advanced by one calendar month. When the
// day does not exist in the target month (Jan 31 -> Feb 31) it is clamped to
// the last day of that month. Time of day and location are preserved.
func NextExpiration(paymentDate time.Time) (time.Time, error) {
	if paymentDate.IsZero() {
		return time.Time{}, ErrInvalidDate
	}

	y, m, d := paymentDate.Date()
	hh, mm, ss := paymentDate.Clock()
	loc := paymentDate.Location()

	// Day 0 of the month after the target is the target's last day.
	last := time.Date(y, m+2, 0, 0, 0, 0, 0, loc).Day()
	if d > last {
		d = last
	}

	return time.Date(y, m+1, d, hh, mm, ss, paymentDate.Nanosecond(), loc), nil
}

// CalendarDate returns the calendar date of t as observed in loc, encoded as
// midnight UTC. Every date stored or compared by the service goes through
// this so comparisons never depend on the server's zone.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date.
func AddDays(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, n)
}

// Standing reports whether a member's dues are current on the calendar date
// today: the stored state must be OK and the expiration day must not have
// passed. A member whose expiration passed but whose row still reads OK is
// not current.
func Standing(m Member, today time.Time) bool {
	if m.BillingState != BillingOK || m.ExpirationDay == nil {
		return false
	}
	return !today.After(*m.ExpirationDay)
}

// Lapsed reports whether a member should be moved to BillingDefeated.
// Members who never paid stay pending.
func Lapsed(m Member, today time.Time) bool {
	return m.BillingState == BillingOK && m.ExpirationDay != nil && today.After(*m.ExpirationDay)
}
