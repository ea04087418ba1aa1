package domain

import "time"

// BillingState is the stored billing standing of a member.
type BillingState string

const (
	// BillingOK means the last payment covers the member up to ExpirationDay.
	BillingOK BillingState = "OK"
	// BillingPending is the state of a member who has never paid.
	BillingPending BillingState = "pending"
	// BillingDefeated marks a member whose paid period has lapsed.
	BillingDefeated BillingState = "defeated"
)

func (s BillingState) Valid() bool {
	switch s {
	case BillingOK, BillingPending, BillingDefeated:
		return true
	}
	return false
}

type Member struct {
	ID           string
	Name         string
	Lastname     string
	Email        string // Contact address for reminders, may be empty
	BillingState BillingState
	// ExpirationDay is a calendar date (midnight UTC), nil until the first
	// payment.
	ExpirationDay *time.Time
	MarkedDays    int // Check-ins since the last payment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewMember returns a member in its initial lifecycle state.
func NewMember(id, name, lastname, email string, now time.Time) Member {
	return Member{
		ID:           id,
		Name:         name,
		Lastname:     lastname,
		Email:        email,
		BillingState: BillingPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FullName is used in notification copy.
func (m Member) FullName() string {
	if m.Lastname == "" {
		return m.Name
	}
	return m.Name + " " + m.Lastname
}
