package domain

import "time"

// Settings is the single row of gym-wide toggles. It is read fresh for every
// operation that depends on it so edits apply to the next scheduled run.
type Settings struct {
	GymName              string
	NotifPaymentReminder bool
	NotifDebtAlert       bool
	UpdatedAt            time.Time
}

// DefaultSettings matches the row seeded by the initial migration.
func DefaultSettings() Settings {
	return Settings{
		GymName:              "Gym",
		NotifPaymentReminder: true,
		NotifDebtAlert:       true,
	}
}
