package domain

import "time"

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentPending   PaymentStatus = "pending"
)

type Payment struct {
	ID          string
	MemberID    string
	Amount      int64 // Minor currency units
	Concept     string
	PaymentDate time.Time
	Status      PaymentStatus
	CreatedAt   time.Time
}
