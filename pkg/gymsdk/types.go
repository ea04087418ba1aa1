package gymsdk

import "time"

// DateLayout is the wire format of calendar dates such as expiration_day.
const DateLayout = "2006-01-02"

// Check-in methods.
const (
	MethodManual = "MANUAL"
	MethodQRScan = "QR_SCAN"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	// Checks contains readiness results for dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	// TokenStore is only reported when QR tokens are kept in Redis
	TokenStore string `json:"token_store,omitempty"`
}

// ============================================================================
// QR Types
// ============================================================================

// IssueTokenResponse carries a freshly issued temporal QR token. The token
// is single-use and valid until ExpiresAt inclusive.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================================================
// Check-in Types
// ============================================================================

// CheckInRequest records one attendance. QR_SCAN needs Token; MemberID is
// required for MANUAL and, when set on a desk scan, must match the code.
type CheckInRequest struct {
	Token    string `json:"token,omitempty"`
	MemberID string `json:"member_id,omitempty"`
	Method   string `json:"method"`
}

type CheckInResponse struct {
	RecordID    string         `json:"record_id"`
	CheckInTime time.Time      `json:"check_in_time"`
	Method      string         `json:"method"`
	// Counted is false when the member had already checked in that day
	Counted bool           `json:"counted"`
	Member  MemberResponse `json:"member"`
}

// ============================================================================
// Member Types
// ============================================================================

type MemberRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname,omitempty"`
	Email    string `json:"email,omitempty"`
}

type MemberResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname,omitempty"`
	Email        string `json:"email,omitempty"`
	BillingState string `json:"billing_state"`
	// ExpirationDay is a calendar date (DateLayout), empty until the first payment
	ExpirationDay string `json:"expiration_day,omitempty"`
	MarkedDays    int    `json:"marked_days"`
	// Current reports whether dues cover today in the gym's timezone
	Current   bool      `json:"current"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	// Next is the cursor for the following page, empty on the last page
	Next string `json:"next,omitempty"`
}

// ListParams is keyset pagination shared by list endpoints. State only
// applies to member listings.
type ListParams struct {
	Limit int
	After string
	State string
}

// ============================================================================
// Payment Types
// ============================================================================

type PaymentRequest struct {
	MemberID string `json:"member_id"`
	// Amount in minor currency units
	Amount  int64  `json:"amount"`
	Concept string `json:"concept"`
	// PaymentDate defaults to the server's current time
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

type PaymentResponse struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	Amount      int64     `json:"amount"`
	Concept     string    `json:"concept"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterPaymentResponse is the stored payment and the member it renewed.
type RegisterPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Member  MemberResponse  `json:"member"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Next     string            `json:"next,omitempty"`
}

// ============================================================================
// Attendance Types
// ============================================================================

type AttendanceResponse struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	CheckInTime time.Time `json:"check_in_time"`
	// Day is the gym calendar date (DateLayout) the visit counted towards
	Day    string `json:"day"`
	Method string `json:"method"`
}

type AttendanceListResponse struct {
	Records []AttendanceResponse `json:"records"`
	Next    string               `json:"next,omitempty"`
}

// ============================================================================
// Settings Types
// ============================================================================

// SettingsRequest is a partial update; nil fields are left unchanged.
type SettingsRequest struct {
	GymName              *string `json:"gym_name,omitempty"`
	NotifPaymentReminder *bool   `json:"notif_payment_reminder,omitempty"`
	NotifDebtAlert       *bool   `json:"notif_debt_alert,omitempty"`
}

type SettingsResponse struct {
	GymName              string    `json:"gym_name"`
	NotifPaymentReminder bool      `json:"notif_payment_reminder"`
	NotifDebtAlert       bool      `json:"notif_debt_alert"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ============================================================================
// Sweep Types
// ============================================================================

// KindReport summarises one notification kind of a reminder sweep.
type KindReport struct {
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
	Matched int    `json:"matched"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Error   string `json:"error,omitempty"`
}

type SweepResponse struct {
	Date             string     `json:"date"`
	PaymentReminders KindReport `json:"payment_reminders"`
	DebtAlerts       KindReport `json:"debt_alerts"`
}
