package domain

import (
	"fmt"
	"strings"
	"time"
)

// CheckInMethod records how a member's presence was verified.
type CheckInMethod string

const (
	MethodManual CheckInMethod = "MANUAL"
	MethodQRScan CheckInMethod = "QR_SCAN"
)

// ParseCheckInMethod accepts the canonical names case-insensitively.
func ParseCheckInMethod(s string) (CheckInMethod, error) {
	switch CheckInMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodManual:
		return MethodManual, nil
	case MethodQRScan:
		return MethodQRScan, nil
	}
	return "", fmt.Errorf("unknown check-in method %q", s)
}

// AttendanceRecord is immutable once written. Day is the gym calendar date
// of CheckInTime; a member counts at most one marked day per Day.
type AttendanceRecord struct {
	ID          string
	MemberID    string
	CheckInTime time.Time
	Day         time.Time
	Method      CheckInMethod
}
