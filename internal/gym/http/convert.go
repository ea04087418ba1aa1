package http

import (
	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
)

func memberResponse(v service.MemberView) gymsdk.MemberResponse {
	out := gymsdk.MemberResponse{
		ID:           v.ID,
		Name:         v.Name,
		Lastname:     v.Lastname,
		Email:        v.Email,
		BillingState: string(v.BillingState),
		MarkedDays:   v.MarkedDays,
		Current:      v.Current,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.ExpirationDay != nil {
		out.ExpirationDay = v.ExpirationDay.Format(gymsdk.DateLayout)
	}
	return out
}

func paymentResponse(p domain.Payment) gymsdk.PaymentResponse {
	return gymsdk.PaymentResponse{
		ID:          p.ID,
		MemberID:    p.MemberID,
		Amount:      p.Amount,
		Concept:     p.Concept,
		PaymentDate: p.PaymentDate,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

func attendanceResponse(a domain.AttendanceRecord) gymsdk.AttendanceResponse {
	return gymsdk.AttendanceResponse{
		ID:          a.ID,
		MemberID:    a.MemberID,
		CheckInTime: a.CheckInTime,
		Day:         a.Day.Format(gymsdk.DateLayout),
		Method:      string(a.Method),
	}
}

func settingsResponse(s domain.Settings) gymsdk.SettingsResponse {
	return gymsdk.SettingsResponse{
		GymName:              s.GymName,
		NotifPaymentReminder: s.NotifPaymentReminder,
		NotifDebtAlert:       s.NotifDebtAlert,
		UpdatedAt:            s.UpdatedAt,
	}
}

func kindReport(k service.KindReport) gymsdk.KindReport {
	return gymsdk.KindReport{
		Kind:    string(k.Kind),
		Enabled: k.Enabled,
		Matched: k.Matched,
		Sent:    k.Sent,
		Skipped: k.Skipped,
		Failed:  k.Failed,
		Error:   k.Error,
	}
}
