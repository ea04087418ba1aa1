package http

import (
	"net/http"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/service"
	"github.com/aussiebroadwan/gymtab/pkg/gymsdk"
	"github.com/aussiebroadwan/gymtab/pkg/httpx"
	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

type CheckInHandler struct {
	AttendanceService *service.AttendanceService
	MemberService     *service.MemberService
}

// ServeHTTP godoc
//
//	@Summary		Check In
//	@Description	Records one attendance. QR_SCAN redeems a single-use code and depends on who scanned it:
//	@Description	a staff or kiosk session redeems a member code read off the member's screen, and a member
//	@Description	session redeems the kiosk entrance code for itself. Other pairings fail with wrong_scanner.
//	@Description	MANUAL is made by staff with an explicit member_id. marked_days counts gym days, so a second
//	@Description	check-in on the same day is recorded with counted=false. Fails with overdue_fee when the
//	@Description	member's dues are not current; a rejected code stays valid.
//	@Tags			Attendance
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		gymsdk.CheckInRequest	true	"Check-in request"
//	@Success		201		{object}	gymsdk.CheckInResponse	"record and updated member"
//	@Failure		400		{object}	gymsdk.ErrorResponse	"invalid_request, expired_token or overdue_fee"
//	@Failure		401		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	gymsdk.ErrorResponse	"insufficient_scope or wrong_scanner"
//	@Failure		404		{object}	gymsdk.ErrorResponse	"unknown token or member"
//	@Failure		500		{object}	gymsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/checkins [post].
func (h *CheckInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req gymsdk.CheckInRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w, err.Error())
		return
	}

	method, err := domain.ParseCheckInMethod(req.Method)
	if err != nil {
		writeInvalidRequest(w, "method must be MANUAL or QR_SCAN")
		return
	}

	caller, _ := httpx.CallerFrom(ctx)
	entry := service.EntryRequest{Token: req.Token, Method: method}
	switch {
	case method == domain.MethodManual && caller.Desk():
		entry.MemberID = req.MemberID
	case method == domain.MethodManual:
		httpx.WriteScopeError(w, jwtx.ScopeStaff, jwtx.ScopeAdmin)
		return
	case caller.Desk():
		entry.Scanner = service.ScannerDesk
		entry.MemberID = req.MemberID
	case caller.Has(jwtx.ScopeMember):
		if req.MemberID != "" && req.MemberID != caller.Subject {
			writeInvalidRequest(w, "member_id must match the authenticated member")
			return
		}
		entry.Scanner = service.ScannerMemberApp
		entry.MemberID = caller.Subject
	default:
		httpx.WriteScopeError(w, jwtx.ScopeMember, jwtx.ScopeStaff, jwtx.ScopeAdmin)
		return
	}

	res, err := h.AttendanceService.RegisterEntry(ctx, entry)
	if err != nil {
		writeServiceError(w, r, err, "Failed to record check-in")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, gymsdk.CheckInResponse{
		RecordID:    res.RecordID,
		CheckInTime: res.CheckInTime,
		Method:      string(res.Method),
		Counted:     res.Counted,
		Member:      memberResponse(h.MemberService.View(res.Member)),
	})
}
