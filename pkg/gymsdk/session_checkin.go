package gymsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

// CheckIn records one attendance. MANUAL needs gym:staff. QR_SCAN is open to
// members and the desk: a member session redeems entrance codes, a staff
// session redeems member codes it scanned. The server rejects the other
// pairings with wrong_scanner.
func (s *Session) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResponse, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	scopes := []string{jwtx.ScopeStaff, jwtx.ScopeAdmin}
	if req.Method == MethodQRScan {
		scopes = append(scopes, jwtx.ScopeMember)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/checkins", body, jsonHeaders, scopes...)
	if err != nil {
		return nil, err
	}

	var out CheckInResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAttendance returns a member's check-ins oldest first. Requires gym:staff.
func (s *Session) ListAttendance(ctx context.Context, memberID string, p ListParams) (*AttendanceListResponse, error) {
	path := withQuery("/v1/members/"+memberID+"/attendance", ListParams{Limit: p.Limit, After: p.After})
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil, jwtx.ScopeStaff, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out AttendanceListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
