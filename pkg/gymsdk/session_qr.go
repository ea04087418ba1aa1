package gymsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

// IssueMemberToken issues a check-in token bound to the session's member.
// Requires gym:member.
func (s *Session) IssueMemberToken(ctx context.Context) (*IssueTokenResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/qr/me", nil, nil, jwtx.ScopeMember)
	if err != nil {
		return nil, err
	}

	var out IssueTokenResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssueEntranceToken issues a kiosk token not bound to any member.
// Requires gym:staff.
func (s *Session) IssueEntranceToken(ctx context.Context) (*IssueTokenResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/qr/entrance", nil, nil, jwtx.ScopeStaff)
	if err != nil {
		return nil, err
	}

	var out IssueTokenResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// EntranceQRPNG issues an entrance token and returns it rendered as a PNG.
// Requires gym:staff.
func (s *Session) EntranceQRPNG(ctx context.Context) ([]byte, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/qr/entrance.png", nil, nil, jwtx.ScopeStaff)
	if err != nil {
		return nil, err
	}
	return readBody(resp, http.StatusOK)
}
