package gymsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

// RegisterPayment records a payment and renews the member for one calendar
// month. Requires gym:staff.
func (s *Session) RegisterPayment(ctx context.Context, req PaymentRequest) (*RegisterPaymentResponse, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/payments", body, jsonHeaders, jwtx.ScopeStaff, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out RegisterPaymentResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPayments returns a member's payments oldest first. Requires gym:staff.
func (s *Session) ListPayments(ctx context.Context, memberID string, p ListParams) (*PaymentListResponse, error) {
	path := withQuery("/v1/members/"+memberID+"/payments", ListParams{Limit: p.Limit, After: p.After})
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil, jwtx.ScopeStaff, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out PaymentListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
