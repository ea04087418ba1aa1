package gymsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

// CreateMember registers a member in the pending state. Requires gym:admin.
func (s *Session) CreateMember(ctx context.Context, req MemberRequest) (*MemberResponse, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/members", body, jsonHeaders, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out MemberResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMember requires gym:staff.
func (s *Session) GetMember(ctx context.Context, id string) (*MemberResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/members/"+id, nil, nil, jwtx.ScopeStaff, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out MemberResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers pages through members, optionally filtered by billing state.
// Requires gym:staff.
func (s *Session) ListMembers(ctx context.Context, p ListParams) (*MemberListResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, withQuery("/v1/members", p), nil, nil, jwtx.ScopeStaff, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out MemberListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
