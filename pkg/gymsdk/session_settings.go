package gymsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/gymtab/pkg/jwtx"
)

// GetSettings requires gym:admin.
func (s *Session) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/settings", nil, nil, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out SettingsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings applies a partial update. Requires gym:admin.
func (s *Session) UpdateSettings(ctx context.Context, req SettingsRequest) (*SettingsResponse, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/settings", body, jsonHeaders, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out SettingsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunSweep runs the reminder sweep now instead of waiting for the schedule.
// Requires gym:admin.
func (s *Session) RunSweep(ctx context.Context) (*SweepResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/sweeps", nil, nil, jwtx.ScopeAdmin)
	if err != nil {
		return nil, err
	}

	var out SweepResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
